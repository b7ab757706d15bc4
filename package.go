// Package implant surgically installs test doubles into the fields of live
// objects, and removes them again without a trace.
//
// Where a container-level override replaces a dependency everywhere it is
// wired, and so invalidates the whole object graph, implant performs the
// swap on the specific target instances a test names, leaving the rest of
// the graph untouched. Before every write the engine records the field's
// current value; after the test it replays those records newest-first, so
// the field's very first pre-test value is what survives even when the same
// field was substituted repeatedly.
//
// Doubles come in two kinds: a stub with no behaviour of its own, and a
// recording wrapper that delegates to the original value while keeping its
// calls observable.
package implant
