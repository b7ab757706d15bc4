package implant

// TestingT is the subset of [testing.T] the package needs.
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	Cleanup(func())
}

// Setup activates the engine for a test and registers restoration with
// t.Cleanup, so the originals come back whether the test passes, fails or
// panics. The cleanup is registered before activation runs: a partially
// failed Activate has already rolled itself back, and the cleanup's Restore
// is then a no-op.
func Setup(t TestingT, e *Engine, testObject any, decls ...Declaration) {
	t.Helper()
	t.Cleanup(func() {
		if err := e.Restore(); err != nil {
			t.Errorf("implant: restore: %v", err)
		}
	})
	if err := e.Activate(testObject, decls...); err != nil {
		t.Fatalf("implant: activate: %v", err)
	}
}
