package implant

import "slices"

// Call is one recorded invocation on a wrapper double.
type Call struct {
	Method string
	Args   []any
}

// CallLog records the calls a wrapper double receives. Embed it in a
// hand-written wrapper and call Record from each delegating method. The
// engine runs single-threaded around test execution, so CallLog does no
// locking; the log lives and dies with the wrapper it is embedded in.
type CallLog struct {
	calls []Call
}

// Record appends one call.
func (l *CallLog) Record(method string, args ...any) {
	l.calls = append(l.calls, Call{Method: method, Args: args})
}

// Calls returns every recorded call, oldest first.
func (l *CallLog) Calls() []Call {
	return slices.Clone(l.calls)
}

// CallsTo returns the recorded calls to one method, oldest first.
func (l *CallLog) CallsTo(method string) []Call {
	var res []Call
	for _, c := range l.calls {
		if c.Method == method {
			res = append(res, c)
		}
	}
	return res
}

// Reset discards the recorded calls.
func (l *CallLog) Reset() {
	l.calls = nil
}
