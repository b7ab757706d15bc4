package implant

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var debugConf = &spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisableMethods:          true,
	DisablePointerAddresses: true,
	MaxDepth:                3,
}

// Debug renders the engine's current state, newest undo record first, for
// troubleshooting a fixture that doesn't behave as declared.
func Debug(e *Engine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "implant engine: %s\n", e.state)
	fmt.Fprintf(&b, "undo records: %d\n", len(e.undo))
	for i := len(e.undo) - 1; i >= 0; i-- {
		rec := e.undo[i]
		fmt.Fprintf(&b, " - [%d] %s.%s, original:\n",
			i, printType(rec.target.Type()), rec.field.field.Name)
		b.WriteString(indent(debugConf.Sdump(rec.original), "     "))
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
