package implant_test

import (
	"testing"

	"github.com/kfaraday/implant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activationErr(t *testing.T, testObject any, decls ...implant.Declaration) error {
	t.Helper()
	svc := &Service{Helper: RealHelper{}, Api: &RealApi{Label: "orig"}}
	engine := implant.New(implant.NewRegistry(svc), newFactory())
	return engine.Activate(testObject, decls...)
}

func TestDeclarationWithoutTargets(t *testing.T) {
	var fix struct{ Api Api }
	err := activationErr(t, &fix, implant.Declaration{Field: "Api", Kind: implant.Stub})
	var confErr implant.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Reason, "no target types")
}

func TestDeclarationWithoutField(t *testing.T) {
	var fix struct{ Api Api }
	err := activationErr(t, &fix, implant.StubIn("", implant.Type[*Service]()))
	var confErr implant.ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestDeclarationForUnknownField(t *testing.T) {
	var fix struct{ Api Api }
	err := activationErr(t, &fix, implant.StubIn("Nope", implant.Type[*Service]()))
	var confErr implant.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Reason, `"Nope"`)
}

func TestDuplicateDeclarationIsRejected(t *testing.T) {
	var fix struct{ Api Api }
	err := activationErr(t, &fix,
		implant.StubIn("Api", implant.Type[*Service]()),
		implant.StubIn("Api", implant.Type[*Service]()),
	)
	var confErr implant.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Reason, "declared twice")
}

func TestNilTargetTypeIsRejected(t *testing.T) {
	var fix struct{ Api Api }
	err := activationErr(t, &fix, implant.StubIn("Api", nil))
	var confErr implant.ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestTestObjectMustBeStructPointer(t *testing.T) {
	var notAStruct int
	err := activationErr(t, &notAStruct, implant.StubIn("Api", implant.Type[*Service]()))
	var confErr implant.ConfigurationError
	require.ErrorAs(t, err, &confErr)

	err = activationErr(t, nil, implant.StubIn("Api", implant.Type[*Service]()))
	require.ErrorAs(t, err, &confErr)
}

func TestScanFailsBeforeAnyTargetIsTouched(t *testing.T) {
	orig := &RealApi{Label: "orig"}
	svc := &Service{Helper: RealHelper{}, Api: orig}
	engine := implant.New(implant.NewRegistry(svc), newFactory())

	var fix struct{ Api Api }
	err := engine.Activate(&fix,
		implant.StubIn("Api", implant.Type[*Service]()),
		implant.StubIn("Api"), // malformed, caught at scan time
	)
	var confErr implant.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Same(t, orig, svc.Api, "scan errors must precede the first substitution")
}

func TestDoubleKindString(t *testing.T) {
	assert.Equal(t, "stub", implant.Stub.String())
	assert.Equal(t, "wrap", implant.Wrap.String())
}
