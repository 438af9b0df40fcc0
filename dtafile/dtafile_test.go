package dtafile_test

import (
	"testing"

	"github.com/katalvlaran/dtalearn/automaton"
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/dtafile"
	"github.com/katalvlaran/dtalearn/guard"
	"github.com/katalvlaran/dtalearn/rational"
	"github.com/katalvlaran/dtalearn/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildThresholdDTA(t *testing.T) *automaton.DTA {
	t.Helper()
	x, err := clock.NewClock("x", 1)
	require.NoError(t, err)
	alpha := clock.NewAlphabet()
	a, err := alpha.CreateAction("a")
	require.NoError(t, err)
	d := automaton.New([]clock.Clock{x}, alpha)
	q0, err := clock.NewLocation("q0")
	require.NoError(t, err)
	q1, err := clock.NewLocation("q1")
	require.NoError(t, err)
	d.AddLocation(q0)
	d.AddLocation(q1)
	require.NoError(t, d.SetInit(q0))
	d.MarkAccepting(q1)

	geq1, err := guard.NewLowerBoundAtom(x, rational.FromInt(1), true)
	require.NoError(t, err)
	_, err = d.AddTransition(q0, a, guard.NewConjunction([]clock.Clock{x}, geq1), nil, q1)
	require.NoError(t, err)
	_, err = d.AddTransition(q1, a, guard.NewConjunction([]clock.Clock{x}), nil, q1)
	require.NoError(t, err)
	return d
}

func TestExportImportRoundTripsSemantics(t *testing.T) {
	d := buildThresholdDTA(t)

	f, err := dtafile.Export(d, "threshold")
	require.NoError(t, err)
	assert.Equal(t, "threshold", f.Name)
	assert.ElementsMatch(t, []string{"x"}, f.Clocks)
	assert.ElementsMatch(t, []string{"a"}, f.Actions)
	assert.Equal(t, "q0", f.InitLocation)

	imported, err := dtafile.Import(f)
	require.NoError(t, err)
	assert.Equal(t, 1, imported.MaxConstant(), "kappa should be inferred from the integer bound x>=1")

	a, ok := imported.Alphabet.Lookup("a")
	require.True(t, ok)
	rt := automaton.NewRuntime(imported)
	accepted, err := rt.ExecuteResetDelay(word.ResetDelayWord{{Action: a, Delay: rational.FromInt(1)}})
	require.NoError(t, err)
	assert.True(t, accepted)
}

func TestImportRejectsUnknownInitLocation(t *testing.T) {
	f := &dtafile.File{
		Name:         "bad",
		Clocks:       []string{"x"},
		Actions:      []string{"a"},
		Locations:    []dtafile.LocationSpec{{Name: "q0"}},
		InitLocation: "q_missing",
	}
	_, err := dtafile.Import(f)
	assert.ErrorIs(t, err, dtafile.ErrUnknownLocation)
}

func TestImportParsesIntervalSyntax(t *testing.T) {
	f := &dtafile.File{
		Name:         "interval",
		Clocks:       []string{"x"},
		Actions:      []string{"a"},
		Locations:    []dtafile.LocationSpec{{Name: "q0"}, {Name: "q1", Accepting: true}},
		InitLocation: "q0",
		Transitions: []dtafile.TransitionSpec{
			{Source: "q0", Action: "a", Guard: map[string]string{"x": "[2, +)"}, Target: "q1"},
		},
	}
	d, err := dtafile.Import(f)
	require.NoError(t, err)
	assert.Equal(t, 2, d.MaxConstant())
}

