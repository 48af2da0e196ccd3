package sync

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_Basic(t *testing.T) {
	local := map[string]string{"A": "1", "B": "2"}
	remote := map[string]string{"B": "9", "C": "3"}

	report := Diff(local, remote)

	assert.Equal(t, []string{"A"}, report.LocalOnly)
	assert.Equal(t, []string{"C"}, report.RemoteOnly)
	assert.Equal(t, []Mismatch{{Key: "B", Local: "2", Remote: "9"}}, report.Mismatched)
	assert.False(t, report.InSync())
}

func TestDiff_InSync(t *testing.T) {
	m := map[string]string{"A": "1", "B": "2"}

	report := Diff(m, map[string]string{"A": "1", "B": "2"})

	assert.True(t, report.InSync())
	assert.Empty(t, report.LocalOnly)
	assert.Empty(t, report.RemoteOnly)
	assert.Empty(t, report.Mismatched)
}

func TestDiff_AgreementOmitted(t *testing.T) {
	local := map[string]string{"SAME": "x", "DIFF": "a"}
	remote := map[string]string{"SAME": "x", "DIFF": "b"}

	report := Diff(local, remote)

	assert.Equal(t, []Mismatch{{Key: "DIFF", Local: "a", Remote: "b"}}, report.Mismatched)
	assert.Empty(t, report.LocalOnly)
	assert.Empty(t, report.RemoteOnly)
}

func TestDiff_CaseSensitive(t *testing.T) {
	report := Diff(map[string]string{"A": "value"}, map[string]string{"A": "VALUE", "a": "value"})

	assert.Empty(t, report.LocalOnly)
	assert.Equal(t, []string{"a"}, report.RemoteOnly)
	assert.Equal(t, []Mismatch{{Key: "A", Local: "value", Remote: "VALUE"}}, report.Mismatched)
}

func TestDiff_SortedOutput(t *testing.T) {
	local := map[string]string{"Z": "1", "A": "1", "M": "1"}

	report := Diff(local, map[string]string{})

	assert.Equal(t, []string{"A", "M", "Z"}, report.LocalOnly)
}

func TestDiff_SymmetryProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	for round := 0; round < 500; round++ {
		a := randomMap(rng)
		b := randomMap(rng)

		forward := Diff(a, b)
		backward := Diff(b, a)

		assert.Equal(t, forward.LocalOnly, backward.RemoteOnly, "round %d", round)
		assert.Equal(t, forward.RemoteOnly, backward.LocalOnly, "round %d", round)
		assert.Equal(t, len(forward.Mismatched), len(backward.Mismatched), "round %d", round)
	}
}
