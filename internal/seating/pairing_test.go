package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairBranches_CSEWithECEComesFirst(t *testing.T) {
	pairs := PairBranches([]string{"MECH", "CSM", "ECE", "CSE"})
	assert.Equal(t, []BranchPair{
		{First: "CSE", Second: "ECE"},
		{First: "MECH", Second: "CSM"},
	}, pairs)
}

func TestPairBranches_PriorityTableOrder(t *testing.T) {
	pairs := PairBranches([]string{"AIML", "CIVIL", "IT", "CAI"})
	assert.Equal(t, []BranchPair{
		{First: "CAI", Second: "IT"},
		{First: "CIVIL", Second: "AIML"},
	}, pairs)
}

func TestPairBranches_UnmatchedFallBackToLexicographic(t *testing.T) {
	// CSE without ECE present gets no priority pairing.
	pairs := PairBranches([]string{"CSE", "MECH", "AIML"})
	assert.Equal(t, []BranchPair{
		{First: "AIML", Second: "CSE"},
		{First: "MECH"},
	}, pairs)
}

func TestPairBranches_SingleBranch(t *testing.T) {
	pairs := PairBranches([]string{"CSE"})
	assert.Equal(t, []BranchPair{{First: "CSE"}}, pairs)
	assert.Equal(t, "CSE", pairs[0].Partner())
}

func TestPairBranches_Empty(t *testing.T) {
	assert.Empty(t, PairBranches(nil))
}

func TestPairBranches_OrderIndependent(t *testing.T) {
	a := PairBranches([]string{"ECE", "CSE", "EEE", "CSD"})
	b := PairBranches([]string{"CSD", "EEE", "CSE", "ECE"})
	assert.Equal(t, a, b)
}
