package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandRollRange_NumericRange(t *testing.T) {
	rolls := ExpandRollRange("22FE1A0501", "22FE1A0505")
	assert.Equal(t, []string{"22FE1A0501", "22FE1A0502", "22FE1A0503", "22FE1A0504", "22FE1A0505"}, rolls)
}

func TestExpandRollRange_FullNumericBatch(t *testing.T) {
	rolls := ExpandRollRange("22FE1A0501", "22FE1A0599")
	require.Len(t, rolls, 99)
	assert.Equal(t, "22FE1A0501", rolls[0])
	assert.Equal(t, "22FE1A0599", rolls[98])
}

func TestExpandRollRange_NumericOverflowsIntoAlphabetic(t *testing.T) {
	// 97, 98, 99, then A0..A5.
	rolls := ExpandRollRange("22FE1A0597", "22FE1A05A5")
	require.Len(t, rolls, 9)
	assert.Equal(t, "22FE1A0599", rolls[2])
	assert.Equal(t, "22FE1A05A0", rolls[3])
	assert.Equal(t, "22FE1A05A5", rolls[8])
}

func TestExpandRollRange_AlphabeticRange(t *testing.T) {
	rolls := ExpandRollRange("22FE1A05A0", "22FE1A05B5")
	require.Len(t, rolls, 16)
	assert.Equal(t, "22FE1A05A9", rolls[9])
	assert.Equal(t, "22FE1A05B0", rolls[10])
	assert.Equal(t, "22FE1A05B5", rolls[15])
}

func TestExpandRollRange_SingleRoll(t *testing.T) {
	assert.Equal(t, []string{"22FE1A0542"}, ExpandRollRange("22FE1A0542", "22FE1A0542"))
}

func TestExpandRollRange_PrefixMismatch(t *testing.T) {
	assert.Empty(t, ExpandRollRange("22FE1A0501", "23FE1A0510"))
}

func TestExpandRollRange_EmptyInputs(t *testing.T) {
	assert.Empty(t, ExpandRollRange("", ""))
	assert.Empty(t, ExpandRollRange("22FE1A0501", ""))
	assert.Empty(t, ExpandRollRange("", "22FE1A0510"))
}

func TestExpandRollRange_LowercaseStartSuffixRejected(t *testing.T) {
	assert.Empty(t, ExpandRollRange("22FE1A05a0", "22FE1A05a5"))
}

func TestExpandRollRange_EndNeverReached(t *testing.T) {
	// End suffix "ZZ" is never generated, so expansion runs to exhaustion:
	// the rest of the numeric stage plus the full alphabetic stage.
	rolls := ExpandRollRange("22FE1A0598", "22FE1A05ZZ")
	assert.Len(t, rolls, 2+26*10)
	assert.Equal(t, "22FE1A05Z9", rolls[len(rolls)-1])
}

func TestExpandRollRange_EndBeforeStart(t *testing.T) {
	// A reversed range also runs to exhaustion rather than erroring.
	rolls := ExpandRollRange("22FE1A0510", "22FE1A0505")
	assert.Equal(t, "22FE1A0510", rolls[0])
	assert.Len(t, rolls, 90+26*10)
}
