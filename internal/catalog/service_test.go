package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuffixScheme(t *testing.T) {
	assert.Equal(t, "numeric", suffixScheme("22FE1A0501"))
	assert.Equal(t, "alpha", suffixScheme("22FE1A05A3"))
	assert.Equal(t, "", suffixScheme("22FE1A05a3"))
	assert.Equal(t, "", suffixScheme("22FE1A053A"))
	assert.Equal(t, "", suffixScheme("X"))
}

func TestValidateRollRange_BothEmpty(t *testing.T) {
	assert.NoError(t, validateRollRange("", ""))
}

func TestValidateRollRange_Incomplete(t *testing.T) {
	assert.ErrorIs(t, validateRollRange("22FE1A0501", ""), ErrRangeIncomplete)
	assert.ErrorIs(t, validateRollRange("", "22FE1A0599"), ErrRangeIncomplete)
}

func TestValidateRollRange_SameScheme(t *testing.T) {
	assert.NoError(t, validateRollRange("22FE1A0501", "22FE1A0599"))
	assert.NoError(t, validateRollRange("22FE1A05A0", "22FE1A05B5"))
}

func TestValidateRollRange_NumericIntoAlphaAllowed(t *testing.T) {
	assert.NoError(t, validateRollRange("22FE1A0590", "22FE1A05A5"))
}

func TestValidateRollRange_AlphaIntoNumericRejected(t *testing.T) {
	assert.ErrorIs(t, validateRollRange("22FE1A05A0", "22FE1A0599"), ErrSchemeMismatch)
}

func TestValidateRollRange_UnrecognizedSuffix(t *testing.T) {
	assert.ErrorIs(t, validateRollRange("22FE1A05??", "22FE1A0599"), ErrSchemeMismatch)
}
