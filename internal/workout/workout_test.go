package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.Valid(), "category %s should be valid", c)
	}

	assert.False(t, Category("").Valid())
	assert.False(t, Category("strength").Valid()) // case matters
	assert.False(t, Category("Yoga").Valid())
}

func TestCategoryColors(t *testing.T) {
	for _, c := range Categories() {
		assert.NotEmpty(t, CategoryColors[c], "category %s should have a color", c)
	}
}

func TestWeightRoundTrip(t *testing.T) {
	assert.Equal(t, "135.50", FormatWeight(135.5))
	assert.Equal(t, "0.00", FormatWeight(0))
	assert.Equal(t, "225.00", FormatWeight(225))

	parsed, err := ParseWeight("135.50")
	require.NoError(t, err)
	assert.InDelta(t, 135.5, parsed, 0.001)

	_, err = ParseWeight("heavy")
	assert.Error(t, err)
}
