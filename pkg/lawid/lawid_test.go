package lawid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexgate/pkg/faults"
)

func TestValid(t *testing.T) {
	accepted := []string{
		"100.00001",
		"1.00000",
		"999999.99999",
		"0.00001",
	}
	for _, id := range accepted {
		assert.True(t, Valid(id), id)
	}

	rejected := []string{
		"",
		"100.1",       // suffix too short
		"100.000001",  // suffix too long
		"abc.00001",   // non-numeric prefix
		"100.0000a",   // non-numeric suffix
		"10000001",    // missing dot
		".00001",      // empty prefix
		"100.",        // empty suffix
		"100.00001 ",  // trailing space
		" 100.00001",  // leading space
		"100..00001",  // double dot
		"-1.00001",    // sign
		"1.00001\n",   // trailing newline
		"1.00001extra",
	}
	for _, id := range rejected {
		assert.False(t, Valid(id), "%q should be rejected", id)
	}
}

func TestParse(t *testing.T) {
	id, err := Parse("100.00001")
	require.NoError(t, err)
	assert.Equal(t, LawID("100.00001"), id)
	assert.Equal(t, "100.00001", id.String())

	_, err = Parse("100.1")
	require.Error(t, err)
	assert.True(t, faults.Is(err, faults.CodeValidation))
}
