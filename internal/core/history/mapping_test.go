package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFor(t *testing.T) {
	id, ok := IDFor("BTC")
	assert.True(t, ok)
	assert.Equal(t, "bitcoin", id)

	// Case-insensitive
	id, ok = IDFor("btc")
	assert.True(t, ok)
	assert.Equal(t, "bitcoin", id)

	id, ok = IDFor("eTh")
	assert.True(t, ok)
	assert.Equal(t, "ethereum", id)

	_, ok = IDFor("NOTACOIN")
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Bitcoin", DisplayName("btc"))
	assert.Equal(t, "Synthetix", DisplayName("SNX"))
	assert.Equal(t, "NOTACOIN", DisplayName("notacoin"))
}
