package credential_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/credential"
)

func TestStore_HasKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"empty", "", false},
		{"whitespace only", "   \t", false},
		{"non-blank", "my-secret-key", true},
		{"padded", "  key  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := credential.NewStore(tt.key)
			assert.Equal(t, tt.want, s.HasKey())
		})
	}
}

func TestStore_SetKey(t *testing.T) {
	s := credential.NewStore("")
	assert.False(t, s.HasKey())

	s.SetKey("first")
	assert.True(t, s.HasKey())
	assert.Equal(t, "first", s.Key())

	// Overwrite is unconditional, including clearing
	s.SetKey("second")
	assert.Equal(t, "second", s.Key())

	s.SetKey("")
	assert.False(t, s.HasKey())
}
