package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Symétrie axiale", "symetrie_axiale"},
		{"  Symétrie Centrale ", "symetrie_centrale"},
		{"Problème", "probleme"},
		{"trouver_valeur", "trouver_valeur"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Key(tt.in), "Key(%q)", tt.in)
	}
}

func TestKey_Deterministic(t *testing.T) {
	assert.Equal(t, Key("Symétrie axiale"), Key("Symétrie axiale"))
	assert.Equal(t, Key("SYMÉTRIE AXIALE"), Key("symétrie axiale"))
}
