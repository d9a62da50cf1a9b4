package uid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUID_Generate(t *testing.T) {
	g := NewUUID()

	a, b := g.Generate(), g.Generate()

	assert.NotEqual(t, a, b)
	assert.True(t, IsUUID(a))
}

func TestIsUUID(t *testing.T) {
	tests := map[string]bool{
		"0f8fad5b-d9cb-469f-a165-70867728950e":         true,
		"0F8FAD5B-D9CB-469F-A165-70867728950E":         true,
		"0f8fad5bd9cb469fa16570867728950e":             false,
		"{0f8fad5b-d9cb-469f-a165-70867728950e}":       false,
		"urn:uuid:0f8fad5b-d9cb-469f-a165-70867728950e": false,
		"zf8fad5b-d9cb-469f-a165-70867728950e":         false,
		"":                                             false,
	}

	for in, want := range tests {
		assert.Equal(t, want, IsUUID(in), in)
	}
}
