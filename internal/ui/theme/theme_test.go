package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/orbitrest/internal/catalog"
)

func TestMethodColorsDistinct(t *testing.T) {
	seen := map[any]catalog.Method{}
	for _, m := range catalog.Methods() {
		c := MethodColor(m)
		assert.NotEqual(t, TextDim, c, m)
		if prev, ok := seen[c]; ok {
			t.Errorf("%s and %s share a color", prev, m)
		}
		seen[c] = m
	}
	assert.Equal(t, TextDim, MethodColor("TRACE"))
}
