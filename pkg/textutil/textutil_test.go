// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/comiking/pkg/textutil"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Sci-Fi", textutil.Normalize("  Sci-Fi "))
	assert.Equal(t, "Pok\u00e9mon", textutil.Normalize("Poke\u0301mon"))
	assert.Equal(t, "", textutil.Normalize("   "))
}

func TestEqualFold(t *testing.T) {
	tests := []struct {
		a, b  string
		equal bool
	}{
		{"Slice of Life", "SLICE OF LIFE", true},
		{"Pok\u00e9mon", "POK\u00c9MON", true},
		{"Pok\u00e9mon", textutil.Normalize("Poke\u0301mon"), true},
		{"Action", "Actions", false},
		{"Sci-Fi", " sci-fi ", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.equal, textutil.EqualFold(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
