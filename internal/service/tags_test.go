package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: []string{}},
		{name: "empty", in: []string{}, want: []string{}},
		{name: "duplicates collapse", in: []string{"a", "a", " a "}, want: []string{"a"}},
		{name: "blanks dropped", in: []string{"JS", "JS", "Node", "", " "}, want: []string{"JS", "Node"}},
		{name: "case sensitive", in: []string{"go", "Go"}, want: []string{"go", "Go"}},
		{name: "first occurrence order", in: []string{"b", "a", "b", "c"}, want: []string{"b", "a", "c"}},
		{name: "tabs and newlines", in: []string{"\tgo\n"}, want: []string{"go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 4, TotalPages(17, 5))
	assert.Equal(t, 0, TotalPages(0, 5))
	assert.Equal(t, 0, TotalPages(0, 100))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
}
