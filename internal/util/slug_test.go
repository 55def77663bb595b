package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Grand Gate", "grand-gate"},
		{"punctuation collapses", "Marina -- Heights!", "marina-heights"},
		{"leading and trailing junk", "  ***Palm Tower***  ", "palm-tower"},
		{"digits kept", "Tower 21", "tower-21"},
		{"already clean", "downtown", "downtown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugWithSuffix(t *testing.T) {
	got := SlugWithSuffix("grand-gate")

	assert.True(t, strings.HasPrefix(got, "grand-gate-"))
	assert.Greater(t, len(got), len("grand-gate-"))
}
