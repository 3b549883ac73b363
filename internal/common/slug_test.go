package common

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello, World!"))
	assert.Equal(t, "a-b-c", Slugify("  a   b   c  "))
	assert.Equal(t, "release-v1-2-3", Slugify("Release v1.2.3"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abcde", Truncate("abcdefgh", 5))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// "한" is three bytes; a cut inside it must back off to the boundary
	assert.Equal(t, "한", Truncate("한국어", 4))
	assert.Equal(t, "한", Truncate("한국어", 5))
	assert.Equal(t, "한국", Truncate("한국어", 6))
	assert.True(t, utf8.ValidString(Truncate("héllo wörld", 7)))
}
