package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "red text", stripANSI("\x1b[31mred\x1b[0m text"))
	assert.Equal(t, "plain", stripANSI("plain"))
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b", oneLine("a\r\nb"))
	assert.Equal(t, "x", oneLine("  x  "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lo…", truncate("longer text", 3))
	assert.Equal(t, "", truncate("anything", 0))

	// Wide runes count as two columns.
	got := truncate("日本語テキスト", 5)
	assert.Equal(t, "日本…", got)
}
