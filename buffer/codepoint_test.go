package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPLenCountsCodePointsNotBytes(t *testing.T) {
	assert.Equal(t, 2, CPLen("日本"))
	assert.Equal(t, 5, CPLen("hello"))
}

func TestCodePointsSplitsIntoSingleRuneStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "日", "b"}, CodePoints("a日b"))
}

func TestCPSliceClampsOutOfRange(t *testing.T) {
	assert.Equal(t, "ell", CPSlice("hello", 1, 4))
	assert.Equal(t, "hello", CPSlice("hello", -3))
	assert.Equal(t, "", CPSlice("hello", 10, 20))
	assert.Equal(t, "", CPSlice("hello", 4, 1))
}

func TestVisualWidthASCII(t *testing.T) {
	assert.Equal(t, 5, VisualWidth("hello"))
}

func TestVisualWidthWideCharacters(t *testing.T) {
	assert.Equal(t, 4, VisualWidth("ａｂ")) // fullwidth forms, 2 cells each
	assert.Equal(t, 2, VisualWidth("日"))
}

func TestVisualWidthCombiningMarkIsZeroWidth(t *testing.T) {
	base := "é" // e + combining acute accent
	assert.Equal(t, 1, VisualWidth(base))
}

func TestStripUnsafeRemovesAnsiEscapes(t *testing.T) {
	assert.Equal(t, "hello", StripUnsafe("\x1b[31mhello\x1b[0m"))
}

func TestStripUnsafeRemovesControlAndDEL(t *testing.T) {
	assert.Equal(t, "ab", StripUnsafe("a\x7fb"))
	assert.Equal(t, "ab", StripUnsafe("a\x01b"))
}

func TestStripUnsafeKeepsNewlineAndCarriageReturn(t *testing.T) {
	assert.Equal(t, "a\nb\rc", StripUnsafe("a\nb\rc"))
}

func TestStripUnsafeDropsInvalidByteSequences(t *testing.T) {
	invalid := "a" + string([]byte{0xff, 0xfe}) + "b"
	assert.Equal(t, "ab", StripUnsafe(invalid))
}
