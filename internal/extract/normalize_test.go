package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_WhitespaceCollapse(t *testing.T) {
	nt := Normalize("a   b\t\t c\n\n  d  ")
	require.Len(t, nt.Lines, 2)
	assert.Equal(t, "a b\tc", nt.Lines[0])
	assert.Equal(t, "d", nt.Lines[1])
}

func TestNormalize_TabsSurviveAsColumnSeparators(t *testing.T) {
	nt := Normalize("1\tWhirlpool\t001\t17900.00\t15169.49")
	require.Len(t, nt.Lines, 1)
	assert.Equal(t, 4, strings.Count(nt.Lines[0], "\t"))
}

func TestNormalize_GlyphRepair(t *testing.T) {
	t.Run("letter_O_between_digits_becomes_zero", func(t *testing.T) {
		nt := Normalize("HSN 4O512")
		assert.Equal(t, "HSN 40512", nt.Lines[0])
	})

	t.Run("zero_between_letters_becomes_O", func(t *testing.T) {
		nt := Normalize("ph0ne")
		assert.Equal(t, "phOne", nt.Lines[0])
	})

	t.Run("l_between_digits_becomes_one", func(t *testing.T) {
		nt := Normalize("5l2")
		assert.Equal(t, "512", nt.Lines[0])
	})

	t.Run("digit_sequences_untouched", func(t *testing.T) {
		nt := Normalize("17900.00 15169.49")
		assert.Equal(t, "17900.00 15169.49", nt.Lines[0])
	})

	t.Run("boundary_runes_untouched", func(t *testing.T) {
		nt := Normalize("O12 12O")
		assert.Equal(t, "O12 12O", nt.Lines[0])
	})
}

func TestNormalize_CRLF(t *testing.T) {
	nt := Normalize("a\r\nb\rc")
	assert.Equal(t, []string{"a", "b", "c"}, nt.Lines)
}

func TestNormalize_NeverFailsOnGarbage(t *testing.T) {
	for _, in := range []string{" ", "\t\t", "\x00\x01", "ç∂ß∫", "\n\n\n"} {
		assert.NotPanics(t, func() { Normalize(in) })
	}
}

func TestNormalizedText_String(t *testing.T) {
	nt := Normalize("a\nb")
	assert.Equal(t, "a\nb", nt.String())
}
