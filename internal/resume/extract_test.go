package resume

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	short := "short resume text"
	assert.Equal(t, short, Truncate(short))

	long := strings.Repeat("x", MaxTextLength+500)
	truncated := Truncate(long)
	assert.Len(t, truncated, MaxTextLength)
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	// A two-byte rune straddling the cut must be dropped whole
	long := strings.Repeat("x", MaxTextLength-1) + "é" + strings.Repeat("x", 100)
	truncated := Truncate(long)

	assert.True(t, utf8.ValidString(truncated))
	assert.Len(t, truncated, MaxTextLength-1)
	assert.True(t, strings.HasSuffix(truncated, "x"))
}

func TestExtractTextPlain(t *testing.T) {
	text, err := ExtractText([]byte("plain text resume"), "resume.txt")
	require.NoError(t, err)
	assert.Equal(t, "plain text resume", text)
}

func TestExtractTextUnknownExtensionPassesThrough(t *testing.T) {
	text, err := ExtractText([]byte("legacy word blob"), "resume.doc")
	require.NoError(t, err)
	assert.Equal(t, "legacy word blob", text)
}

func TestExtractTextBadPDF(t *testing.T) {
	_, err := ExtractText([]byte("not a pdf"), "resume.pdf")
	assert.Error(t, err)
}
