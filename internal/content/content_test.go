package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Stdin(t *testing.T) {
	data, err := Read("", strings.NewReader("<p>hi</p>"))
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(data))

	data, err = Read("-", strings.NewReader("from dash"))
	require.NoError(t, err)
	assert.Equal(t, "from dash", string(data))
}

func TestRead_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>file</p>"), 0644))

	data, err := Read(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "<p>file</p>", string(data))
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.html"), nil)
	assert.Error(t, err)
}

func TestDecodeEncode_HTML(t *testing.T) {
	doc, err := Decode([]byte("<p>hello</p>"), false)
	require.NoError(t, err)

	out, err := Encode(doc, "html")
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", out)
}

func TestDecode_Markdown(t *testing.T) {
	doc, err := Decode([]byte("# Title"), true)
	require.NoError(t, err)

	out, err := Encode(doc, "html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n", out)
}

func TestEncode_Text(t *testing.T) {
	doc, err := Decode([]byte("<p>a <b>b</b> c</p>"), false)
	require.NoError(t, err)

	out, err := Encode(doc, "text")
	require.NoError(t, err)
	assert.Equal(t, "a b c", out)
}

func TestEncode_Markdown(t *testing.T) {
	doc, err := Decode([]byte("<p><strong>bold</strong></p>"), false)
	require.NoError(t, err)

	out, err := Encode(doc, "markdown")
	require.NoError(t, err)
	assert.Equal(t, "**bold**", out)
}

func TestEncode_UnknownFormat(t *testing.T) {
	doc, err := Decode([]byte("<p>x</p>"), false)
	require.NoError(t, err)

	_, err = Encode(doc, "pdf")
	assert.Error(t, err)
}
