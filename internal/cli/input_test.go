package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleText_LastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(rdr(""), "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetWithDefault(t *testing.T) {
	var out bytes.Buffer

	got, err := GetWithDefault(rdr("\n"), "Title", "Old", &out)
	require.NoError(t, err)
	assert.Equal(t, "Old", got)

	got, err = GetWithDefault(rdr("-\n"), "Collection", "favorites", &out)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = GetWithDefault(rdr("New\n"), "Title", "Old", &out)
	require.NoError(t, err)
	assert.Equal(t, "New", got)

	assert.Contains(t, out.String(), "Title [Old] (- to clear)")
}

func TestReadLine_CRLF(t *testing.T) {
	line, err := readLine(rdr("list\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "list", line)
}

func TestStdinIsTerminal_UsesSeam(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })

	isTerminal = func(int) bool { return true }
	assert.True(t, StdinIsTerminal())
	isTerminal = func(int) bool { return false }
	assert.False(t, StdinIsTerminal())
}
