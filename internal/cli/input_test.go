package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(reader("  hello world  \n"), "Say something", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Say something")
}

func TestGetSimpleTextPartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(reader("no newline"), "Prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetDefaultedText(t *testing.T) {
	var out bytes.Buffer

	got, err := GetDefaultedText(reader("\n"), "Title", "Current Title", &out)
	require.NoError(t, err)
	assert.Equal(t, "Current Title", got, "empty answer keeps the current value")

	got, err = GetDefaultedText(reader("New Title\n"), "Title", "Current Title", &out)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	got, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Contains(t, out.String(), "Enter password:")
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(reader("first line\nsecond line\n\nignored\n"), "Body", &out)
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line", got)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"whatever\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := Confirm(reader(tt.answer), "Delete?", &out)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "answer %q", tt.answer)
	}
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"go", "concurrency"}, ParseTags(" go , concurrency "))
	assert.Equal(t, []string{"solo"}, ParseTags("solo"))
	assert.Nil(t, ParseTags(" , , "))
	assert.Nil(t, ParseTags(""))
}
