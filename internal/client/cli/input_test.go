package cli

import (
	"bufio"
	"bytes"
	"errors"
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
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("pw"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("pw"), pw)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.Error(t, err)

	readPassword = func(int) ([]byte, error) { return []byte{}, nil }
	_, err = GetPassword(&out)
	require.ErrorIs(t, err, errEmptyPassword)
}

func TestGetChoice(t *testing.T) {
	var out bytes.Buffer
	got, err := GetChoice(rdr("admin\nteacher\n"), "Account type", []string{"STUDENT", "TEACHER"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "TEACHER", got)
	assert.Contains(t, out.String(), "Please answer one of: STUDENT, TEACHER")

	_, err = GetChoice(rdr("admin\n"), "Account type", []string{"STUDENT"}, &out)
	require.Error(t, err)
}
