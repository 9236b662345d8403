package application

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAgencyList(t *testing.T) {
	input := "Reuters\nAP\n\n  Havas  \n# disbanded in 1940\nWolff\n"

	agencies, err := ParseAgencyList(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"Reuters", "AP", "Havas", "Wolff"}, agencies)
}

func TestParseAgencyList_BlankLinesOnly(t *testing.T) {
	agencies, err := ParseAgencyList(strings.NewReader("\n   \n\t\n"))

	require.NoError(t, err)
	assert.Empty(t, agencies)
}

func TestParseAgencyList_CRLF(t *testing.T) {
	agencies, err := ParseAgencyList(strings.NewReader("Reuters\r\nAP\r\n"))

	require.NoError(t, err)
	assert.Equal(t, []string{"Reuters", "AP"}, agencies)
}

func TestParseAgencyList_PreservesFileOrder(t *testing.T) {
	agencies, err := ParseAgencyList(strings.NewReader("Wolff\nAP\nReuters\n"))

	require.NoError(t, err)
	assert.Equal(t, []string{"Wolff", "AP", "Reuters"}, agencies)
}

func TestLoadAgencyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agencies.txt")
	require.NoError(t, os.WriteFile(path, []byte("Reuters\nAP\n"), 0o644))

	agencies, err := LoadAgencyList(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"Reuters", "AP"}, agencies)
}

func TestLoadAgencyList_MissingFile(t *testing.T) {
	agencies, err := LoadAgencyList(filepath.Join(t.TempDir(), "missing.txt"))

	assert.Nil(t, agencies)
	require.Error(t, err)
}
