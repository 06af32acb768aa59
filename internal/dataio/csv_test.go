package dataio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadFrameFrom parses a header plus rows.
func TestReadFrameFrom(t *testing.T) {
	input := "country,x,y\nCIV,1,10\nSEN,2,20\n"

	frame, err := ReadFrameFrom(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "x", "y"}, frame.Columns)
	require.Equal(t, 2, frame.Len())
	assert.Equal(t, []string{"CIV", "1", "10"}, frame.Rows[0])
}

// TestReadFrameFromErrors covers empty input and ragged rows.
func TestReadFrameFromErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "ragged row", input: "a,b\n1,2\n3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFrameFrom(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

// TestFrameFileRoundtrip writes a frame to disk and reads it back.
func TestFrameFileRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")

	frame, err := ReadFrameFrom(strings.NewReader("country,value\nCIV,0.8\nSEN,0.6\n"))
	require.NoError(t, err)
	require.NoError(t, WriteFrame(frame, path))

	again, err := ReadFrame(path)
	require.NoError(t, err)
	assert.Equal(t, frame.Columns, again.Columns)
	assert.Equal(t, frame.Rows, again.Rows)
}

// TestReadFrameMissingFile returns the underlying open error.
func TestReadFrameMissingFile(t *testing.T) {
	_, err := ReadFrame(filepath.Join(t.TempDir(), "absent.csv"))
	assert.True(t, os.IsNotExist(err))
}
