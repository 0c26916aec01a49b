// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/H0llyW00dzZ/expbuf/src/expbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		count    int
	}{
		{
			name:     "Terminated",
			input:    "alpha\nbeta\n",
			expected: "     1  alpha\n     2  beta\n",
			count:    2,
		},
		{
			name:     "UnterminatedLastLine",
			input:    "alpha\n\ngamma",
			expected: "     1  alpha\n     2  \n     3  gamma\n",
			count:    3,
		},
		{
			name:  "Empty",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, tt.input, "lines")
			require.NoError(t, res.err)
			assert.Equal(t, tt.expected, res.stdout)
			assert.Contains(t, res.log.joined(), fmt.Sprintf("lines: numbered %d lines from stdin", tt.count))
			assert.True(t, OperationPerformedSuccessfully)
		})
	}
}

func TestLines_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o600))

	res := execute(t, "ignored\n", "lines", path)
	require.NoError(t, res.err)
	assert.Equal(t, "     1  one\n     2  two\n", res.stdout)
	assert.Contains(t, res.log.joined(), "from "+path)

	res = execute(t, "from stdin\n", "lines", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "     1  from stdin\n", res.stdout)
}

func TestLines_LongLinesAndManyLines(t *testing.T) {
	long := strings.Repeat("y", 3*readChunk+17)

	var in, want strings.Builder
	in.WriteString(long + "\n")
	want.WriteString("     1  " + long + "\n")
	for i := 2; i <= 2000; i++ {
		in.WriteString("line\n")
		fmt.Fprintf(&want, "%6d  line\n", i)
	}

	res := execute(t, in.String(), "lines", "--max-retained", "1024")
	require.NoError(t, res.err)
	assert.Equal(t, want.String(), res.stdout)
	assert.Contains(t, res.log.joined(), "expbufpool: shrunk released buffer")
}

func TestLines_Errors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		res := execute(t, "", "lines", filepath.Join(t.TempDir(), "missing.txt"))
		require.Error(t, res.err)
		assert.ErrorIs(t, res.err, os.ErrNotExist)
		assert.False(t, OperationPerformedSuccessfully)
	})

	t.Run("MemoryLimit", func(t *testing.T) {
		res := execute(t, "a\n", "lines", "--memory-limit", "100")
		require.Error(t, res.err)
		assert.ErrorIs(t, res.err, expbuf.ErrOutOfMemory)
	})

	t.Run("TooManyArgs", func(t *testing.T) {
		res := execute(t, "", "lines", "a", "b")
		require.Error(t, res.err)
	})
}
