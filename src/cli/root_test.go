// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/H0llyW00dzZ/expbuf/src/config"
	"github.com/H0llyW00dzZ/expbuf/src/expbuf"
	"github.com/H0llyW00dzZ/expbuf/src/expbufpool"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const version = "1.3.3.7-testing"

// recordingLogger collects formatted log lines.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingLogger) Printf(format string, v ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, v...))
}

func (r *recordingLogger) Println(v ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (r *recordingLogger) SetOutput(io.Writer) {}

func (r *recordingLogger) joined() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}

type result struct {
	stdout string
	stderr string
	log    *recordingLogger
	err    error
}

// execute runs the root command with args and stdin, isolated from the
// caller's environment.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	for _, name := range []string{config.EnvConfigFile, config.EnvMaxRetained, config.EnvMemoryLimit} {
		t.Setenv(name, "")
	}
	OperationPerformed = false
	OperationPerformedSuccessfully = false

	log := &recordingLogger{}
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(version, log)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), log: log, err: err}
}

func TestExecute_Version(t *testing.T) {
	res := execute(t, "", "--version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, version)
	assert.False(t, OperationPerformed, "no subcommand ran")
}

func TestExecute_UnknownCommand(t *testing.T) {
	res := execute(t, "", "frobnicate")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown command")
}

func TestSelfTest(t *testing.T) {
	res := execute(t, "", "selftest", "--max-retained", "256")
	require.NoError(t, res.err)

	assert.True(t, OperationPerformed)
	assert.True(t, OperationPerformedSuccessfully)
	assert.Contains(t, res.stdout, "Initialising pool with retention cap 256\n")
	assert.Contains(t, res.stdout, "Getting new BB buffer\n")
	assert.Contains(t, res.stdout, "Freeing buffer pool resources\n")
	assert.True(t, strings.HasSuffix(res.stdout, "Selftest passed\n"))

	logs := res.log.joined()
	assert.Contains(t, logs, "expbufpool: created buffer #1 with capacity 0")
	assert.Contains(t, logs, "expbufpool: teardown destroyed 2 buffers holding 15 bytes")
	assert.Contains(t, logs, "selftest: passed")
}

func TestSelfTest_MemoryLimit(t *testing.T) {
	res := execute(t, "", "selftest", "--memory-limit", "4")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, expbuf.ErrOutOfMemory)
	assert.True(t, OperationPerformed)
	assert.False(t, OperationPerformedSuccessfully)
	assert.ErrorIs(t, res.err, expbufpool.ErrOutstandingBuffers, "teardown reports the buffer left checked out")
}

func TestSelfTest_Quiet(t *testing.T) {
	res := execute(t, "", "selftest", "--quiet")
	require.NoError(t, res.err)
	assert.Empty(t, res.log.joined(), "quiet replaces the caller's logger")
	assert.Empty(t, res.stderr)
}

func TestSelfTest_JSONLog(t *testing.T) {
	res := execute(t, "", "selftest", "--log-format", "json")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stderr), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		var entry map[string]string
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line %q", line)
		assert.Equal(t, "info", entry["level"])
	}
	assert.Contains(t, res.stderr, `"message":"selftest: passed"`)
}

func TestExecute_InvalidLogFormat(t *testing.T) {
	res := execute(t, "", "selftest", "--log-format", "xml")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, config.ErrInvalidLogFormat)
	assert.Contains(t, res.err.Error(), "config error")
	assert.False(t, OperationPerformed)
}

func TestExecute_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expbuf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pool:\n  maxRetainedCapacity: 128\n"), 0o600))

	res := execute(t, "", "selftest", "--config", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "retention cap 128")

	res = execute(t, "", "selftest", "--config", path, "--max-retained", "64")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "retention cap 64", "flags override the file")
}

func TestExecute_MissingConfigFile(t *testing.T) {
	res := execute(t, "", "selftest", "--config", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, os.ErrNotExist)
}

func TestExecute_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expbuf.log")

	res := execute(t, "", "selftest", "--log-file", path, "--quiet")
	require.NoError(t, res.err)
	assert.Empty(t, res.stderr, "quiet keeps the console clean")
	assert.Empty(t, res.log.joined(), "the caller's logger is replaced")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "expbufpool: teardown destroyed 2 buffers")
	assert.Contains(t, string(data), "selftest: passed")
}

func TestExecute_MemoryFileSystem(t *testing.T) {
	orig := fileSystem
	t.Cleanup(func() { fileSystem = orig })

	fileSystem = afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fileSystem, "/cfg/expbuf.json", []byte(`{"pool": {"maxRetainedCapacity": 32}}`), 0o644))
	require.NoError(t, afero.WriteFile(fileSystem, "/data/input.txt", []byte("in memory\n"), 0o644))

	res := execute(t, "", "lines", "--config", "/cfg/expbuf.json", "/data/input.txt")
	require.NoError(t, res.err)
	assert.Equal(t, "     1  in memory\n", res.stdout)
	assert.Contains(t, res.log.joined(), "expbufpool: shrunk released buffer from 4096 to 32 bytes")
}
