// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/H0llyW00dzZ/expbuf/src/expbuf"
)

// maxRetainedLine is the largest line buffer JSONLogger keeps between calls.
const maxRetainedLine = 4096

// Logger defines the interface for logging operations.
// It provides methods for formatted and unformatted output.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger writing to stderr with timestamps
// disabled, keeping stdout free for command output.
func NewCLILogger() *CLILogger {
	return &CLILogger{logger: log.New(os.Stderr, "", 0)}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// entry is the JSON shape of one log line.
type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// JSONLogger implements Logger by writing one JSON object per line.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
	line   expbuf.Buffer
}

// NewJSONLogger creates a JSON logger writing to writer. A nil writer
// discards output; silent suppresses output entirely.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		silent: silent,
	}
}

// Printf formats and logs a message.
func (j *JSONLogger) Printf(format string, v ...any) {
	if j.silent {
		return
	}
	j.emit(fmt.Sprintf(format, v...))
}

// Println logs a message formatted with fmt.Sprint semantics.
func (j *JSONLogger) Println(v ...any) {
	if j.silent {
		return
	}
	j.emit(fmt.Sprint(v...))
}

// SetOutput sets the output destination. A nil writer discards output.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}

func (j *JSONLogger) emit(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.line.Clear()
	enc := json.NewEncoder(&j.line)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entry{Level: "info", Message: msg}); err != nil {
		return
	}
	j.writer.Write(j.line.Bytes())

	// an unusually long message should not pin its buffer forever
	if j.line.Cap() > maxRetainedLine {
		j.line.Clear()
		j.line.Shrink(maxRetainedLine)
	}
}
