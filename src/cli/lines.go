// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/H0llyW00dzZ/expbuf/src/expbuf"
	"github.com/spf13/cobra"
)

const (
	// readChunk is the spare capacity made available before each read.
	readChunk = 4096
	// flushThreshold is the output size that triggers a write to stdout.
	flushThreshold = 8192
)

func (a *app) newLinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lines [FILE]",
		Short: "Number the lines of FILE, or stdin when FILE is absent or -",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.run(a.lines),
	}
}

// lineWriter numbers lines into a pooled buffer and flushes it to w.
type lineWriter struct {
	w   io.Writer
	out *expbuf.Buffer
	n   int
}

func (lw *lineWriter) line(text []byte) error {
	lw.n++
	if _, err := lw.out.Printf("%6d  ", lw.n); err != nil {
		return err
	}
	if err := lw.out.Append(text); err != nil {
		return err
	}
	if err := lw.out.WriteByte('\n'); err != nil {
		return err
	}
	if lw.out.Len() >= flushThreshold {
		return lw.flush()
	}
	return nil
}

func (lw *lineWriter) flush() error {
	if _, err := lw.out.WriteTo(lw.w); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (a *app) lines(cmd *cobra.Command, args []string) (err error) {
	in := cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := fileSystem.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in, name = f, args[0]
	}

	inBuf, err := a.pool.Acquire(readChunk)
	if err != nil {
		return err
	}
	defer a.release(inBuf, &err)

	outBuf, err := a.pool.Acquire(flushThreshold)
	if err != nil {
		return err
	}
	defer a.release(outBuf, &err)

	lw := &lineWriter{w: cmd.OutOrStdout(), out: outBuf}
	ctx := cmd.Context()

	for eof := false; !eof; {
		if err := ctx.Err(); err != nil {
			return err
		}

		if len(inBuf.Spare()) == 0 {
			if err := inBuf.Shrink(readChunk); err != nil {
				return fmt.Errorf("grow input buffer: %w", err)
			}
		}
		n, rerr := in.Read(inBuf.Spare())
		if n > 0 {
			if _, err := inBuf.BumpLength(n); err != nil {
				return err
			}
		}
		switch {
		case rerr == io.EOF:
			eof = true
		case rerr != nil:
			return fmt.Errorf("read %s: %w", name, rerr)
		}

		for {
			i := bytes.IndexByte(inBuf.Bytes(), '\n')
			if i < 0 {
				break
			}
			if err := lw.line(inBuf.Bytes()[:i]); err != nil {
				return err
			}
			if err := inBuf.Purge(i + 1); err != nil {
				return err
			}
		}
	}

	// final line without a terminator
	if inBuf.Len() > 0 {
		if err := lw.line(inBuf.Bytes()); err != nil {
			return err
		}
		inBuf.Clear()
	}
	if err := lw.flush(); err != nil {
		return err
	}

	a.log.Printf("lines: numbered %d lines from %s", lw.n, name)
	return nil
}
