// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expbuf

import (
	"fmt"
	"io"
)

// MinRead is the spare capacity ReadFrom makes room for when the buffer is full.
const MinRead = 512

var (
	_ io.Writer       = (*Buffer)(nil)
	_ io.StringWriter = (*Buffer)(nil)
	_ io.ByteWriter   = (*Buffer)(nil)
	_ io.ReaderFrom   = (*Buffer)(nil)
	_ io.WriterTo     = (*Buffer)(nil)
)

// Write appends p, growing the region exactly as [Buffer.Append] does.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.Append(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString appends s without converting it to a byte slice first.
func (b *Buffer) WriteString(s string) (int, error) {
	if len(s) == 0 {
		return 0, nil
	}
	if err := b.reserve(len(s)); err != nil {
		return 0, err
	}
	b.length += copy(b.data[b.length:], s)
	return len(s), nil
}

// WriteByte appends c.
func (b *Buffer) WriteByte(c byte) error {
	if err := b.reserve(1); err != nil {
		return err
	}
	b.data[b.length] = c
	b.length++
	return nil
}

// ReadFrom reads from r until EOF directly into the spare capacity.
//
// Whenever the region is full it is grown by exactly [MinRead] bytes, so up
// to MinRead bytes of spare capacity may remain afterwards. Call Shrink(0)
// to trim them.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		if len(b.data) == b.length {
			if err := b.Shrink(MinRead); err != nil {
				return total, err
			}
		}

		n, err := r.Read(b.Spare())
		if n < 0 || n > len(b.data)-b.length {
			return total, fmt.Errorf("expbuf: reader returned invalid count %d", n)
		}
		if n > 0 {
			b.length += n
			total += int64(n)
		}

		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// WriteTo writes the data to w and purges whatever w accepted, so a partial
// write leaves the unwritten remainder at the front of the buffer.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if b.length == 0 {
		return 0, nil
	}
	n, err := w.Write(b.data[:b.length])
	if n < 0 || n > b.length {
		return 0, fmt.Errorf("expbuf: writer returned invalid count %d", n)
	}
	if n > 0 {
		if perr := b.Purge(n); perr != nil {
			return int64(n), perr
		}
	}
	if err == nil && b.length > 0 {
		err = io.ErrShortWrite
	}
	return int64(n), err
}
