// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expbuf

import (
	"fmt"

	"github.com/H0llyW00dzZ/expbuf/src/internal/helper/gc"
)

// FormatFunc formats according to a format specifier, writes at most
// len(dst) bytes of the result into dst and returns the full size of the
// result. A return value larger than len(dst) means the output was truncated.
//
// The size reported for the same format and arguments must not change
// between calls.
type FormatFunc func(dst []byte, format string, args ...any) int

// BoundedFormat is the default [FormatFunc]. It renders with the fmt package
// into a pooled scratch buffer and copies the prefix that fits into dst.
func BoundedFormat(dst []byte, format string, args ...any) int {
	var n int
	_ = gc.With(func(buf gc.Buffer) error {
		fmt.Fprintf(buf, format, args...)
		copy(dst, buf.Bytes())
		n = buf.Len()
		return nil
	})
	return n
}

// Printf appends formatted output using [BoundedFormat] and returns the
// number of bytes appended.
func (b *Buffer) Printf(format string, args ...any) (int, error) {
	return b.PrintfWith(BoundedFormat, format, args...)
}

// PrintfWith appends output produced by fn.
//
// The output is first written straight into the spare capacity. If fn
// reports that it needed more room, the region is resized to fit the
// reported size plus one byte and fn runs exactly once more. Overflowing a
// second time is an [ErrContractViolation].
func (b *Buffer) PrintfWith(fn FormatFunc, format string, args ...any) (int, error) {
	for attempt := range 2 {
		avail := len(b.data) - b.length
		n := fn(b.data[b.length:], format, args...)
		if n < 0 {
			return 0, fmt.Errorf("%w: formatter reported %d bytes", ErrContractViolation, n)
		}
		if n <= avail {
			b.length += n
			return n, nil
		}
		if attempt > 0 {
			break
		}
		if err := b.Shrink(n + 1); err != nil {
			return 0, err
		}
	}
	return 0, fmt.Errorf("%w: formatted output still did not fit after resizing", ErrContractViolation)
}
