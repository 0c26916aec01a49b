// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expbufpool

import (
	"fmt"

	"github.com/H0llyW00dzZ/expbuf/src/expbuf"
)

// The errors below all wrap [expbuf.ErrContractViolation]; they report
// misuse of a pool rather than conditions a caller is expected to recover from.
var (
	// ErrOutstandingBuffers indicates Teardown was called while buffers were
	// still checked out.
	ErrOutstandingBuffers = fmt.Errorf("%w: expbufpool: buffers still checked out", expbuf.ErrContractViolation)

	// ErrNotCheckedOut indicates Release was given a buffer that this pool
	// did not hand out, or that was already released.
	ErrNotCheckedOut = fmt.Errorf("%w: expbufpool: buffer is not checked out from this pool", expbuf.ErrContractViolation)

	// ErrNotEmpty indicates a buffer still held data when it was released,
	// or was found holding data in the ready table.
	ErrNotEmpty = fmt.Errorf("%w: expbufpool: buffer is not empty", expbuf.ErrContractViolation)
)
