// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expbuf

import "errors"

var (
	// ErrOutOfMemory indicates that an allocator could not provide the
	// requested region. The buffer that attempted the growth is unchanged.
	ErrOutOfMemory = errors.New("expbuf: out of memory")

	// ErrContractViolation indicates a programming error, such as purging more
	// bytes than the buffer holds. It is not expected to be handled at runtime.
	ErrContractViolation = errors.New("expbuf: contract violation")
)
