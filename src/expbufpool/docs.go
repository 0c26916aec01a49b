// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package expbufpool recycles [expbuf.Buffer] values so that a stable set of
// buffers, each grown to the size its workload needs, is reused instead of
// being allocated and collected over and over.
//
// A [Pool] keeps two tables: ready buffers waiting to be handed out and used
// buffers currently checked out. [Pool.Acquire] picks the ready buffer whose
// capacity best fits a size hint, or creates one. [Pool.Release] takes a
// buffer back once its caller has cleared it, shrinking it first when it has
// grown beyond the pool's retention cap. [Pool.Teardown] destroys every ready
// buffer and refuses to run while any buffer is still checked out.
//
// Slots emptied by a removal are reused before either table grows.
//
// A Pool is not safe for concurrent use.
//
// Example:
//
//	pool := expbufpool.New(4096)
//
//	buf, err := pool.Acquire(512)
//	if err != nil {
//		return err
//	}
//	buf.Printf("status=%d", 200)
//	process(buf.Bytes())
//
//	buf.Clear()
//	if err := pool.Release(buf); err != nil {
//		return err
//	}
//
//	return pool.Teardown()
package expbufpool
