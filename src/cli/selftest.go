// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ErrSelfTestFailed is returned when a selftest check does not hold.
var ErrSelfTestFailed = errors.New("cli: selftest failed")

func (a *app) newSelfTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Exercise the pool: acquire, fill, release, reacquire and tear down",
		Args:  cobra.NoArgs,
		RunE:  a.run(a.selfTest),
	}
}

// selfTest walks two buffers through a full pool lifecycle, printing each
// step to stdout and checking the pool state after it.
func (a *app) selfTest(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	p := a.pool

	step(out, "Initialising pool with retention cap %d", p.MaxRetainedCapacity())

	step(out, "Getting new AA buffer")
	aa, err := p.Acquire(0)
	if err != nil {
		return err
	}
	if err := check(aa.Len() == 0, "new AA buffer holds %d bytes", aa.Len()); err != nil {
		return err
	}

	step(out, "Adding data to AA buffer")
	if err := aa.Append([]byte("hello")); err != nil {
		return err
	}

	step(out, "Getting new BB buffer")
	bb, err := p.Acquire(0)
	if err != nil {
		return err
	}
	if err := check(bb.Len() == 0 && bb != aa, "BB buffer is not a fresh empty buffer"); err != nil {
		return err
	}

	step(out, "Adding data to AA buffer")
	if err := aa.Append([]byte("bye")); err != nil {
		return err
	}
	if err := check(aa.String() == "hellobye" && aa.Cap() == aa.Len(),
		"AA buffer holds %q with capacity %d", aa.String(), aa.Cap()); err != nil {
		return err
	}

	step(out, "Formatting into BB buffer")
	if _, err := bb.Printf("%s-%03d", "bb", 7); err != nil {
		return err
	}
	if err := check(bb.String() == "bb-007", "BB buffer holds %q", bb.String()); err != nil {
		return err
	}

	step(out, "Clearing AA buffer and returning to pool")
	aa.Clear()
	if err := p.Release(aa); err != nil {
		return err
	}

	step(out, "Clearing BB buffer and returning to pool")
	bb.Clear()
	if err := p.Release(bb); err != nil {
		return err
	}
	if st := p.Stats(); st.Ready != 2 || st.Used != 0 {
		return check(false, "expected 2 ready and 0 used buffers, have %d and %d", st.Ready, st.Used)
	}

	step(out, "Getting new AA buffer")
	aa, err = p.Acquire(0)
	if err != nil {
		return err
	}
	if err := check(aa.Len() == 0 && p.Stats().Reused == 1, "AA buffer was not reused from the ready table"); err != nil {
		return err
	}

	step(out, "Adding data to AA buffer")
	if err := aa.Append([]byte("bye")); err != nil {
		return err
	}
	cstr, err := aa.CString()
	if err != nil {
		return err
	}
	if err := check(string(cstr) == "bye\x00" && aa.Len() == 3, "AA buffer C string is %q", cstr); err != nil {
		return err
	}

	step(out, "Clearing AA buffer and returning to pool")
	aa.Clear()
	if err := p.Release(aa); err != nil {
		return err
	}

	step(out, "Freeing buffer pool resources")
	if err := p.Teardown(); err != nil {
		return err
	}
	if st := p.Stats(); st.Ready != 0 || st.Destroyed != 2 {
		return check(false, "teardown left %d ready buffers and destroyed %d", st.Ready, st.Destroyed)
	}
	if err := check(a.alloc.InUse() == 0, "%d bytes still accounted after teardown", a.alloc.InUse()); err != nil {
		return err
	}

	step(out, "Selftest passed")
	a.log.Printf("selftest: passed")
	return nil
}

func step(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func check(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrSelfTestFailed, fmt.Sprintf(format, args...))
}
