// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/H0llyW00dzZ/expbuf/src/config"
	"github.com/H0llyW00dzZ/expbuf/src/expbuf"
	"github.com/H0llyW00dzZ/expbuf/src/expbufpool"
	"github.com/H0llyW00dzZ/expbuf/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/expbuf/src/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// fileSystem is where input and configuration files are read from.
	fileSystem afero.Fs = afero.NewOsFs()

	// OperationPerformed reports whether a subcommand started running.
	OperationPerformed bool
	// OperationPerformedSuccessfully reports whether that subcommand finished without error.
	OperationPerformedSuccessfully bool
)

// ErrLeakedMemory is returned when the memory limit still accounts for
// bytes after the pool was torn down.
var ErrLeakedMemory = errors.New("cli: memory still accounted after teardown")

// rootFlags holds the persistent flags shared by all subcommands.
type rootFlags struct {
	configFile  string
	maxRetained int
	memoryLimit int
	logFormat   string
	logFile     string
	quiet       bool
}

// app is the state a subcommand runs with.
type app struct {
	base  logger.Logger
	flags rootFlags

	cfg     *config.Config
	log     logger.Logger
	logFile *lumberjack.Logger
	alloc   *expbuf.LimitedAllocator
	pool    *expbufpool.Pool
}

// Execute runs the root command with the process arguments.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return newRootCmd(version, log).ExecuteContext(ctx)
}

func newRootCmd(version string, log logger.Logger) *cobra.Command {
	a := &app{base: log}

	rootCmd := &cobra.Command{
		Use:               posix.CommandName(os.Args, "expbuf"),
		Short:             "Exact-fit expanding buffers and buffer pool",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.flags.configFile, "config", "c", "", "configuration file (.json, .yaml, .yml)")
	pf.IntVar(&a.flags.maxRetained, "max-retained", config.DefaultMaxRetainedCapacity, "largest capacity a released buffer keeps (0 = unrestricted)")
	pf.IntVar(&a.flags.memoryLimit, "memory-limit", 0, "bytes all pooled buffers may hold (0 = unlimited)")
	pf.StringVar(&a.flags.logFormat, "log-format", config.FormatText, "diagnostic log format: text or json")
	pf.StringVar(&a.flags.logFile, "log-file", "", "also write diagnostics to FILE, rotated by size")
	pf.BoolVarP(&a.flags.quiet, "quiet", "q", false, "suppress diagnostic output on the console")

	rootCmd.AddCommand(
		a.newSelfTestCmd(),
		a.newLinesCmd(),
		a.newStatsCmd(),
	)
	return rootCmd
}

// setup resolves the configuration and builds the logger, the allocator and
// the pool for the subcommand about to run.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFs(fileSystem, a.flags.configFile)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("max-retained") {
		cfg.Pool.MaxRetainedCapacity = a.flags.maxRetained
	}
	if flags.Changed("memory-limit") {
		cfg.Pool.MemoryLimit = a.flags.memoryLimit
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.flags.logFormat
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.flags.logFile
	}
	if flags.Changed("quiet") {
		cfg.Log.Quiet = a.flags.quiet
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	a.cfg = cfg

	a.setupLogger(cmd.ErrOrStderr())

	a.alloc = expbuf.NewLimitedAllocator(cfg.Pool.MemoryLimit, nil)
	a.pool = expbufpool.New(cfg.Pool.MaxRetainedCapacity,
		expbufpool.WithAllocator(a.alloc),
		expbufpool.WithLogger(a.log),
	)
	return nil
}

// setupLogger picks the diagnostic logger. The caller's logger is used as
// is unless the configuration asks for JSON, a log file or a quiet console.
func (a *app) setupLogger(stderr io.Writer) {
	cfg := a.cfg.Log

	console := stderr
	if cfg.Quiet {
		console = io.Discard
	}
	out := console
	if cfg.File != "" {
		a.logFile = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,  // MB
			MaxBackups: cfg.MaxBackups, // number of old files
			MaxAge:     cfg.MaxAgeDays, // days
			Compress:   cfg.Compress,
		}
		out = io.MultiWriter(console, a.logFile)
	}

	switch {
	case cfg.Format == config.FormatJSON:
		a.log = logger.NewJSONLogger(out, cfg.Quiet && cfg.File == "")
	case a.base != nil && !cfg.Quiet && cfg.File == "":
		a.log = a.base
	default:
		text := logger.NewCLILogger()
		text.SetOutput(out)
		a.log = text
	}
}

// run wraps a subcommand so that the pool is always torn down afterwards
// and the operation flags are updated.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		OperationPerformed = true
		OperationPerformedSuccessfully = false

		defer func() {
			err = errors.Join(err, a.teardown())
			if a.logFile != nil {
				err = errors.Join(err, a.logFile.Close())
			}
			OperationPerformedSuccessfully = err == nil
		}()
		return fn(cmd, args)
	}
}

func (a *app) teardown() error {
	if st := a.pool.Stats(); st.Ready+st.Used > 0 {
		if err := a.pool.Teardown(); err != nil {
			return fmt.Errorf("pool teardown: %w", err)
		}
	}
	if n := a.alloc.InUse(); n != 0 {
		return fmt.Errorf("%w: %d bytes", ErrLeakedMemory, n)
	}
	return nil
}

// release clears buf and hands it back to the pool, recording a failure in
// *errp unless an earlier error is already there.
func (a *app) release(buf *expbuf.Buffer, errp *error) { releaseTo(a.pool, buf, errp) }

func releaseTo(p *expbufpool.Pool, buf *expbuf.Buffer, errp *error) {
	buf.Clear()
	if err := p.Release(buf); err != nil && *errp == nil {
		*errp = fmt.Errorf("release buffer: %w", err)
	}
}
