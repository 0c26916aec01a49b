// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/H0llyW00dzZ/expbuf/src/expbuf"
	"github.com/H0llyW00dzZ/expbuf/src/expbufpool"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	concpool "github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

// statsWindow is how many buffers each worker keeps checked out at once.
const statsWindow = 4

// statsReport is the JSON form of the stats command output.
type statsReport struct {
	Workers     int              `json:"workers"`
	Iterations  int              `json:"iterations"`
	Sizes       []int            `json:"sizes"`
	MaxRetained int              `json:"maxRetainedCapacity"`
	MemoryLimit int64            `json:"memoryLimit"`
	PeakInUse   int64            `json:"peakInUse"`
	Pool        expbufpool.Stats `json:"pool"`
}

func (a *app) newStatsCmd() *cobra.Command {
	var (
		iterations int
		workers    int
		sizes      []int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run a synthetic acquire/write/release workload and report pool statistics",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed("iterations") {
			a.cfg.Stats.Iterations = iterations
		}
		if cmd.Flags().Changed("sizes") {
			a.cfg.Stats.Sizes = sizes
		}
		if cmd.Flags().Changed("workers") {
			a.cfg.Stats.Workers = workers
		}
		if err := a.cfg.Validate(); err != nil {
			return err
		}

		report, err := a.workload(cmd)
		if err != nil {
			return err
		}
		if asJSON {
			return writeStatsJSON(cmd.OutOrStdout(), report)
		}
		return writeStatsTable(cmd.OutOrStdout(), report)
	})

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "acquire/write/release cycles (default from config)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "goroutines running the workload, each with its own pool (default from config)")
	cmd.Flags().IntSliceVar(&sizes, "sizes", nil, "size hints to cycle through (default from config)")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "emit the report as JSON")
	return cmd
}

// workload runs churn on every worker, each with its own pool drawing on
// the shared memory limit, and sums the pool statistics.
func (a *app) workload(cmd *cobra.Command) (statsReport, error) {
	ctx := cmd.Context()
	cfg := a.cfg.Stats
	payload := bytes.Repeat([]byte{'x'}, slices.Max(cfg.Sizes))

	pools := make([]*expbufpool.Pool, cfg.Workers)
	pools[0] = a.pool
	for w := 1; w < len(pools); w++ {
		pools[w] = expbufpool.New(a.pool.MaxRetainedCapacity(),
			expbufpool.WithAllocator(a.alloc),
			expbufpool.WithLogger(a.log),
		)
	}

	peaks := make([]int64, len(pools))
	snapshots := make([]expbufpool.Stats, len(pools))

	pl := concpool.New().WithErrors().WithFirstError().WithMaxGoroutines(len(pools))
	for w, p := range pools {
		pl.Go(func() error {
			peak, err := a.churn(ctx, p, payload)
			peaks[w], snapshots[w] = peak, p.Stats()
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			return nil
		})
	}
	err := pl.Wait()

	// the first pool belongs to the command and is torn down with it
	for _, p := range pools[1:] {
		err = errors.Join(err, p.Teardown())
	}
	if err != nil {
		return statsReport{}, err
	}

	report := statsReport{
		Workers:     len(pools),
		Iterations:  cfg.Iterations,
		Sizes:       cfg.Sizes,
		MaxRetained: a.pool.MaxRetainedCapacity(),
		MemoryLimit: a.alloc.Limit(),
		PeakInUse:   slices.Max(peaks),
	}
	for _, st := range snapshots {
		report.Pool = sumStats(report.Pool, st)
	}
	a.log.Printf("stats: %d workers ran %d iterations each, %d buffers created, %d reused",
		report.Workers, cfg.Iterations, report.Pool.Created, report.Pool.Reused)
	return report, nil
}

// churn acquires a buffer per iteration with the next size hint, fills it
// to exactly that size and releases the oldest of the buffers held, so the
// used table keeps cycling through its holes. It returns the highest
// memory use it observed.
func (a *app) churn(ctx context.Context, p *expbufpool.Pool, payload []byte) (peak int64, err error) {
	cfg := a.cfg.Stats

	var held []*expbuf.Buffer
	defer func() {
		for _, buf := range held {
			releaseTo(p, buf, &err)
		}
	}()

	for i := range cfg.Iterations {
		if err := ctx.Err(); err != nil {
			return peak, err
		}

		hint := cfg.Sizes[i%len(cfg.Sizes)]
		buf, err := p.Acquire(hint)
		if err != nil {
			return peak, fmt.Errorf("iteration %d: %w", i, err)
		}
		held = append(held, buf)

		if hint > 0 {
			err = buf.Append(payload[:hint])
		} else {
			_, err = buf.Printf("#%d", i)
		}
		if err != nil {
			return peak, fmt.Errorf("iteration %d: %w", i, err)
		}
		peak = max(peak, a.alloc.InUse())

		if len(held) == statsWindow {
			oldest := held[0]
			held = held[1:]
			releaseTo(p, oldest, &err)
			if err != nil {
				return peak, err
			}
		}
	}
	return peak, nil
}

// sumStats adds the counters of b to a.
func sumStats(a, b expbufpool.Stats) expbufpool.Stats {
	a.Ready += b.Ready
	a.Used += b.Used
	a.ReadySlots += b.ReadySlots
	a.UsedSlots += b.UsedSlots
	a.RetainedBytes += b.RetainedBytes
	a.Created += b.Created
	a.Reused += b.Reused
	a.Released += b.Released
	a.Shrunk += b.Shrunk
	a.Destroyed += b.Destroyed
	return a
}

func writeStatsJSON(w io.Writer, report statsReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeStatsTable(w io.Writer, report statsReport) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Metric", "Value"})

	itoa := strconv.Itoa
	utoa := func(v uint64) string { return strconv.FormatUint(v, 10) }
	s := report.Pool
	rows := [][]string{
		{"Workers", itoa(report.Workers)},
		{"Iterations per worker", itoa(report.Iterations)},
		{"Max retained capacity", itoa(report.MaxRetained)},
		{"Memory limit", strconv.FormatInt(report.MemoryLimit, 10)},
		{"Peak bytes in use", strconv.FormatInt(report.PeakInUse, 10)},
		{"Ready buffers", itoa(s.Ready)},
		{"Used buffers", itoa(s.Used)},
		{"Ready slots", itoa(s.ReadySlots)},
		{"Used slots", itoa(s.UsedSlots)},
		{"Retained bytes", itoa(s.RetainedBytes)},
		{"Created", utoa(s.Created)},
		{"Reused", utoa(s.Reused)},
		{"Released", utoa(s.Released)},
		{"Shrunk", utoa(s.Shrunk)},
		{"Destroyed", utoa(s.Destroyed)},
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
