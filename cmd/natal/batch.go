package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
)

// batchResult is one output line. Line is the 1-based input line number.
type batchResult struct {
	Line  int                 `json:"line"`
	Chart *domain.ChartResult `json:"chart,omitempty"`
	Error string              `json:"error,omitempty"`
}

func newBatchCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Compute charts for JSON lines of requests",
		Long: `batch reads one chart request per line ({"date":..,"time":..,"zone":..,"latitude":..,"longitude":..})
from file, or stdin when file is "-" or omitted, and writes one JSON result per line in input order.
A bad line produces an error result; the rest of the batch still runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			if workers < 1 {
				workers = 1
			}
			return runBatch(cmd.Context(), in, cmd.OutOrStdout(), workers, newService().Compute)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "charts computed concurrently")
	return cmd
}

// computeFunc computes one chart.
type computeFunc func(ctx context.Context, req domain.ChartRequest) (*domain.ChartResult, error)

// runBatch computes every line with at most workers goroutines in flight.
func runBatch(ctx context.Context, in io.Reader, out io.Writer, workers int, compute computeFunc) error {
	var lines [][]byte
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, append([]byte(nil), sc.Bytes()...))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	results := make([]batchResult, len(lines))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, line := range lines {
		results[i].Line = i + 1
		if len(line) == 0 {
			results[i].Error = "empty line"
			continue
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(res *batchResult, line []byte) {
			defer wg.Done()
			defer func() { <-sem }()

			var req domain.ChartRequest
			if err := json.Unmarshal(line, &req); err != nil {
				res.Error = "invalid JSON: " + err.Error()
				return
			}
			chart, err := compute(ctx, req)
			if err != nil {
				res.Error = err.Error()
				return
			}
			res.Chart = chart
		}(&results[i], line)
	}
	wg.Wait()

	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return w.Flush()
}
