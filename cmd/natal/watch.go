package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	natsadapter "github.com/astromicai/astromic-app-sub000/internal/adapters/nats"
	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
	"github.com/astromicai/astromic-app-sub000/internal/core/ports"
)

func newWatchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print charts as the API stores them",
		Long:  "watch follows chart events on NATS JetStream and prints one summary line per stored chart until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := natsadapter.NewSubscriber(v.GetString("nats_url"), v.GetString("durable"))
			if err != nil {
				return err
			}
			defer sub.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return watchCharts(ctx, sub, func(ctx context.Context, rec *domain.ChartRecord) error {
				_, err := fmt.Fprintln(out, summarize(rec))
				return err
			})
		},
	}

	cmd.Flags().String("nats-url", "nats://localhost:4222", "NATS server URL")
	cmd.Flags().String("durable", "", "durable consumer name; empty follows new charts only")
	_ = v.BindPFlag("nats_url", cmd.Flags().Lookup("nats-url"))
	_ = v.BindPFlag("durable", cmd.Flags().Lookup("durable"))
	return cmd
}

// watchCharts subscribes handler and blocks until ctx is done.
func watchCharts(ctx context.Context, sub ports.EventSubscriber, handler func(context.Context, *domain.ChartRecord) error) error {
	if err := sub.SubscribeChartComputed(ctx, handler); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	<-ctx.Done()
	return nil
}

// summarize renders a record as one line: id, instant, ascendant and Moon.
func summarize(rec *domain.ChartRecord) string {
	c := rec.Chart
	line := fmt.Sprintf("%s  %s  asc %s %.2f (%s)",
		rec.ID, c.Instant.UTC().Format("2006-01-02T15:04Z"),
		c.Ascendant.Sign, c.Ascendant.Degree, c.Ascendant.Nakshatra)
	for _, p := range c.Planets {
		if p.Body == domain.Moon && p.OK() {
			line += fmt.Sprintf("  moon %s (%s)", p.Placement.Sign, p.Placement.Nakshatra)
		}
	}
	if c.Degraded() {
		line += "  [degraded]"
	}
	if missing := c.Missing(); len(missing) > 0 {
		line += fmt.Sprintf("  [missing %v]", missing)
	}
	return line
}
