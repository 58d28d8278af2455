package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
)

func newChartCmd() *cobra.Command {
	var (
		req    domain.ChartRequest
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute one chart and print it as JSON",
		Example: `  natal chart --date 1975-08-23 --time "08:30 PM" --zone Asia/Kolkata --lat 10.7366 --lon 77.525
  natal chart --date 2000-01-01 --time 12:00 --zone UTC --lat 51.48 --lon 0 --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := newService().Compute(cmd.Context(), req)
			if err != nil {
				return err
			}
			if chart.Degraded() {
				slog.Warn("birth time unusable, chart computed for the current instant",
					"date", req.Date, "time", req.Time, "reason", chart.Fallback.Reason)
			}
			if missing := chart.Missing(); len(missing) > 0 {
				slog.Warn("some bodies could not be placed", "missing", missing)
			}
			return writeJSON(cmd.OutOrStdout(), chart, pretty)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Date, "date", "", "birth date, YYYY-MM-DD")
	f.StringVar(&req.Time, "time", "", `local birth time, "hh:mm AM" or "HH:mm"`)
	f.StringVar(&req.Zone, "zone", "Local", "IANA zone, UTC, Local or an offset such as +05:30")
	f.Float64Var(&req.Latitude, "lat", 0, "latitude in degrees, north positive")
	f.Float64Var(&req.Longitude, "lon", 0, "longitude in degrees, east positive")
	f.BoolVar(&pretty, "pretty", false, "indent the JSON output")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
