package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/astromicai/astromic-app-sub000/internal/adapters/ephemeris"
	"github.com/astromicai/astromic-app-sub000/internal/core/usecases"
	"github.com/astromicai/astromic-app-sub000/internal/pkg/logging"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ASTROMIC")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "natal",
		Short:         "Compute sidereal natal charts",
		Long:          "natal computes Lahiri sidereal charts: the ascendant and nine bodies, each placed in a sign and nakshatra.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), v.GetString("log_level"), "text"))
		},
	}

	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newChartCmd(), newBatchCmd(), newWatchCmd(v))
	return root
}

// newService builds a chart service with no storage or events.
func newService() *usecases.ChartService {
	return usecases.NewChartService(usecases.NewEngine(ephemeris.New()), nil, nil)
}
