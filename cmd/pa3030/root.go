package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
	"github.com/gianluca-kaufmann/pa3030/pkg/log"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pa3030",
		Short:         "protected-area transition modeling toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A .env file is optional; env vars win either way.
			_ = godotenv.Load()
			log.SetupLogger(logLevel)

			warnLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			errors.SetZerologWarnFunc(func(w error) {
				var obj zerolog.LogObjectMarshaler
				if errors.As(w, &obj) {
					warnLogger.Warn().EmbedObject(obj).Msg(w.Error())
					return
				}
				warnLogger.Warn().Err(w).Msg("pipeline warning")
			})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newTuneCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newVisualizeCmd())
	root.AddCommand(newPathsCmd())
	return root
}

// envInt reads an integer env var, falling back on absence or parse failure.
func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
