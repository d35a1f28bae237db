package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/direct-connect/go-tiger/version"
)

const Version = version.Vers

var Root = &cobra.Command{
	Use:           "tigersum <command>",
	Short:         "calculate and verify Tiger hashes",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if debug {
			log, err = zap.NewDevelopment()
		} else {
			log, err = zap.NewProduction()
		}
		return err
	},
}

var (
	debug bool
	log   = zap.NewNop()
)

// SyncLog flushes buffered log entries.
func SyncLog() {
	_ = log.Sync()
}

func init() {
	Root.PersistentFlags().BoolVar(&debug, "debug", false, "print debug logs to stderr")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Version:\t%s\nBuilt:\t\t%s\nGo runtime:\t%s\n",
				Version, version.Timestamp, runtime.Version(),
			)
		},
	}
	Root.AddCommand(versionCmd)
}
