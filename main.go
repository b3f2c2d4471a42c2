package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

// rootCmd is the knitshape entry point. Without a subcommand it prints help.
var rootCmd = &cobra.Command{
	Use:   "knitshape",
	Short: "Machine knitting shaping calculator",
	Long: `knitshape turns "change N stitches over R rows" into a shaping schedule
in ratio notation (stitches/frequency/repetitions) for flatbed knitting machines.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "knitshape v%s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error) [default: info]")
	if err := viper.BindPFlag(keyLogLevel, rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(serveCmd, straightCmd, neckCmd, gaugeCmd, versionCmd)

	cobra.OnInitialize(initConfig)
}
