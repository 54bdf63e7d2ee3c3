// Package cmd implements the wharf command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "wharf",
	Short: "Wharf - label-driven reverse proxy reconciler",
	Long: `Wharf watches labeled containers and keeps a Caddy reverse proxy's
route table and TLS policies converged with what is actually running.`,
}

// BuildVersion, BuildCommit and BuildDate are set at link time.
var (
	BuildVersion = "dev"
	BuildCommit  = "none"
	BuildDate    = "unknown"
)

// Execute runs the root command with build metadata attached.
func Execute(version, commit, date string) error {
	if version != "" {
		BuildVersion = version
	}
	if commit != "" {
		BuildCommit = commit
	}
	if date != "" {
		BuildDate = date
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./wharf.toml)")
}
