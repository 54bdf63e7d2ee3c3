package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bnema/wharf/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reconciliation loop",
	Long: `Start the reconciler: observe labeled containers, rebuild the proxy
route table when the container set changes, and watch for drift and
certificate problems in between.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(context.Background(), cfgFile)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
