package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/longregen/genepool/config"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var cfg config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:   "genepool",
		Short: "Genepool - prompt gene pool and evolution engine",
		Long: `Genepool maintains a pool of reusable prompt fragments (genes),
assembles them into system prompts per request, and evolves their
fitness from user feedback.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
		},
	}

	rootCmd.AddCommand(
		serveCmd(),
		seedCmd(),
		genesCmd(),
		exportCmd(),
		importCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Genepool %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)
		},
	}
}
