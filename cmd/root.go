package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/swissgeo/internal/config"
)

var cfg *config.Config

var (
	politicalPath string
	postalPath    string
)

var rootCmd = &cobra.Command{
	Use:   "swissgeo",
	Short: "Swiss cantons, districts, communities and zip codes",
	Long:  "Builds the Swiss administrative hierarchy from the municipality and zip-code registers and answers queries over it.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&politicalPath, "political", "", "political community register (default from config)")
	rootCmd.PersistentFlags().StringVar(&postalPath, "postal", "", "postal community register (default from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
