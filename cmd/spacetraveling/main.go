package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/spacetraveling/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	envFile string
	cfg     fileConfig
)

var rootCmd = &cobra.Command{
	Use:   "spacetraveling",
	Short: "spacetraveling - a Prismic-backed blog built with Go and Echo",
	Long: `spacetraveling serves a blog whose posts live in a Prismic repository.
It renders the paginated listing, single posts with reading time and
previous/next navigation, RSS and a sitemap, and can export the site
as static files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}
		loaded, err := loadConfig(cfgFile, envFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return logger.Init(cfg.Log.logger())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the spacetraveling version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "spacetraveling %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.AddCommand(serveCmd, buildCmd, initCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
