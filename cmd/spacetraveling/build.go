package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/spacetraveling"
	"github.com/eringen/spacetraveling/logger"
)

var buildOpts spacetraveling.BuildOptions

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := spacetraveling.New(cfg.site(), spacetraveling.DefaultViews(),
			spacetraveling.WithLogger(logger.L),
		)
		defer app.Close()

		res, err := app.Build(cmd.Context(), buildOpts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d of %d posts, %d files in %s\n",
			res.Rendered, res.Posts, len(res.Files), buildOpts.OutDir)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOpts.OutDir, "out", "o", "dist", "output directory")
	buildCmd.Flags().IntVar(&buildOpts.Paths, "paths", 0, "pre-render only the newest N posts (0 renders all)")
	buildCmd.Flags().BoolVar(&buildOpts.Fallback, "fallback", false, "write post/fallback/index.html with the loading page")
}
