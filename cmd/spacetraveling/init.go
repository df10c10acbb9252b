package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/spacetraveling/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	SiteName string
	Endpoint string
}

var initEndpoint string

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Create a config.yaml and .env.example for a new site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd.OutOrStdout(), args[0], initEndpoint)
	},
}

func init() {
	initCmd.Flags().StringVar(&initEndpoint, "endpoint", "", "Prismic API endpoint, e.g. https://repo.cdn.prismic.io/api/v2")
}

func runInit(out io.Writer, dir, endpoint string) error {
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err == nil {
		return fmt.Errorf("%s already has a config.yaml", dir)
	}

	data := scaffoldData{
		SiteName: toTitle(filepath.Base(dir)),
		Endpoint: endpoint,
	}
	if data.Endpoint == "" {
		data.Endpoint = "https://your-repo.cdn.prismic.io/api/v2"
	}

	root := "templates"
	err := fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		outPath := strings.TrimSuffix(filepath.Join(dir, relPath), ".tmpl")
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		content, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}

		fmt.Fprintf(out, "  created %s\n", outPath)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! Next steps:")
	fmt.Fprintf(out, "  cd %s\n", dir)
	fmt.Fprintln(out, "  cp .env.example .env   # add SPACETRAVELING_PRISMIC_ACCESS_TOKEN if the repo is private")
	fmt.Fprintln(out, "  spacetraveling serve")
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func toTitle(s string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(s, "-", " "))
}
