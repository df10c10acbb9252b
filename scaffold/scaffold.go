// Package scaffold holds the files written by "spacetraveling init".
package scaffold

import "embed"

// Templates contains the config.yaml and dotenv templates.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS
