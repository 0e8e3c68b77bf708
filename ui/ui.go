// Package ui carries the HTML templates inside the binary so handlers can
// render them regardless of the working directory.
package ui

import "embed"

//go:embed html
var Files embed.FS
