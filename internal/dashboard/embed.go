// Package dashboard holds the embedded status page assets so the server
// ships as a single binary without external files.
package dashboard

import "embed"

// Assets contains the dashboard HTML template.
//
//go:embed assets/*
var Assets embed.FS
