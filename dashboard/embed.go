// Package dashboard provides the embedded web page for PlotBoard.
//
// The page is an html/template that the server package renders once at
// startup with the chart title, the figure JSON and the Plotly script URL.
// Embedding it keeps PlotBoard a single binary with no asset directory.
//
// Users of the plotboard library should not need to interact with this
// package directly.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the dashboard web UI.
//
// The filesystem structure is:
//
//	assets/
//	  index.html    - Page template with the chart container and inline script
//
//go:embed assets/*
var Assets embed.FS
