// Package server provides the HTTP server for the PlotBoard page.
//
// This package is internal to PlotBoard and handles all HTTP concerns:
//
//   - Page rendering: the embedded template is rendered once at startup
//   - Page serving: GET (and HEAD) "/" only, with a content-derived ETag
//   - Panic recovery: handler panics are logged with a correlation id
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
//
// Users of the plotboard library should not need to interact with this
// package directly. The server is started automatically by [plotboard.PlotBoard.Start].
package server
