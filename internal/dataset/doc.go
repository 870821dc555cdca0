// Package dataset holds the tabular input behind the scatter plot.
//
// This package is internal to PlotBoard and covers everything between the
// file on disk and an in-memory table:
//
//   - [Frame]: column-oriented table of numeric and text columns
//   - [Ref]: a reference to a column by position or by name
//   - [Load] / [Save]: gob encoding, optionally gzip-compressed
//   - [ReadCSV]: builds a Frame from a CSV file with a header row
//
// A Frame is loaded once and never mutated afterwards, so it can be shared
// by any number of readers without synchronization.
package dataset
