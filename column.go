package plotboard

import (
	"errors"
	"strconv"

	"github.com/jpalmerr/plotboard/internal/dataset"
)

// ErrDatasetUnavailable is returned (wrapped) by [New] when the dataset file
// is missing or unreadable, or when it lacks the columns the plot needs.
//
// It is the only dataset failure kind; there is no retry and no partial
// rendering, so callers typically treat it as fatal:
//
//	pb, err := plotboard.New()
//	if errors.Is(err, plotboard.ErrDatasetUnavailable) {
//	    slog.Error("dataset unavailable", "error", err)
//	    os.Exit(1)
//	}
var ErrDatasetUnavailable = dataset.ErrUnavailable

// ColumnRef identifies a dataset column either by position or by name.
//
// ColumnRef is immutable. Create one with [ColumnAt] or [ColumnNamed].
// The zero value refers to the first column.
type ColumnRef struct {
	index int
	name  string
}

// ColumnAt refers to the column at position i (zero-based).
func ColumnAt(i int) ColumnRef {
	return ColumnRef{index: i}
}

// ColumnNamed refers to the column with the given name.
func ColumnNamed(name string) ColumnRef {
	return ColumnRef{name: name}
}

// Index returns the column position. Only meaningful when [ColumnRef.Name]
// is empty.
func (r ColumnRef) Index() int {
	return r.index
}

// Name returns the column name, or "" for positional references.
func (r ColumnRef) Name() string {
	return r.name
}

// String returns the column name, or the index for positional references.
func (r ColumnRef) String() string {
	if r.name != "" {
		return r.name
	}
	return strconv.Itoa(r.index)
}

func (r ColumnRef) validate() error {
	if r.name == "" && r.index < 0 {
		return errors.New("column index cannot be negative")
	}
	return nil
}

func (r ColumnRef) toDataset() dataset.Ref {
	return dataset.Ref{Index: r.index, Name: r.name}
}

// Column is an in-memory dataset column, used with [WithColumns].
//
// Create one with [NumberColumn] or [TextColumn]. Values are copied on
// creation, so later changes to the caller's slice do not affect it.
type Column struct {
	name    string
	numbers []float64
	strings []string
	text    bool
}

// NumberColumn creates a numeric column, suitable for the X and Y axes.
func NumberColumn(name string, values ...float64) Column {
	return Column{name: name, numbers: append([]float64(nil), values...)}
}

// TextColumn creates a text column, typically the hover label.
func TextColumn(name string, values ...string) Column {
	return Column{name: name, strings: append([]string(nil), values...), text: true}
}

// Name returns the column name.
func (c Column) Name() string {
	return c.name
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	if c.text {
		return len(c.strings)
	}
	return len(c.numbers)
}

func (c Column) toDataset() dataset.Column {
	if c.text {
		return dataset.Column{Name: c.name, Kind: dataset.KindText, Strings: append([]string(nil), c.strings...)}
	}
	return dataset.Column{Name: c.name, Kind: dataset.KindNumber, Numbers: append([]float64(nil), c.numbers...)}
}

// SaveDataset writes columns to path in the format [WithDatasetFile] reads,
// gzip-compressed when compress is set.
//
// The columns are validated first; unequal lengths or duplicate names return
// an error wrapping [ErrDatasetUnavailable] and nothing is written.
func SaveDataset(path string, compress bool, columns ...Column) error {
	frame := &dataset.Frame{Columns: make([]dataset.Column, len(columns))}
	for i, c := range columns {
		frame.Columns[i] = c.toDataset()
	}
	if err := frame.Validate(); err != nil {
		return err
	}
	return dataset.Save(path, frame, compress)
}
