package dataset

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnavailable is the single failure kind of this package: the dataset is
// missing, unreadable, or does not have the shape the plot needs.
var ErrUnavailable = errors.New("dataset unavailable or unreadable")

// Kind identifies what a column holds.
type Kind uint8

const (
	// KindNumber columns hold float64 values.
	KindNumber Kind = iota + 1

	// KindText columns hold string values.
	KindText
)

// String returns the kind name used in logs and error messages.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Column is one named column of a [Frame].
//
// Exactly one of Numbers or Strings is used, selected by Kind.
type Column struct {
	Name    string
	Kind    Kind
	Numbers []float64
	Strings []string
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	if c.Kind == KindNumber {
		return len(c.Numbers)
	}
	return len(c.Strings)
}

// Text returns the value at row i formatted as text.
//
// Numbers use the shortest representation that round-trips, so 3 prints as
// "3" and 0.1 as "0.1".
func (c Column) Text(i int) string {
	if c.Kind == KindNumber {
		return strconv.FormatFloat(c.Numbers[i], 'g', -1, 64)
	}
	return c.Strings[i]
}

// Frame is a column-oriented table. All columns have the same length.
type Frame struct {
	Columns []Column
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil || len(f.Columns) == 0 {
		return 0
	}
	return f.Columns[0].Len()
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate checks the structural invariants of the frame.
//
// A valid frame has at least one column, unique column names, a known kind
// on every column, no values stored under the other kind, and equal column
// lengths.
func (f *Frame) Validate() error {
	if f == nil || len(f.Columns) == 0 {
		return fmt.Errorf("%w: frame has no columns", ErrUnavailable)
	}

	seen := make(map[string]struct{}, len(f.Columns))
	rows := f.Columns[0].Len()
	for i, c := range f.Columns {
		if c.Name != "" {
			if _, dup := seen[c.Name]; dup {
				return fmt.Errorf("%w: duplicate column name %q", ErrUnavailable, c.Name)
			}
			seen[c.Name] = struct{}{}
		}

		switch c.Kind {
		case KindNumber:
			if len(c.Strings) != 0 {
				return fmt.Errorf("%w: column %d (%s) is numeric but holds text values", ErrUnavailable, i, c.Name)
			}
		case KindText:
			if len(c.Numbers) != 0 {
				return fmt.Errorf("%w: column %d (%s) is text but holds numeric values", ErrUnavailable, i, c.Name)
			}
		default:
			return fmt.Errorf("%w: column %d (%s) has unknown kind %s", ErrUnavailable, i, c.Name, c.Kind)
		}

		if c.Len() != rows {
			return fmt.Errorf("%w: column %d (%s) has %d rows, want %d", ErrUnavailable, i, c.Name, c.Len(), rows)
		}
	}
	return nil
}

// Ref points at a column by name or, when Name is empty, by position.
type Ref struct {
	Index int
	Name  string
}

// At returns a positional reference.
func At(i int) Ref {
	return Ref{Index: i}
}

// Named returns a reference by column name.
func Named(name string) Ref {
	return Ref{Name: name}
}

// String renders the reference the way it appears in configuration.
func (r Ref) String() string {
	if r.Name != "" {
		return r.Name
	}
	return strconv.Itoa(r.Index)
}

// Resolve returns the column the reference points at.
func (f *Frame) Resolve(r Ref) (Column, error) {
	if r.Name != "" {
		for _, c := range f.Columns {
			if c.Name == r.Name {
				return c, nil
			}
		}
		return Column{}, fmt.Errorf("%w: no column named %q (have %v)", ErrUnavailable, r.Name, f.Names())
	}

	if r.Index < 0 || r.Index >= len(f.Columns) {
		return Column{}, fmt.Errorf("%w: column index %d out of range (frame has %d columns)", ErrUnavailable, r.Index, len(f.Columns))
	}
	return f.Columns[r.Index], nil
}
