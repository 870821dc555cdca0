package main

import (
	"os"
	"path/filepath"

	"github.com/jpalmerr/plotboard"
)

// candy is a slice of the candy power ranking data: name, sugar percentile,
// price percentile and win percentage.
var candy = []struct {
	name              string
	sugar, price, win float64
}{
	{"100 Grand", 0.732, 0.860, 66.97},
	{"3 Musketeers", 0.604, 0.511, 67.60},
	{"Air Heads", 0.906, 0.511, 52.34},
	{"Almond Joy", 0.465, 0.767, 50.35},
	{"Baby Ruth", 0.604, 0.767, 56.91},
	{"Haribo Gold Bears", 0.465, 0.465, 57.12},
	{"Kit Kat", 0.313, 0.511, 76.77},
	{"Milky Way", 0.604, 0.651, 73.10},
	{"Nerds", 0.848, 0.325, 55.35},
	{"Reese's Peanut Butter cup", 0.720, 0.651, 84.18},
	{"Skittles original", 0.941, 0.220, 63.09},
	{"Snickers", 0.546, 0.651, 76.67},
	{"Sour Patch Kids", 0.069, 0.116, 59.86},
	{"Starburst", 0.151, 0.220, 67.04},
	{"Twix", 0.546, 0.906, 81.64},
	{"Warheads", 0.093, 0.116, 39.01},
}

// sampleColumns returns the candy data as PlotBoard columns.
func sampleColumns() []plotboard.Column {
	names := make([]string, len(candy))
	sugar := make([]float64, len(candy))
	price := make([]float64, len(candy))
	win := make([]float64, len(candy))
	for i, c := range candy {
		names[i] = c.name
		sugar[i] = c.sugar
		price[i] = c.price
		win[i] = c.win
	}

	return []plotboard.Column{
		plotboard.NumberColumn("sugarpercent", sugar...),
		plotboard.NumberColumn("winpercent", win...),
		plotboard.NumberColumn("pricepercent", price...),
		plotboard.TextColumn("competitorname", names...),
	}
}

// writeSampleDataset saves the candy data as a dataset file in a fresh temp
// directory and returns its path.
func writeSampleDataset() (string, error) {
	dir, err := os.MkdirTemp("", "plotboard-example")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, plotboard.DefaultDatasetPath)
	if err := plotboard.SaveDataset(path, true, sampleColumns()...); err != nil {
		return "", err
	}
	return path, nil
}
