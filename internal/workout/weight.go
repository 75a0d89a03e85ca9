package workout

import (
	"fmt"
	"strconv"
)

// Weights live in NUMERIC(8,2) columns and travel through the repo
// layer as fixed-point strings. At the API boundary they are plain
// floats; the conversion happens on every write and read.

func FormatWeight(weight float64) string {
	return strconv.FormatFloat(weight, 'f', 2, 64)
}

func ParseWeight(weight string) (float64, error) {
	parsed, err := strconv.ParseFloat(weight, 64)
	if err != nil {
		return 0, fmt.Errorf("parse weight %q: %w", weight, err)
	}
	return parsed, nil
}
