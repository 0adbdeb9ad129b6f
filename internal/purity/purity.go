// Package purity maps gold purity grades to multipliers relative to 24 karat.
package purity

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ReferenceKarat is the karat value of pure gold.
const ReferenceKarat = 24.0

// ErrInvalidGrade is returned when a grade is neither a known label nor a number.
var ErrInvalidGrade = errors.New("purity: invalid grade")

var table = map[string]float64{
	"24k": 24.0 / ReferenceKarat,
	"23k": 23.0 / ReferenceKarat,
	"22k": 22.0 / ReferenceKarat,
	"20k": 20.0 / ReferenceKarat,
	"18k": 18.0 / ReferenceKarat,
	"16k": 16.0 / ReferenceKarat,
	"14k": 14.0 / ReferenceKarat,
	"10k": 10.0 / ReferenceKarat,
	"9k":  9.0 / ReferenceKarat,
}

// Resolve returns the multiplier for grade. Known labels ("22k") come from the
// fixed table; anything else is read as a plain karat number and divided by
// 24. The result is not clamped, so "30" resolves to 1.25.
func Resolve(grade string) (float64, error) {
	key := strings.ToLower(strings.TrimSpace(grade))
	if key == "" {
		return 0, ErrInvalidGrade
	}
	if m, ok := table[key]; ok {
		return m, nil
	}

	karat, err := strconv.ParseFloat(strings.TrimSuffix(key, "k"), 64)
	if err != nil || math.IsNaN(karat) || math.IsInf(karat, 0) {
		return 0, ErrInvalidGrade
	}
	return karat / ReferenceKarat, nil
}

// Multiplier is Resolve with the zero sentinel in place of an error.
func Multiplier(grade string) float64 {
	m, err := Resolve(grade)
	if err != nil {
		return 0
	}
	return m
}

// Grades lists the table labels, purest first.
func Grades() []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return table[out[i]] > table[out[j]] })
	return out
}
