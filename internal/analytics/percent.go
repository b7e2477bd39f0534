package analytics

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/mocklingo/admin-dashboard-tui/internal/models"
)

// ErrInvalidSlice reports a malformed input to Percentages. It signals a
// caller contract violation and is returned fail-fast, never recovered
// into partial output.
type ErrInvalidSlice struct {
	Index  int
	Reason string
}

func (e *ErrInvalidSlice) Error() string {
	return fmt.Sprintf("invalid usage slice at index %d: %s", e.Index, e.Reason)
}

// colorToken returns the deterministic color token for an output slot.
func colorToken(idx int) string {
	return "chart-" + strconv.Itoa(idx+1)
}

// Percentages converts category counts into integer percentages using the
// largest-remainder method, so values sum to exactly 100 for any input
// whose counts are not all zero. Floors are assigned first, then the
// leftover points go to the categories with the largest fractional
// remainders, input order breaking ties. An all-zero input yields one
// zero-valued slice per category.
func Percentages(items []models.ServiceUsage) ([]models.PercentageSlice, error) {
	var total int64
	for i, item := range items {
		if item.Type == "" {
			return nil, &ErrInvalidSlice{Index: i, Reason: "missing type"}
		}
		if item.Count < 0 {
			return nil, &ErrInvalidSlice{Index: i, Reason: "negative count"}
		}
		total += item.Count
	}

	out := make([]models.PercentageSlice, len(items))
	for i, item := range items {
		out[i] = models.PercentageSlice{Name: item.Type, Color: colorToken(i)}
	}
	if total == 0 {
		return out, nil
	}

	floorSum := 0
	remainders := make([]float64, len(items))
	for i, item := range items {
		raw := float64(item.Count) / float64(total) * 100
		floor := int(math.Floor(raw))
		out[i].Value = floor
		remainders[i] = raw - float64(floor)
		floorSum += floor
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})

	for i := 0; i < 100-floorSum && i < len(order); i++ {
		out[order[i]].Value++
	}
	return out, nil
}
