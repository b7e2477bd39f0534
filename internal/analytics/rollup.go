package analytics

import (
	"sort"
	"strconv"

	"github.com/mocklingo/admin-dashboard-tui/internal/models"
)

// WeeklyRollup folds a per-day count series into 1-based weeks relative
// to the earliest date present. Points are ordered by lexicographic date
// label first; the backend emits fixed-width "2006-01-02" labels, which
// sort chronologically. Empty input yields empty output.
func WeeklyRollup(points []models.TrendPoint) []models.WeeklyBucket {
	if len(points) == 0 {
		return nil
	}

	sorted := make([]models.TrendPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	first, err := parseCreatedAt(sorted[0].Date)
	if err != nil {
		return nil
	}

	weeks := make(map[int]*models.WeeklyBucket)
	for _, p := range sorted {
		d, err := parseCreatedAt(p.Date)
		if err != nil {
			continue
		}
		diffDays := int(d.Sub(first).Hours() / 24)
		weekNum := diffDays/7 + 1

		w, ok := weeks[weekNum]
		if !ok {
			w = &models.WeeklyBucket{Name: "week" + strconv.Itoa(weekNum)}
			weeks[weekNum] = w
		}
		w.Users += p.Count
	}

	nums := make([]int, 0, len(weeks))
	for n := range weeks {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	out := make([]models.WeeklyBucket, 0, len(nums))
	for _, n := range nums {
		out = append(out, *weeks[n])
	}
	return out
}
