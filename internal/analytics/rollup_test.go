package analytics

import (
	"testing"

	"github.com/mocklingo/admin-dashboard-tui/internal/models"
)

func TestWeeklyRollup(t *testing.T) {
	tests := []struct {
		name   string
		points []models.TrendPoint
		want   []models.WeeklyBucket
	}{
		{
			name:   "Empty",
			points: nil,
			want:   nil,
		},
		{
			name: "SingleWeek",
			points: []models.TrendPoint{
				{Date: "2026-08-01", Count: 3},
				{Date: "2026-08-02", Count: 5},
			},
			want: []models.WeeklyBucket{{Name: "week1", Users: 8}},
		},
		{
			name: "SpansWeeks",
			points: []models.TrendPoint{
				{Date: "2026-08-01", Count: 1},
				{Date: "2026-08-07", Count: 2}, // day 6, still week1
				{Date: "2026-08-08", Count: 4}, // day 7, week2
				{Date: "2026-08-20", Count: 8}, // day 19, week3
			},
			want: []models.WeeklyBucket{
				{Name: "week1", Users: 3},
				{Name: "week2", Users: 4},
				{Name: "week3", Users: 8},
			},
		},
		{
			name: "UnsortedInput",
			points: []models.TrendPoint{
				{Date: "2026-08-20", Count: 8},
				{Date: "2026-08-01", Count: 1},
				{Date: "2026-08-08", Count: 4},
			},
			want: []models.WeeklyBucket{
				{Name: "week1", Users: 1},
				{Name: "week2", Users: 4},
				{Name: "week3", Users: 8},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeeklyRollup(tt.points)
			if len(got) != len(tt.want) {
				t.Fatalf("WeeklyRollup() returned %d buckets, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("bucket[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWeeklyRollup_OutputSortedNumerically(t *testing.T) {
	// week10 would sort before week2 lexicographically; output order must
	// be numeric.
	points := []models.TrendPoint{
		{Date: "2026-05-01", Count: 1},  // week1
		{Date: "2026-05-09", Count: 2},  // week2
		{Date: "2026-07-05", Count: 10}, // week10 (day 65)
	}
	got := WeeklyRollup(points)
	if len(got) != 3 {
		t.Fatalf("got %d buckets, want 3", len(got))
	}
	wantNames := []string{"week1", "week2", "week10"}
	for i, w := range got {
		if w.Name != wantNames[i] {
			t.Errorf("bucket[%d].Name = %q, want %q", i, w.Name, wantNames[i])
		}
	}
}
