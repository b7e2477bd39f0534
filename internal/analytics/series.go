// Package analytics contains the pure data-transformation functions that
// reshape raw backend records into chart-ready series. Every function
// takes its reference instant as an explicit parameter and never mutates
// its input.
package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/mocklingo/admin-dashboard-tui/internal/logger"
	"github.com/mocklingo/admin-dashboard-tui/internal/models"
)

// Token pricing in dollars per million tokens.
const (
	InputTokenCostPerM  = 15.0
	OutputTokenCostPerM = 60.0
)

// dayLabel formats a time as the short month/day label used for daily
// buckets, e.g. "Aug 29".
func dayLabel(t time.Time) string {
	return t.Format("Jan 2")
}

// hourLabel formats a time as the 2-digit hour-of-day label, e.g. "09:00".
func hourLabel(t time.Time) string {
	return fmt.Sprintf("%02d:00", t.Hour())
}

// parseCreatedAt accepts the timestamp formats the backend emits.
func parseCreatedAt(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// DailySeries buckets records into the trailing 7 calendar days ending at
// ref's day. Each record's tokens and derived cost accumulate into the
// bucket matching its day label; records with unparseable timestamps are
// skipped, and records outside the window (or whose label matches no
// initialized bucket, e.g. under clock skew) are dropped. Output is
// ordered oldest to newest, cost rounded half-up to one decimal.
func DailySeries(records []models.UsageRecord, ref time.Time) []models.DailyBucket {
	type agg struct {
		tokens int64
		cost   float64
	}
	buckets := make(map[string]*agg, 7)
	for i := 0; i < 7; i++ {
		buckets[dayLabel(ref.AddDate(0, 0, -i))] = &agg{}
	}

	for _, rec := range records {
		if rec.CreatedAt == "" {
			continue
		}
		created, err := parseCreatedAt(rec.CreatedAt)
		if err != nil {
			logger.Warn("skipping usage record with bad timestamp", "created_at", rec.CreatedAt, "error", err)
			continue
		}

		// Slightly-future records (clock skew) stay in range here and
		// are caught by the label match below.
		if ref.Sub(created) >= 7*24*time.Hour {
			continue
		}

		bucket, ok := buckets[dayLabel(created)]
		if !ok {
			// Window math said in-range but the label missed every
			// initialized day; drop rather than invent a bucket.
			continue
		}
		bucket.tokens += rec.TotalTokens()
		bucket.cost += float64(rec.TotalInputTokens)/1e6*InputTokenCostPerM +
			float64(rec.TotalOutputTokens)/1e6*OutputTokenCostPerM
	}

	out := make([]models.DailyBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		label := dayLabel(ref.AddDate(0, 0, -i))
		b := buckets[label]
		out = append(out, models.DailyBucket{
			Date:   label,
			Tokens: b.tokens,
			Cost:   roundTenth(b.cost),
		})
	}
	return out
}

// roundTenth rounds half-up at the tenths digit.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// HourlySeries buckets records into the trailing 7 hours ending at ref,
// keyed by hour-of-day label. Keying by label means records from
// different calendar days that share a wall-clock hour accumulate into
// the same bucket; the dashboard has always displayed it this way, so the
// collapsing is kept as-is. Tokens only, no cost.
func HourlySeries(records []models.UsageRecord, ref time.Time) []models.HourlyBucket {
	buckets := make(map[string]int64, 7)
	for i := 0; i < 7; i++ {
		buckets[hourLabel(ref.Add(-time.Duration(i) * time.Hour))] = 0
	}

	for _, rec := range records {
		if rec.CreatedAt == "" {
			continue
		}
		created, err := parseCreatedAt(rec.CreatedAt)
		if err != nil {
			logger.Warn("skipping usage record with bad timestamp", "created_at", rec.CreatedAt, "error", err)
			continue
		}

		if ref.Sub(created) >= 7*time.Hour {
			continue
		}
		label := hourLabel(created)
		if _, ok := buckets[label]; !ok {
			continue
		}
		buckets[label] += rec.TotalTokens()
	}

	out := make([]models.HourlyBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		label := hourLabel(ref.Add(-time.Duration(i) * time.Hour))
		out = append(out, models.HourlyBucket{Hour: label, Tokens: buckets[label]})
	}
	return out
}
