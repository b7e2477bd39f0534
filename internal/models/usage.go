// Package models defines data structures and domain types.
package models

// UsageRecord is a single raw token-usage row from the admin API.
// Absent token counts decode to 0; the record is never mutated after
// decoding.
type UsageRecord struct {
	UserID            int    `json:"user_id,omitempty"`
	UserName          string `json:"user_name,omitempty"`
	UserEmail         string `json:"user_email,omitempty"`
	CreatedAt         string `json:"created_at"`
	TotalInputTokens  int64  `json:"total_input_tokens"`
	TotalOutputTokens int64  `json:"total_output_tokens"`
}

// TotalTokens returns the combined input and output token count.
func (r UsageRecord) TotalTokens() int64 {
	return r.TotalInputTokens + r.TotalOutputTokens
}

// DailyBucket aggregates token usage for one calendar day.
type DailyBucket struct {
	Date   string
	Tokens int64
	Cost   float64
}

// HourlyBucket aggregates token usage for one hour-of-day label ("HH:00").
type HourlyBucket struct {
	Hour   string
	Tokens int64
}

// WeeklyBucket aggregates a per-day count series into 1-based weeks
// relative to the earliest date present.
type WeeklyBucket struct {
	Name  string
	Users int
}

// TrendPoint is a single day in the user-growth trend series.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ServiceUsage is an interview-service category with its usage count.
type ServiceUsage struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// PercentageSlice is one slice of a percentage breakdown. Values across
// all slices of one input set sum to exactly 100 unless every count was 0.
type PercentageSlice struct {
	Name  string
	Value int
	Color string
}
