// Package cost tracks token usage and costs for transparency.
package cost

import "time"

// defaultCloudRatePerMillion is the fallback cost (USD per 1M tokens) used
// when no explicit rate was set for a model via SetRate.
const defaultCloudRatePerMillion = 0.50

// Tracker monitors AI usage and calculates costs.
type Tracker struct {
	localFree  bool // Local models are free
	hourlyRate map[string]float64 // Cost per 1M tokens by model
	daily      *DailyStats
	monthly    *MonthlyStats
}

// DailyStats tracks cost for a single day.
type DailyStats struct {
	Date        string
	LocalTokens int
	CloudTokens int
	CloudCost   float64
	Requests    int
}

// MonthlyStats tracks cost for a month.
type MonthlyStats struct {
	Month       string
	LocalTokens int
	CloudTokens int
	CloudCost   float64
	Requests    int
	LocalRate   float64 // Percentage handled locally
}

// NewTracker creates a new cost tracker, seeded with the default cloud
// rate so Record can compute a cost before the caller sets any
// model-specific rates.
func NewTracker() *Tracker {
	return &Tracker{
		localFree:  true,
		hourlyRate: map[string]float64{"default": defaultCloudRatePerMillion},
		daily:      &DailyStats{},
		monthly:    &MonthlyStats{},
	}
}

// SetRate configures the cloud rate (USD per 1M tokens) for a specific
// model name, overriding the default rate for that model in Record.
func (t *Tracker) SetRate(model string, ratePerMillionTokens float64) {
	t.hourlyRate[model] = ratePerMillionTokens
}

// Record records a model inference request and returns its computed cost.
// Local requests are always free; cloud requests are costed from tokens
// using the rate set via SetRate for model, falling back to the default
// rate.
func (t *Tracker) Record(model string, isLocal bool, tokens int) float64 {
	var cost float64
	if isLocal {
		t.daily.LocalTokens += tokens
		t.monthly.LocalTokens += tokens
	} else {
		rate, ok := t.hourlyRate[model]
		if !ok {
			rate = t.hourlyRate["default"]
		}
		cost = float64(tokens) / 1_000_000 * rate
		t.daily.CloudTokens += tokens
		t.monthly.CloudTokens += tokens
		t.daily.CloudCost += cost
		t.monthly.CloudCost += cost
	}
	t.daily.Requests++
	t.monthly.Requests++
	return cost
}

// Savings returns the savings compared to using cloud for everything, at
// the default cloud rate.
func (t *Tracker) Savings() float64 {
	totalTokens := t.daily.LocalTokens + t.daily.CloudTokens
	if totalTokens == 0 {
		return 0
	}
	allCloudCost := float64(totalTokens) / 1_000_000 * t.hourlyRate["default"]
	return allCloudCost - t.daily.CloudCost
}

// LocalRate returns the percentage of tokens handled locally.
func (t *Tracker) LocalRate() float64 {
	total := t.daily.LocalTokens + t.daily.CloudTokens
	if total == 0 {
		return 0
	}
	return float64(t.daily.LocalTokens) / float64(total) * 100
}

// GetDailyStats returns the current daily statistics.
func (t *Tracker) GetDailyStats() *DailyStats {
	return t.daily
}

// GetMonthlyStats returns the current monthly statistics.
func (t *Tracker) GetMonthlyStats() *MonthlyStats {
	return t.monthly
}

// ResetDaily resets daily stats (call at midnight).
func (t *Tracker) ResetDaily() {
	t.daily = &DailyStats{Date: time.Now().Format("2006-01-02")}
}

// ResetMonthly resets monthly stats (call on 1st of month).
func (t *Tracker) ResetMonthly() {
	t.monthly = &MonthlyStats{Month: time.Now().Format("2006-01")}
}
