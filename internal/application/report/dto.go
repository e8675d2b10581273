package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DateLayout is the accepted format for from/to query parameters
const DateLayout = "2006-01-02"

// monthLayout keys monthly buckets
const monthLayout = "2006-01"

// maxRangeMonths bounds monthly reports
const maxRangeMonths = 60

// DashboardResponse holds the headline numbers of a workspace
type DashboardResponse struct {
	OpenDeals      int64           `json:"open_deals"`
	OpenValue      decimal.Decimal `json:"open_value"`
	WonDeals       int64           `json:"won_deals"`
	WonValue       decimal.Decimal `json:"won_value"`
	LostDeals      int64           `json:"lost_deals"`
	WinRate        float64         `json:"win_rate"`
	AverageWonDeal decimal.Decimal `json:"average_won_deal"`
	TasksDueToday  int64           `json:"tasks_due_today"`
	TasksOverdue   int64           `json:"tasks_overdue"`
}

// StageSummary is one row of the pipeline report
type StageSummary struct {
	StageID       uuid.UUID       `json:"stage_id"`
	Name          string          `json:"name"`
	Position      int             `json:"position"`
	Probability   int             `json:"probability"`
	IsWon         bool            `json:"is_won"`
	IsLost        bool            `json:"is_lost"`
	DealCount     int64           `json:"deal_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	WeightedValue decimal.Decimal `json:"weighted_value"`
}

// PipelineReportResponse summarises every stage of a pipeline
type PipelineReportResponse struct {
	PipelineID    uuid.UUID       `json:"pipeline_id"`
	Name          string          `json:"name"`
	Stages        []StageSummary  `json:"stages"`
	DealCount     int64           `json:"deal_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	WeightedValue decimal.Decimal `json:"weighted_value"`
}

// OwnerRevenue is won value for one owner. OwnerID is nil for unassigned deals.
type OwnerRevenue struct {
	OwnerID   *uuid.UUID      `json:"owner_id"`
	DealCount int64           `json:"deal_count"`
	WonValue  decimal.Decimal `json:"won_value"`
}

// MonthlyRevenue is won value closed in one month
type MonthlyRevenue struct {
	Month     string          `json:"month"`
	DealCount int64           `json:"deal_count"`
	WonValue  decimal.Decimal `json:"won_value"`
}

// RevenueByMonthResponse lists every month in the range, ascending
type RevenueByMonthResponse struct {
	From   string           `json:"from"`
	To     string           `json:"to"`
	Months []MonthlyRevenue `json:"months"`
	Total  decimal.Decimal  `json:"total"`
}

// ForecastMonth is open pipeline expected to close in one month
type ForecastMonth struct {
	Month         string          `json:"month"`
	DealCount     int64           `json:"deal_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	WeightedValue decimal.Decimal `json:"weighted_value"`
}

// ForecastResponse groups open deals by expected close month.
// Deals without an expected close date are reported as unscheduled.
type ForecastResponse struct {
	Months        []ForecastMonth `json:"months"`
	Unscheduled   ForecastMonth   `json:"unscheduled"`
	TotalValue    decimal.Decimal `json:"total_value"`
	WeightedValue decimal.Decimal `json:"weighted_value"`
}

// Count is a labelled tally
type Count struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// ActivityReportResponse counts activities in a date range
type ActivityReportResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Total  int64   `json:"total"`
	ByType []Count `json:"by_type"`
	ByUser []Count `json:"by_user"`
}

// BillingRevenue is won revenue for one billing type
type BillingRevenue struct {
	Billing   string          `json:"billing"`
	ItemCount int64           `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// RevenueItemsReportResponse groups line items of won deals by billing type
type RevenueItemsReportResponse struct {
	ByBilling []BillingRevenue `json:"by_billing"`
	Total     decimal.Decimal  `json:"total"`
}

// RangeFilter is the from/to query of ranged reports
type RangeFilter struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// Resolve parses the range. Missing bounds default to [to - span, today].
// The returned to is exclusive: the day after the requested end date.
func (f RangeFilter) Resolve(now time.Time, span time.Duration) (from, to time.Time, err error) {
	today := truncateDay(now)
	to = today.AddDate(0, 0, 1)
	if f.To != "" {
		end, perr := time.ParseInLocation(DateLayout, f.To, time.UTC)
		if perr != nil {
			return time.Time{}, time.Time{}, shared.Validation("to must be a date in YYYY-MM-DD format")
		}
		to = end.AddDate(0, 0, 1)
	}
	from = to.Add(-span)
	if f.From != "" {
		start, perr := time.ParseInLocation(DateLayout, f.From, time.UTC)
		if perr != nil {
			return time.Time{}, time.Time{}, shared.Validation("from must be a date in YYYY-MM-DD format")
		}
		from = start
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, shared.Validation("from must not be after to")
	}
	return from, to, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
