package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// summarizeDeals computes the deal part of the dashboard
func summarizeDeals(deals []sales.Deal) DashboardResponse {
	d := DashboardResponse{
		OpenValue:      decimal.Zero,
		WonValue:       decimal.Zero,
		AverageWonDeal: decimal.Zero,
	}
	for i := range deals {
		switch deals[i].Status {
		case sales.DealStatusOpen:
			d.OpenDeals++
			d.OpenValue = d.OpenValue.Add(deals[i].Value)
		case sales.DealStatusWon:
			d.WonDeals++
			d.WonValue = d.WonValue.Add(deals[i].Value)
		case sales.DealStatusLost:
			d.LostDeals++
		}
	}
	if closed := d.WonDeals + d.LostDeals; closed > 0 {
		d.WinRate = roundRatio(float64(d.WonDeals) / float64(closed))
	}
	if d.WonDeals > 0 {
		d.AverageWonDeal = d.WonValue.Div(decimal.NewFromInt(d.WonDeals)).Round(2)
	}
	return d
}

func roundRatio(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}

// summarizePipeline produces one row per stage in position order, including empty stages
func summarizePipeline(p *sales.Pipeline, deals []sales.Deal) PipelineReportResponse {
	stages := p.OrderedStages()
	index := make(map[uuid.UUID]int, len(stages))
	rows := make([]StageSummary, len(stages))
	for i, s := range stages {
		index[s.ID] = i
		rows[i] = StageSummary{
			StageID:       s.ID,
			Name:          s.Name,
			Position:      s.Position,
			Probability:   s.Probability,
			IsWon:         s.IsWon,
			IsLost:        s.IsLost,
			TotalValue:    decimal.Zero,
			WeightedValue: decimal.Zero,
		}
	}

	resp := PipelineReportResponse{
		PipelineID:    p.ID,
		Name:          p.Name,
		TotalValue:    decimal.Zero,
		WeightedValue: decimal.Zero,
	}
	for i := range deals {
		idx, ok := index[deals[i].StageID]
		if !ok {
			continue
		}
		row := &rows[idx]
		weighted := deals[i].WeightedValue(row.Probability)
		row.DealCount++
		row.TotalValue = row.TotalValue.Add(deals[i].Value)
		row.WeightedValue = row.WeightedValue.Add(weighted)
		resp.DealCount++
		resp.TotalValue = resp.TotalValue.Add(deals[i].Value)
		resp.WeightedValue = resp.WeightedValue.Add(weighted)
	}
	resp.Stages = rows
	return resp
}

// groupByOwner sums won deals per owner, highest value first
func groupByOwner(deals []sales.Deal) []OwnerRevenue {
	var unassigned *OwnerRevenue
	byOwner := make(map[uuid.UUID]*OwnerRevenue)
	for i := range deals {
		if deals[i].Status != sales.DealStatusWon {
			continue
		}
		var row *OwnerRevenue
		if deals[i].OwnerID == nil {
			if unassigned == nil {
				unassigned = &OwnerRevenue{WonValue: decimal.Zero}
			}
			row = unassigned
		} else {
			id := *deals[i].OwnerID
			if byOwner[id] == nil {
				byOwner[id] = &OwnerRevenue{OwnerID: &id, WonValue: decimal.Zero}
			}
			row = byOwner[id]
		}
		row.DealCount++
		row.WonValue = row.WonValue.Add(deals[i].Value)
	}

	out := make([]OwnerRevenue, 0, len(byOwner)+1)
	for _, row := range byOwner {
		out = append(out, *row)
	}
	if unassigned != nil {
		out = append(out, *unassigned)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].WonValue.Cmp(out[j].WonValue); c != 0 {
			return c > 0
		}
		return ownerKey(out[i].OwnerID) < ownerKey(out[j].OwnerID)
	})
	return out
}

func ownerKey(id *uuid.UUID) string {
	if id == nil {
		return "~"
	}
	return id.String()
}

// monthsBetween lists every month touched by [from, to), ascending
func monthsBetween(from, to time.Time) []string {
	months := make([]string, 0, 12)
	last := to.Add(-time.Nanosecond)
	for m := truncateMonth(from); !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m.Format(monthLayout))
	}
	return months
}

// groupByCloseMonth buckets won deals by closed_at month. Every month in range is present.
func groupByCloseMonth(deals []sales.Deal, from, to time.Time) ([]MonthlyRevenue, decimal.Decimal) {
	months := monthsBetween(from, to)
	rows := make([]MonthlyRevenue, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		rows[i] = MonthlyRevenue{Month: m, WonValue: decimal.Zero}
		index[m] = i
	}
	total := decimal.Zero
	for i := range deals {
		d := &deals[i]
		if d.Status != sales.DealStatusWon || d.ClosedAt == nil {
			continue
		}
		if d.ClosedAt.Before(from) || !d.ClosedAt.Before(to) {
			continue
		}
		idx, ok := index[d.ClosedAt.UTC().Format(monthLayout)]
		if !ok {
			continue
		}
		rows[idx].DealCount++
		rows[idx].WonValue = rows[idx].WonValue.Add(d.Value)
		total = total.Add(d.Value)
	}
	return rows, total
}

// forecast groups open deals by expected close month, weighting by stage probability
func forecast(deals []sales.Deal, probabilities map[uuid.UUID]int) ForecastResponse {
	resp := ForecastResponse{
		Unscheduled:   ForecastMonth{Month: "", TotalValue: decimal.Zero, WeightedValue: decimal.Zero},
		TotalValue:    decimal.Zero,
		WeightedValue: decimal.Zero,
	}
	byMonth := make(map[string]*ForecastMonth)
	for i := range deals {
		d := &deals[i]
		if d.Status != sales.DealStatusOpen {
			continue
		}
		row := &resp.Unscheduled
		if d.ExpectedCloseDate != nil {
			key := d.ExpectedCloseDate.UTC().Format(monthLayout)
			if byMonth[key] == nil {
				byMonth[key] = &ForecastMonth{Month: key, TotalValue: decimal.Zero, WeightedValue: decimal.Zero}
			}
			row = byMonth[key]
		}
		weighted := d.WeightedValue(probabilities[d.StageID])
		row.DealCount++
		row.TotalValue = row.TotalValue.Add(d.Value)
		row.WeightedValue = row.WeightedValue.Add(weighted)
		resp.TotalValue = resp.TotalValue.Add(d.Value)
		resp.WeightedValue = resp.WeightedValue.Add(weighted)
	}
	resp.Months = make([]ForecastMonth, 0, len(byMonth))
	for _, row := range byMonth {
		resp.Months = append(resp.Months, *row)
	}
	sort.Slice(resp.Months, func(i, j int) bool { return resp.Months[i].Month < resp.Months[j].Month })
	return resp
}

// countActivities tallies by type and by user. Entries without a user count as "system".
func countActivities(activities []engagement.Activity) (byType, byUser []Count) {
	types := make(map[string]int64)
	users := make(map[string]int64)
	for i := range activities {
		types[string(activities[i].Type)]++
		user := "system"
		if activities[i].UserID != nil {
			user = activities[i].UserID.String()
		}
		users[user]++
	}
	return sortedCounts(types), sortedCounts(users)
}

func sortedCounts(m map[string]int64) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// groupByBilling sums line items of won deals. All billing types are listed.
func groupByBilling(items []sales.RevenueItem, wonDeals map[uuid.UUID]struct{}) RevenueItemsReportResponse {
	order := []sales.BillingType{sales.BillingOneTime, sales.BillingMonthly, sales.BillingYearly}
	rows := make(map[sales.BillingType]*BillingRevenue, len(order))
	resp := RevenueItemsReportResponse{ByBilling: make([]BillingRevenue, 0, len(order)), Total: decimal.Zero}
	for _, b := range order {
		rows[b] = &BillingRevenue{Billing: string(b), Total: decimal.Zero}
	}
	for i := range items {
		if _, ok := wonDeals[items[i].DealID]; !ok {
			continue
		}
		row, ok := rows[items[i].Billing]
		if !ok {
			continue
		}
		total := items[i].Total()
		row.ItemCount++
		row.Total = row.Total.Add(total)
		resp.Total = resp.Total.Add(total)
	}
	for _, b := range order {
		resp.ByBilling = append(resp.ByBilling, *rows[b])
	}
	return resp
}
