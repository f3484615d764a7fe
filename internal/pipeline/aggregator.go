// Package pipeline orchestrates ledger loading, caching, and aggregation.
package pipeline

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Summarize computes category totals from transactions within [since, until).
func Summarize(txs []model.Transaction, since, until model.Date) model.Summary {
	filtered := FilterByTime(txs, since, until)

	var s model.Summary
	activeDays := make(map[string]struct{})

	for _, tx := range filtered {
		s.Transactions++
		switch tx.Category {
		case model.CategoryIncome:
			s.Income = s.Income.Add(tx.Amount)
		case model.CategoryEssential:
			s.Essentials = s.Essentials.Add(tx.Amount)
		case model.CategoryNonEssential:
			s.NonEssential = s.NonEssential.Add(tx.Amount)
		case model.CategoryBill:
			s.Bills = s.Bills.Add(tx.Amount)
		case model.CategorySavings:
			s.Savings = s.Savings.Add(tx.Amount)
		}
		if !tx.Date.IsZero() {
			activeDays[tx.Date.String()] = struct{}{}
		}
	}

	s.ActiveDays = len(activeDays)
	s.TotalSpending = s.Essentials.Add(s.NonEssential).Add(s.Bills).Add(s.Savings)
	s.Net = s.Income.Sub(s.TotalSpending)
	return s
}

// AggregateDays computes per-day income and spending. Every day of the
// range appears so charts show gaps as zeros, most recent first. With
// open bounds the range is taken from the data itself.
func AggregateDays(txs []model.Transaction, since, until model.Date) []model.DailyStats {
	filtered := FilterByTime(txs, since, until)

	dayMap := make(map[string]*model.DailyStats)
	for _, tx := range filtered {
		if tx.Date.IsZero() {
			continue
		}
		key := tx.Date.String()
		ds, ok := dayMap[key]
		if !ok {
			ds = &model.DailyStats{Date: tx.Date}
			dayMap[key] = ds
		}
		ds.Count++
		if tx.Category == model.CategoryIncome {
			ds.Income = ds.Income.Add(tx.Amount)
		} else {
			ds.Spending = ds.Spending.Add(tx.Amount)
		}
	}

	first, last := dayBounds(filtered, since, until)
	if !first.IsZero() {
		for day := first; !day.After(last.Time); day = day.AddDays(1) {
			key := day.String()
			if _, ok := dayMap[key]; !ok {
				dayMap[key] = &model.DailyStats{Date: day}
			}
		}
	}

	days := make([]model.DailyStats, 0, len(dayMap))
	for _, ds := range dayMap {
		days = append(days, *ds)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date.Time)
	})
	return days
}

// dayBounds picks the fill range for AggregateDays: the requested bounds
// where given, otherwise the observed data extent. until is exclusive.
func dayBounds(txs []model.Transaction, since, until model.Date) (model.Date, model.Date) {
	first, last := since, until
	if !last.IsZero() {
		last = last.AddDays(-1)
	}
	if first.IsZero() || last.IsZero() {
		var min, max model.Date
		for _, tx := range txs {
			if tx.Date.IsZero() {
				continue
			}
			if min.IsZero() || tx.Date.Before(min.Time) {
				min = tx.Date
			}
			if max.IsZero() || tx.Date.After(max.Time) {
				max = tx.Date
			}
		}
		if first.IsZero() {
			first = min
		}
		if last.IsZero() {
			last = max
		}
	}
	if first.IsZero() || last.IsZero() || first.After(last.Time) {
		return model.Date{}, model.Date{}
	}
	return first, last
}

// AggregateMonths computes per-category totals by calendar month,
// most recent first. Only months with data appear.
func AggregateMonths(txs []model.Transaction, since, until model.Date) []model.MonthlyStats {
	filtered := FilterByTime(txs, since, until)

	monthMap := make(map[string]*model.MonthlyStats)
	for _, tx := range filtered {
		if tx.Date.IsZero() {
			continue
		}
		month := tx.Date.MonthStart()
		key := month.String()
		ms, ok := monthMap[key]
		if !ok {
			ms = &model.MonthlyStats{Month: month}
			monthMap[key] = ms
		}
		switch tx.Category {
		case model.CategoryIncome:
			ms.Income = ms.Income.Add(tx.Amount)
		case model.CategoryEssential:
			ms.Essentials = ms.Essentials.Add(tx.Amount)
		case model.CategoryNonEssential:
			ms.NonEssential = ms.NonEssential.Add(tx.Amount)
		case model.CategoryBill:
			ms.Bills = ms.Bills.Add(tx.Amount)
		case model.CategorySavings:
			ms.Savings = ms.Savings.Add(tx.Amount)
		}
		if tx.Category != model.CategoryIncome {
			ms.Spending = ms.Spending.Add(tx.Amount)
		}
	}

	months := make([]model.MonthlyStats, 0, len(monthMap))
	for _, ms := range monthMap {
		months = append(months, *ms)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month.After(months[j].Month.Time)
	})
	return months
}

// SavingsPoint is one step in the cumulative savings series.
type SavingsPoint struct {
	Date  model.Date
	Total decimal.Decimal
}

// SavingsProgress builds the cumulative savings series in date order.
func SavingsProgress(txs []model.Transaction) []SavingsPoint {
	deposits := FilterByCategory(txs, model.CategorySavings)
	sort.SliceStable(deposits, func(i, j int) bool {
		return deposits[i].Date.Before(deposits[j].Date.Time)
	})

	var points []SavingsPoint
	var running decimal.Decimal
	for _, tx := range deposits {
		running = running.Add(tx.Amount)
		points = append(points, SavingsPoint{Date: tx.Date, Total: running})
	}
	return points
}

// FilterByTime returns transactions whose date falls within [since, until).
// Zero bounds are open.
func FilterByTime(txs []model.Transaction, since, until model.Date) []model.Transaction {
	if since.IsZero() && until.IsZero() {
		return txs
	}
	var result []model.Transaction
	for _, tx := range txs {
		if tx.Date.InRange(since, until) {
			result = append(result, tx)
		}
	}
	return result
}

// FilterByCategory returns transactions of one category.
func FilterByCategory(txs []model.Transaction, c model.Category) []model.Transaction {
	var result []model.Transaction
	for _, tx := range txs {
		if tx.Category == c {
			result = append(result, tx)
		}
	}
	return result
}

// Search returns transactions whose description matches the query,
// case-insensitively.
func Search(txs []model.Transaction, query string) []model.Transaction {
	if query == "" {
		return txs
	}
	var result []model.Transaction
	for _, tx := range txs {
		if containsIgnoreCase(tx.Description, query) {
			result = append(result, tx)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
