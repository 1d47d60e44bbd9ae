// Package finance implements the financial analytics agent: revenue and
// profitability math, expense categorization, cash-flow and trend analysis
// and a GST estimate over one owner's transaction history.
package finance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	localex "github.com/vyapaarai/insight-engine/engine/locale"
)

const (
	agentName          = "finance"
	windowDays         = 30
	trendWindowDays    = 15
	maxRecommendations = 5

	growthThreshold  = 10.0
	declineThreshold = -10.0
	lowMarginFloor   = 15.0
	highMarginCeil   = 35.0
	expenseRatioCeil = 0.8
	upsellFloor      = 100.0
)

type Agent struct {
	store contractx.Store
	now   func() time.Time
}

var _ contractx.Agent = (*Agent)(nil)

type Option func(*Agent)

func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		if now != nil {
			a.now = now
		}
	}
}

func New(store contractx.Store, opts ...Option) (*Agent, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	a := &Agent{store: store, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a, nil
}

func (a *Agent) Name() string {
	return agentName
}

type topic int

const (
	topicGeneral topic = iota
	topicSales
	topicProfit
	topicExpense
	topicCashflow
	topicTax
)

func detectTopic(text string) topic {
	lowered := strings.ToLower(text)
	switch {
	case containsAny(lowered, "profit", "लाभ", "margin", "मार्जिन"):
		return topicProfit
	case containsAny(lowered, "expense", "खर्च", "cost", "लागत"):
		return topicExpense
	case containsAny(lowered, "cash", "नकदी", "flow", "फ्लो"):
		return topicCashflow
	case containsAny(lowered, "tax", "टैक्स", "gst", "जीएसटी"):
		return topicTax
	case containsAny(lowered, "sales", "बिक्री", "revenue", "आय"):
		return topicSales
	default:
		return topicGeneral
	}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func (a *Agent) ProcessQuery(ctx context.Context, req contractx.QueryRequest, _ contractx.Intent) (contractx.QueryResponse, error) {
	loc := req.Locale.OrDefault()
	switch detectTopic(req.Text) {
	case topicSales:
		return a.salesReport(ctx, req.OwnerID, loc)
	case topicProfit:
		return a.profitAnalysis(ctx, req.OwnerID, loc)
	case topicExpense:
		return a.expenseAnalysis(ctx, req.OwnerID, loc)
	case topicCashflow:
		return a.cashflowReport(ctx, req.OwnerID, loc)
	case topicTax:
		return a.taxEstimate(ctx, req.OwnerID, loc)
	default:
		return contractx.QueryResponse{
			Text:      localex.Resolve(localex.MsgFinanceHelp, loc),
			AgentName: agentName,
			Success:   true,
		}, nil
	}
}

func (a *Agent) windowTransactions(ctx context.Context, ownerID int64) ([]contractx.Transaction, error) {
	from := a.now().AddDate(0, 0, -windowDays)
	txs, err := a.store.Transactions(ctx, ownerID, contractx.TransactionFilter{From: from})
	if err != nil {
		return nil, fmt.Errorf("%w: query transactions: %v", contractx.ErrComputation, err)
	}
	return txs, nil
}

func (a *Agent) salesReport(ctx context.Context, ownerID int64, loc contractx.Locale) (contractx.QueryResponse, error) {
	txs, err := a.windowTransactions(ctx, ownerID)
	if err != nil {
		return contractx.QueryResponse{}, err
	}

	now := a.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := dayStart.AddDate(0, 0, -1)
	weekStart := now.AddDate(0, 0, -7)
	monthStart := now.AddDate(0, 0, -windowDays)

	var today, yesterday, week, month float64
	for _, tx := range txs {
		if tx.Type != contractx.TransactionSale {
			continue
		}
		switch {
		case !tx.OccurredAt.Before(dayStart):
			today += tx.Amount
		case !tx.OccurredAt.Before(yesterdayStart):
			yesterday += tx.Amount
		}
		if !tx.OccurredAt.Before(weekStart) {
			week += tx.Amount
		}
		if !tx.OccurredAt.Before(monthStart) {
			month += tx.Amount
		}
	}

	var sb strings.Builder
	sb.WriteString(localex.Format(localex.MsgSalesReport, loc, today, yesterday, week, month))
	switch {
	case today > yesterday:
		sb.WriteString(localex.Resolve(localex.MsgTrendUp, loc))
	case today < yesterday:
		sb.WriteString(localex.Resolve(localex.MsgTrendDown, loc))
	default:
		sb.WriteString(localex.Resolve(localex.MsgTrendFlat, loc))
	}

	return contractx.QueryResponse{
		Text:      sb.String(),
		AgentName: agentName,
		Success:   true,
		Data: map[string]any{
			"today_sales":     today,
			"yesterday_sales": yesterday,
			"week_sales":      week,
			"month_sales":     month,
			"daily_average":   month / windowDays,
		},
	}, nil
}

func (a *Agent) profitAnalysis(ctx context.Context, ownerID int64, loc contractx.Locale) (contractx.QueryResponse, error) {
	txs, err := a.windowTransactions(ctx, ownerID)
	if err != nil {
		return contractx.QueryResponse{}, err
	}

	revenue, profit, count := profitTotals(txs)
	if count == 0 {
		return contractx.QueryResponse{
			Text:      localex.Resolve(localex.MsgProfitNone, loc),
			AgentName: agentName,
			Success:   true,
		}, nil
	}

	margin := avgProfitMargin(profit, revenue)

	var sb strings.Builder
	sb.WriteString(localex.Format(localex.MsgProfitReport, loc, revenue, profit, margin))
	switch {
	case margin < 20:
		sb.WriteString("\n")
		sb.WriteString(localex.Resolve(localex.MsgProfitLow, loc))
	case margin > 30:
		sb.WriteString("\n")
		sb.WriteString(localex.Resolve(localex.MsgProfitHealthy, loc))
	}

	return contractx.QueryResponse{
		Text:      sb.String(),
		AgentName: agentName,
		Success:   true,
		Data: map[string]any{
			"total_revenue":     revenue,
			"total_profit":      profit,
			"avg_profit_margin": margin,
		},
	}, nil
}

func (a *Agent) expenseAnalysis(ctx context.Context, ownerID int64, loc contractx.Locale) (contractx.QueryResponse, error) {
	txs, err := a.windowTransactions(ctx, ownerID)
	if err != nil {
		return contractx.QueryResponse{}, err
	}

	total, byCategory := expenseTotals(txs)
	if total == 0 {
		return contractx.QueryResponse{
			Text:      localex.Resolve(localex.MsgExpenseNone, loc),
			AgentName: agentName,
			Success:   true,
		}, nil
	}

	var sb strings.Builder
	sb.WriteString(localex.Format(localex.MsgExpenseReport, loc, total, total/windowDays))
	for _, entry := range sortedCategories(byCategory) {
		sb.WriteString(localex.Format(localex.MsgExpenseLine, loc, entry.Name, entry.Amount, 100*entry.Amount/total))
	}

	return contractx.QueryResponse{
		Text:      sb.String(),
		AgentName: agentName,
		Success:   true,
		Data: map[string]any{
			"total_expenses":     total,
			"expense_categories": byCategory,
		},
	}, nil
}

func (a *Agent) cashflowReport(ctx context.Context, ownerID int64, loc contractx.Locale) (contractx.QueryResponse, error) {
	txs, err := a.windowTransactions(ctx, ownerID)
	if err != nil {
		return contractx.QueryResponse{}, err
	}

	flow := cashFlow(txs)

	var sb strings.Builder
	sb.WriteString(localex.Format(localex.MsgCashflowReport, loc, flow.CashIn, flow.CashOut, flow.Net))
	switch {
	case flow.Net > 0:
		sb.WriteString(localex.Resolve(localex.MsgCashflowPositive, loc))
	case flow.Net < 0:
		sb.WriteString(localex.Resolve(localex.MsgCashflowNegative, loc))
	default:
		sb.WriteString(localex.Resolve(localex.MsgCashflowBalanced, loc))
	}

	return contractx.QueryResponse{
		Text:      sb.String(),
		AgentName: agentName,
		Success:   true,
		Data: map[string]any{
			"cash_in":       flow.CashIn,
			"cash_out":      flow.CashOut,
			"net_cash_flow": flow.Net,
		},
	}, nil
}

func (a *Agent) taxEstimate(ctx context.Context, ownerID int64, loc contractx.Locale) (contractx.QueryResponse, error) {
	txs, err := a.windowTransactions(ctx, ownerID)
	if err != nil {
		return contractx.QueryResponse{}, err
	}

	revenue := salesTotal(txs)
	gst := GSTInclusive(revenue, DefaultGSTRate)

	return contractx.QueryResponse{
		Text:      localex.Format(localex.MsgTaxReport, loc, revenue, DefaultGSTRate, gst),
		AgentName: agentName,
		Success:   true,
		Data: map[string]any{
			"revenue":       revenue,
			"estimated_gst": gst,
			"gst_rate":      DefaultGSTRate,
		},
	}, nil
}

// GetInsights computes the full financial picture over the last 30 days.
func (a *Agent) GetInsights(ctx context.Context, ownerID int64) (contractx.InsightBundle, error) {
	txs, err := a.windowTransactions(ctx, ownerID)
	if err != nil {
		return contractx.InsightBundle{}, err
	}

	totalSales := salesTotal(txs)
	saleCount := 0
	for _, tx := range txs {
		if tx.Type == contractx.TransactionSale {
			saleCount++
		}
	}
	avgTransaction := 0.0
	if saleCount > 0 {
		avgTransaction = totalSales / float64(saleCount)
	}

	revenue, profit, profitableCount := profitTotals(txs)
	margin := avgProfitMargin(profit, revenue)
	totalExpenses, byCategory := expenseTotals(txs)
	largestExpense := 0.0
	for _, amount := range byCategory {
		if amount > largestExpense {
			largestExpense = amount
		}
	}
	flow := cashFlow(txs)
	trend := a.trend(txs)

	metrics := map[string]any{
		"revenue": map[string]any{
			"total_sales":           totalSales,
			"total_transactions":    saleCount,
			"avg_transaction_value": avgTransaction,
			"daily_average":         totalSales / windowDays,
		},
		"profitability": map[string]any{
			"total_profit":            profit,
			"profit_margin":           margin,
			"profitable_transactions": profitableCount,
		},
		"expenses": map[string]any{
			"total_expenses":     totalExpenses,
			"expense_categories": byCategory,
			"largest_expense":    largestExpense,
		},
		"cash_flow": map[string]any{
			"cash_in":       flow.CashIn,
			"cash_out":      flow.CashOut,
			"net_cash_flow": flow.Net,
		},
		"trends": map[string]any{
			"revenue_trend":  trend.Direction,
			"growth_rate":    trend.GrowthRate,
			"recent_sales":   trend.RecentSales,
			"previous_sales": trend.PreviousSales,
		},
		"tax": map[string]any{
			"estimated_gst": GSTInclusive(totalSales, DefaultGSTRate),
			"gst_rate":      DefaultGSTRate,
		},
	}

	return contractx.InsightBundle{
		Domain:          agentName,
		Metrics:         metrics,
		Recommendations: recommendations(totalSales, avgTransaction, margin, flow.Net, totalExpenses),
	}, nil
}

/* ------------------------------ Calculations ----------------------------- */

func salesTotal(txs []contractx.Transaction) float64 {
	total := 0.0
	for _, tx := range txs {
		if tx.Type == contractx.TransactionSale {
			total += tx.Amount
		}
	}
	return total
}

// profitTotals sums revenue and profit over sale transactions that carry a
// positive margin.
func profitTotals(txs []contractx.Transaction) (revenue, profit float64, count int) {
	for _, tx := range txs {
		if tx.Type != contractx.TransactionSale || tx.ProfitMargin == nil || *tx.ProfitMargin <= 0 {
			continue
		}
		revenue += tx.Amount
		profit += tx.Amount * *tx.ProfitMargin / 100
		count++
	}
	return revenue, profit, count
}

// avgProfitMargin is 100 * profit / revenue, and 0 when there is no revenue.
func avgProfitMargin(profit, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return 100 * profit / revenue
}

func expenseTotals(txs []contractx.Transaction) (total float64, byCategory map[string]float64) {
	byCategory = make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != contractx.TransactionExpense {
			continue
		}
		total += tx.Amount
		desc := tx.Description
		if desc == "" {
			desc = otherCategory
		}
		byCategory[CategorizeExpense(desc)] += tx.Amount
	}
	return total, byCategory
}

type flowTotals struct {
	CashIn  float64
	CashOut float64
	Net     float64
}

func cashFlow(txs []contractx.Transaction) flowTotals {
	var flow flowTotals
	for _, tx := range txs {
		switch tx.Type {
		case contractx.TransactionSale:
			flow.CashIn += tx.Amount
		case contractx.TransactionExpense, contractx.TransactionPurchase:
			flow.CashOut += tx.Amount
		}
	}
	flow.Net = flow.CashIn - flow.CashOut
	return flow
}

type trendResult struct {
	Direction     string
	GrowthRate    float64
	RecentSales   float64
	PreviousSales float64
}

// trend compares the most recent 15 days of sales against the 15 days
// before them. Growth beyond ±10% flips the direction off "stable"; an
// empty prior window pins the growth rate at 0.
func (a *Agent) trend(txs []contractx.Transaction) trendResult {
	boundary := a.now().AddDate(0, 0, -trendWindowDays)

	var recent, previous float64
	for _, tx := range txs {
		if tx.Type != contractx.TransactionSale {
			continue
		}
		if tx.OccurredAt.Before(boundary) {
			previous += tx.Amount
		} else {
			recent += tx.Amount
		}
	}

	growth := 0.0
	if previous > 0 {
		growth = 100 * (recent - previous) / previous
	}

	direction := "stable"
	switch {
	case growth > growthThreshold:
		direction = "growing"
	case growth < declineThreshold:
		direction = "declining"
	}

	return trendResult{
		Direction:     direction,
		GrowthRate:    growth,
		RecentSales:   recent,
		PreviousSales: previous,
	}
}

func recommendations(totalSales, avgTransaction, margin, netFlow, totalExpenses float64) []string {
	en := contractx.LocaleEnglish
	recs := make([]string, 0, maxRecommendations)

	if totalSales == 0 {
		recs = append(recs, localex.Resolve(localex.MsgRecStartRecords, en))
	} else if avgTransaction < upsellFloor {
		recs = append(recs, localex.Resolve(localex.MsgRecUpsell, en))
	}
	if margin > 0 && margin < lowMarginFloor {
		recs = append(recs, localex.Resolve(localex.MsgRecRaiseMargin, en))
	} else if margin > highMarginCeil {
		recs = append(recs, localex.Resolve(localex.MsgRecReinvest, en))
	}
	if netFlow < 0 {
		recs = append(recs, localex.Resolve(localex.MsgRecCutExpenses, en))
	}
	if totalSales > 0 && totalExpenses > expenseRatioCeil*totalSales {
		recs = append(recs, localex.Resolve(localex.MsgRecReviewCosts, en))
	}

	if len(recs) == 0 {
		recs = append(recs,
			localex.Resolve(localex.MsgRecKeepRecords, en),
			localex.Resolve(localex.MsgRecReviewWeekly, en),
			localex.Resolve(localex.MsgRecPlanSeasonal, en),
		)
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

type categoryEntry struct {
	Name   string
	Amount float64
}

func sortedCategories(byCategory map[string]float64) []categoryEntry {
	entries := make([]categoryEntry, 0, len(byCategory))
	for name, amount := range byCategory {
		entries = append(entries, categoryEntry{Name: name, Amount: amount})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Amount != entries[j].Amount {
			return entries[i].Amount > entries[j].Amount
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
