package finance

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
)

type fakeStore struct {
	txs []contractx.Transaction
	err error
}

func (f *fakeStore) Transactions(context.Context, int64, contractx.TransactionFilter) ([]contractx.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.txs, nil
}

func (f *fakeStore) Inventory(context.Context, int64) ([]contractx.InventoryItem, error) {
	return nil, nil
}

func (f *fakeStore) Customers(context.Context, int64) ([]contractx.Customer, error) {
	return nil, nil
}

func (f *fakeStore) RecordSale(context.Context, contractx.Transaction) (contractx.Transaction, error) {
	return contractx.Transaction{}, nil
}

func (f *fakeStore) AdjustStock(context.Context, int64, string, int) (int, error) {
	return 0, nil
}

func newAgent(t *testing.T, store contractx.Store, now time.Time) *Agent {
	t.Helper()
	a, err := New(store, WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func margin(v float64) *float64 {
	return &v
}

func sale(amount float64, daysAgo int, now time.Time) contractx.Transaction {
	return contractx.Transaction{
		Type:       contractx.TransactionSale,
		Amount:     amount,
		OccurredAt: now.AddDate(0, 0, -daysAgo),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestGSTInclusive(t *testing.T) {
	t.Parallel()

	if got := GSTInclusive(1000, 18); !almostEqual(got, 152.54) {
		t.Fatalf("GSTInclusive(1000, 18) = %v, want ~152.54", got)
	}
	if got := GSTInclusive(0, 18); got != 0 {
		t.Fatalf("GSTInclusive(0, 18) = %v, want 0", got)
	}
	if got := GSTInclusive(1000, 0); got != 0 {
		t.Fatalf("GSTInclusive(1000, 0) = %v, want 0", got)
	}
	if got := GSTInclusive(-500, 18); got != 0 {
		t.Fatalf("negative revenue yielded %v", got)
	}
}

func TestCategorizeExpense(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Shop rent for May":          "Rent",
		"बिजली का बिल":               "Utilities",
		"staff salary payment":       "Staff Salary",
		"new stock from wholesaler":  "Inventory Purchase",
		"delivery charges":           "Transportation",
		"facebook advertisement":     "Marketing",
		"fridge repair":              "Maintenance",
		"GST license fee":            "License/Fees",
		"shop insurance premium":     "Insurance",
		"monthly loan EMI":           "Loan EMI",
		"miscellaneous cash outflow": "Other",
	}
	for desc, want := range cases {
		if got := CategorizeExpense(desc); got != want {
			t.Fatalf("CategorizeExpense(%q) = %s, want %s", desc, got, want)
		}
	}
}

func TestCategorizeExpenseFirstRuleWins(t *testing.T) {
	t.Parallel()

	// "staff" and "transport" both appear; Staff Salary precedes
	// Transportation in the table.
	if got := CategorizeExpense("staff transport salary"); got != "Staff Salary" {
		t.Fatalf("mixed description categorized as %s, want Staff Salary", got)
	}
}

func TestProfitTotalsSkipsMissingMargins(t *testing.T) {
	t.Parallel()

	txs := []contractx.Transaction{
		{Type: contractx.TransactionSale, Amount: 1000, ProfitMargin: margin(20)},
		{Type: contractx.TransactionSale, Amount: 500},
		{Type: contractx.TransactionSale, Amount: 200, ProfitMargin: margin(0)},
		{Type: contractx.TransactionExpense, Amount: 300, ProfitMargin: margin(50)},
	}

	revenue, profit, count := profitTotals(txs)
	if revenue != 1000 || count != 1 {
		t.Fatalf("revenue = %v count = %d, want 1000 from one transaction", revenue, count)
	}
	if !almostEqual(profit, 200) {
		t.Fatalf("profit = %v, want 200", profit)
	}
}

func TestAvgProfitMargin(t *testing.T) {
	t.Parallel()

	if got := avgProfitMargin(200, 1000); !almostEqual(got, 20) {
		t.Fatalf("avgProfitMargin(200, 1000) = %v, want 20", got)
	}
	if got := avgProfitMargin(200, 0); got != 0 {
		t.Fatalf("zero revenue yielded margin %v", got)
	}
}

func TestTrendDirections(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.July, 31, 12, 0, 0, 0, time.UTC)
	a := newAgent(t, &fakeStore{}, now)

	// Recent 1200 vs previous 1000 is +20%, growing.
	growing := a.trend([]contractx.Transaction{
		sale(1200, 5, now),
		sale(1000, 20, now),
	})
	if growing.Direction != "growing" || !almostEqual(growing.GrowthRate, 20) {
		t.Fatalf("trend = %+v, want growing at 20%%", growing)
	}

	declining := a.trend([]contractx.Transaction{
		sale(700, 5, now),
		sale(1000, 20, now),
	})
	if declining.Direction != "declining" {
		t.Fatalf("trend = %+v, want declining", declining)
	}

	// Within the ±10% band stays stable.
	stable := a.trend([]contractx.Transaction{
		sale(1050, 5, now),
		sale(1000, 20, now),
	})
	if stable.Direction != "stable" {
		t.Fatalf("trend = %+v, want stable", stable)
	}

	// No prior sales pins growth at zero instead of dividing by it.
	fresh := a.trend([]contractx.Transaction{sale(500, 2, now)})
	if fresh.GrowthRate != 0 || fresh.Direction != "stable" {
		t.Fatalf("trend without history = %+v, want stable at 0", fresh)
	}
}

func TestCashFlow(t *testing.T) {
	t.Parallel()

	flow := cashFlow([]contractx.Transaction{
		{Type: contractx.TransactionSale, Amount: 2000},
		{Type: contractx.TransactionExpense, Amount: 800},
		{Type: contractx.TransactionPurchase, Amount: 500},
		{Type: contractx.TransactionRefund, Amount: 100},
	})
	if flow.CashIn != 2000 || flow.CashOut != 1300 || flow.Net != 700 {
		t.Fatalf("cash flow = %+v", flow)
	}
}

func TestRecommendationBranches(t *testing.T) {
	t.Parallel()

	// No sales at all.
	recs := recommendations(0, 0, 0, 0, 0)
	if len(recs) != 1 {
		t.Fatalf("no-sales recommendations = %d, want 1", len(recs))
	}

	// Low average transaction, thin margin, negative cash flow and heavy
	// expenses trigger every branch; the list is capped.
	recs = recommendations(10000, 50, 10, -500, 9000)
	if len(recs) > maxRecommendations {
		t.Fatalf("recommendations exceed cap: %d", len(recs))
	}
	if len(recs) != 4 {
		t.Fatalf("got %d recommendations, want 4", len(recs))
	}

	// A healthy business gets the default guidance.
	recs = recommendations(50000, 500, 25, 10000, 5000)
	if len(recs) != 3 {
		t.Fatalf("healthy business recommendations = %d, want 3 defaults", len(recs))
	}
}

func TestProfitAnalysisNoData(t *testing.T) {
	t.Parallel()

	now := time.Now()
	a := newAgent(t, &fakeStore{txs: []contractx.Transaction{sale(500, 1, now)}}, now)

	resp, err := a.ProcessQuery(context.Background(), contractx.QueryRequest{OwnerID: 1, Text: "profit margin", Locale: contractx.LocaleEnglish}, contractx.Intent{})
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if !resp.Success {
		t.Fatal("missing margin data must stay a successful informational reply")
	}
}

func TestSalesReportPartitions(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 18, 0, 0, 0, time.UTC)
	txs := []contractx.Transaction{
		sale(300, 0, now),
		sale(200, 1, now),
		sale(400, 5, now),
		sale(700, 20, now),
		{Type: contractx.TransactionExpense, Amount: 1000, OccurredAt: now},
	}
	a := newAgent(t, &fakeStore{txs: txs}, now)

	resp, err := a.ProcessQuery(context.Background(), contractx.QueryRequest{OwnerID: 1, Text: "sales today", Locale: contractx.LocaleEnglish}, contractx.Intent{})
	if err != nil {
		t.Fatalf("ProcessQuery: %v", err)
	}
	if got := resp.Data["today_sales"].(float64); got != 300 {
		t.Fatalf("today = %v, want 300", got)
	}
	if got := resp.Data["yesterday_sales"].(float64); got != 200 {
		t.Fatalf("yesterday = %v, want 200", got)
	}
	if got := resp.Data["week_sales"].(float64); got != 900 {
		t.Fatalf("week = %v, want 900", got)
	}
	if got := resp.Data["month_sales"].(float64); got != 1600 {
		t.Fatalf("month = %v, want 1600", got)
	}
}

func TestSortedCategoriesOrder(t *testing.T) {
	t.Parallel()

	entries := sortedCategories(map[string]float64{
		"Rent":      5000,
		"Marketing": 1000,
		"Utilities": 5000,
	})
	want := []string{"Rent", "Utilities", "Marketing"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Fatalf("entries[%d] = %s, want %s (amount desc, name asc on ties)", i, entries[i].Name, name)
		}
	}
}

func TestGetInsightsStoreError(t *testing.T) {
	t.Parallel()

	a := newAgent(t, &fakeStore{err: errors.New("db down")}, time.Now())
	_, err := a.GetInsights(context.Background(), 1)
	if !errors.Is(err, contractx.ErrComputation) {
		t.Fatalf("store failure returned %v, want ErrComputation", err)
	}
}
