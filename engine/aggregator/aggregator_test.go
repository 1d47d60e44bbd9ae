package aggregator

import (
	"context"
	"errors"
	"testing"
	"time"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	localex "github.com/vyapaarai/insight-engine/engine/locale"
)

type fakeAgent struct {
	name   string
	bundle contractx.InsightBundle
	err    error
	panic  bool
	calls  int
}

func (f *fakeAgent) Name() string {
	return f.name
}

func (f *fakeAgent) ProcessQuery(ctx context.Context, req contractx.QueryRequest, intent contractx.Intent) (contractx.QueryResponse, error) {
	return contractx.QueryResponse{}, nil
}

func (f *fakeAgent) GetInsights(ctx context.Context, ownerID int64) (contractx.InsightBundle, error) {
	f.calls++
	if f.panic {
		panic("insight agent exploded")
	}
	if f.err != nil {
		return contractx.InsightBundle{}, f.err
	}
	return f.bundle, nil
}

type fakeRegistry struct {
	inventory contractx.Agent
	customer  contractx.Agent
	finance   contractx.Agent
}

func (f *fakeRegistry) Inventory() contractx.Agent { return f.inventory }
func (f *fakeRegistry) Customer() contractx.Agent  { return f.customer }
func (f *fakeRegistry) Finance() contractx.Agent   { return f.finance }

type fakeSummarizer struct {
	summary string
	err     error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, report contractx.InsightReport, locale contractx.Locale) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

func healthyAgent(name string, recs ...string) *fakeAgent {
	return &fakeAgent{
		name: name,
		bundle: contractx.InsightBundle{
			Domain:          name,
			Metrics:         map[string]any{"ok": true},
			Recommendations: recs,
		},
	}
}

func newAggregator(t *testing.T, registry contractx.Registry, opts ...Option) *Aggregator {
	t.Helper()
	a, err := New(registry, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestAggregateMergesAllDomains(t *testing.T) {
	t.Parallel()

	registry := &fakeRegistry{
		inventory: healthyAgent("inventory", "restock"),
		customer:  healthyAgent("customer"),
		finance:   healthyAgent("finance", "keep records"),
	}
	agg := newAggregator(t, registry)

	report, err := agg.Aggregate(context.Background(), 1, contractx.DomainAll, contractx.LocaleEnglish)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(report.Domains) != 3 {
		t.Fatalf("domains = %d, want 3", len(report.Domains))
	}
	for name, section := range report.Domains {
		if !section.Available {
			t.Fatalf("domain %s unavailable", name)
		}
	}
	if len(report.Recommendations) != 2 {
		t.Fatalf("merged recommendations = %d, want 2", len(report.Recommendations))
	}
	if report.GeneratedAt.IsZero() {
		t.Fatal("report missing timestamp")
	}
}

func TestAggregateToleratesDomainFailure(t *testing.T) {
	t.Parallel()

	registry := &fakeRegistry{
		inventory: healthyAgent("inventory", "restock"),
		customer:  healthyAgent("customer", "win back"),
		finance:   &fakeAgent{name: "finance", err: errors.New("db down")},
	}
	agg := newAggregator(t, registry)

	report, err := agg.Aggregate(context.Background(), 1, contractx.DomainAll, contractx.LocaleEnglish)
	if err != nil {
		t.Fatalf("one failed domain must not fail the report: %v", err)
	}

	finance, ok := report.Domains["finance"]
	if !ok {
		t.Fatal("failed domain absent from report")
	}
	if finance.Available {
		t.Fatal("failed domain marked available")
	}
	if !report.Domains["inventory"].Available || !report.Domains["customer"].Available {
		t.Fatal("healthy domains lost to a neighbor's failure")
	}
	if len(report.Recommendations) != 2 {
		t.Fatalf("recommendations = %d, failed domain must contribute none", len(report.Recommendations))
	}
}

func TestAggregateContainsPanic(t *testing.T) {
	t.Parallel()

	registry := &fakeRegistry{
		inventory: &fakeAgent{name: "inventory", panic: true},
		customer:  healthyAgent("customer"),
		finance:   healthyAgent("finance"),
	}
	agg := newAggregator(t, registry)

	report, err := agg.Aggregate(context.Background(), 1, contractx.DomainAll, contractx.LocaleEnglish)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if report.Domains["inventory"].Available {
		t.Fatal("panicking domain marked available")
	}
}

func TestAggregateDomainFilter(t *testing.T) {
	t.Parallel()

	inventory := healthyAgent("inventory")
	finance := healthyAgent("finance")
	registry := &fakeRegistry{inventory: inventory, customer: healthyAgent("customer"), finance: finance}
	agg := newAggregator(t, registry)

	report, err := agg.Aggregate(context.Background(), 1, contractx.DomainFinance, contractx.LocaleEnglish)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(report.Domains) != 1 {
		t.Fatalf("filtered report has %d domains, want 1", len(report.Domains))
	}
	if _, ok := report.Domains["finance"]; !ok {
		t.Fatal("finance missing from filtered report")
	}
	if inventory.calls != 0 {
		t.Fatal("filtered-out agent was still queried")
	}
}

func TestAggregateSummarizerFailureUsesPlaceholder(t *testing.T) {
	t.Parallel()

	registry := &fakeRegistry{
		inventory: healthyAgent("inventory"),
		customer:  healthyAgent("customer"),
		finance:   healthyAgent("finance"),
	}
	agg := newAggregator(t, registry, WithSummarizer(&fakeSummarizer{err: errors.New("model down")}))

	report, err := agg.Aggregate(context.Background(), 1, contractx.DomainAll, contractx.LocaleEnglish)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if want := localex.Resolve(localex.MsgSummaryUnavailable, contractx.LocaleEnglish); report.Summary != want {
		t.Fatalf("summary = %q, want placeholder %q", report.Summary, want)
	}
}

func TestAggregateUsesSummarizer(t *testing.T) {
	t.Parallel()

	registry := &fakeRegistry{
		inventory: healthyAgent("inventory"),
		customer:  healthyAgent("customer"),
		finance:   healthyAgent("finance"),
	}
	agg := newAggregator(t, registry,
		WithSummarizer(&fakeSummarizer{summary: "business is steady"}),
		WithClock(func() time.Time { return time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC) }),
	)

	report, err := agg.Aggregate(context.Background(), 1, contractx.DomainAll, contractx.LocaleEnglish)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if report.Summary != "business is steady" {
		t.Fatalf("summary = %q", report.Summary)
	}
	if !report.GeneratedAt.Equal(time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("timestamp = %v, want injected clock value", report.GeneratedAt)
	}
}
