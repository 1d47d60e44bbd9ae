// Package aggregator fans an insight request out to every domain agent,
// merges what came back and tolerates per-domain failures: a crashed or
// erroring agent yields an unavailable section, never a failed report.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	localex "github.com/vyapaarai/insight-engine/engine/locale"
)

type Aggregator struct {
	registry   contractx.Registry
	summarizer contractx.Summarizer
	now        func() time.Time
}

type Option func(*Aggregator)

// WithSummarizer plugs in the LLM summary step. Without it the report keeps
// an empty summary.
func WithSummarizer(s contractx.Summarizer) Option {
	return func(a *Aggregator) {
		a.summarizer = s
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

func New(registry contractx.Registry, opts ...Option) (*Aggregator, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}
	a := &Aggregator{registry: registry, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a, nil
}

// Aggregate collects insight bundles from the agents selected by the filter,
// concurrently, and merges them into one report. Failed domains appear with
// Available=false and contribute nothing else.
func (a *Aggregator) Aggregate(ctx context.Context, ownerID int64, filter contractx.DomainFilter, locale contractx.Locale) (contractx.InsightReport, error) {
	agents := a.selectedAgents(filter)

	report := contractx.InsightReport{
		Domains:     make(map[string]contractx.DomainSection, len(agents)),
		GeneratedAt: a.now(),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, agent := range agents {
		wg.Add(1)
		go func(agent contractx.Agent) {
			defer wg.Done()
			bundle, err := collect(ctx, agent, ownerID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error().
					Err(err).
					Str("domain", agent.Name()).
					Int64("owner_id", ownerID).
					Msg("insight collection failed")
				report.Domains[agent.Name()] = contractx.DomainSection{Available: false}
				return
			}
			report.Domains[agent.Name()] = contractx.DomainSection{Available: true, Bundle: bundle}
			report.Recommendations = append(report.Recommendations, bundle.Recommendations...)
		}(agent)
	}
	wg.Wait()

	a.summarize(ctx, &report, locale)
	return report, nil
}

func (a *Aggregator) selectedAgents(filter contractx.DomainFilter) []contractx.Agent {
	all := []contractx.Agent{
		a.registry.Inventory(),
		a.registry.Customer(),
		a.registry.Finance(),
	}
	selected := make([]contractx.Agent, 0, len(all))
	for _, agent := range all {
		if agent != nil && filter.Includes(agent.Name()) {
			selected = append(selected, agent)
		}
	}
	return selected
}

// collect shields the fan-out from agent panics.
func collect(ctx context.Context, agent contractx.Agent, ownerID int64) (bundle contractx.InsightBundle, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("agent %s panicked: %v", agent.Name(), rec)
		}
	}()
	return agent.GetInsights(ctx, ownerID)
}

func (a *Aggregator) summarize(ctx context.Context, report *contractx.InsightReport, locale contractx.Locale) {
	if a.summarizer == nil {
		return
	}
	summary, err := a.summarizer.Summarize(ctx, *report, locale)
	if err != nil {
		log.Warn().Err(err).Msg("insight summary failed, using placeholder")
		report.Summary = localex.Resolve(localex.MsgSummaryUnavailable, locale)
		return
	}
	report.Summary = summary
}
