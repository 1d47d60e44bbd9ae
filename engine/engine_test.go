package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	aggregatorx "github.com/vyapaarai/insight-engine/engine/aggregator"
	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	routerx "github.com/vyapaarai/insight-engine/engine/router"
)

type fakeClassifier struct {
	intent contractx.Intent
	last   string
}

func (f *fakeClassifier) Classify(ctx context.Context, text string, locale contractx.Locale) contractx.Intent {
	f.last = text
	return f.intent
}

type fakeAgent struct {
	name   string
	resp   contractx.QueryResponse
	bundle contractx.InsightBundle
	err    error
}

func (f *fakeAgent) Name() string {
	return f.name
}

func (f *fakeAgent) ProcessQuery(ctx context.Context, req contractx.QueryRequest, intent contractx.Intent) (contractx.QueryResponse, error) {
	if f.err != nil {
		return contractx.QueryResponse{}, f.err
	}
	return f.resp, nil
}

func (f *fakeAgent) GetInsights(ctx context.Context, ownerID int64) (contractx.InsightBundle, error) {
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

type fakeSpeech struct {
	transcript    string
	transcribeErr error
	audio         []byte
	synthesizeErr error
}

func (f *fakeSpeech) Transcribe(ctx context.Context, audio []byte, locale contractx.Locale) (string, error) {
	if f.transcribeErr != nil {
		return "", f.transcribeErr
	}
	return f.transcript, nil
}

func (f *fakeSpeech) Synthesize(ctx context.Context, text string, voice string) ([]byte, error) {
	if f.synthesizeErr != nil {
		return nil, f.synthesizeErr
	}
	return f.audio, nil
}

func newEngine(t *testing.T, classifier contractx.Classifier, registry contractx.Registry, opts ...Option) *Engine {
	t.Helper()
	router, err := routerx.New(registry)
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	aggregator, err := aggregatorx.New(registry)
	if err != nil {
		t.Fatalf("aggregator: %v", err)
	}
	eng, err := New(classifier, router, aggregator, opts...)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return eng
}

func testRegistry(financeResp contractx.QueryResponse) *fakeRegistry {
	return &fakeRegistry{
		inventory: &fakeAgent{name: "inventory"},
		customer:  &fakeAgent{name: "customer"},
		finance:   &fakeAgent{name: "finance", resp: financeResp, bundle: contractx.InsightBundle{Domain: "finance"}},
	}
}

func TestHandleQueryRoutesThroughPipeline(t *testing.T) {
	t.Parallel()

	classifier := &fakeClassifier{intent: contractx.Intent{Category: contractx.IntentFinance, Confidence: 0.9}}
	registry := testRegistry(contractx.QueryResponse{Text: "sales report", AgentName: "finance", Success: true})
	eng := newEngine(t, classifier, registry)

	resp, err := eng.HandleQuery(context.Background(), contractx.QueryRequest{
		OwnerID: 7,
		Text:    "  show me sales  ",
		Locale:  contractx.LocaleEnglish,
	})
	if err != nil {
		t.Fatalf("HandleQuery: %v", err)
	}
	if resp.Text != "sales report" || !resp.Success {
		t.Fatalf("response = %+v", resp)
	}
	if classifier.last != "show me sales" {
		t.Fatalf("classifier saw %q, want trimmed text", classifier.last)
	}
}

func TestHandleQueryRejectsInvalidOwner(t *testing.T) {
	t.Parallel()

	eng := newEngine(t, &fakeClassifier{}, testRegistry(contractx.QueryResponse{}))

	_, err := eng.HandleQuery(context.Background(), contractx.QueryRequest{OwnerID: 0, Text: "sales"})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("invalid owner returned %v, want ErrValidation", err)
	}
}

func TestGetInsightsValidatesAndDefaults(t *testing.T) {
	t.Parallel()

	eng := newEngine(t, &fakeClassifier{}, testRegistry(contractx.QueryResponse{}))

	if _, err := eng.GetInsights(context.Background(), -1, contractx.DomainAll, contractx.LocaleEnglish); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("negative owner returned %v, want ErrValidation", err)
	}

	report, err := eng.GetInsights(context.Background(), 1, "", contractx.LocaleEnglish)
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	if len(report.Domains) != 3 {
		t.Fatalf("empty filter covered %d domains, want all 3", len(report.Domains))
	}
}

func TestHandleVoiceQuery(t *testing.T) {
	t.Parallel()

	classifier := &fakeClassifier{intent: contractx.Intent{Category: contractx.IntentFinance, Confidence: 0.9}}
	registry := testRegistry(contractx.QueryResponse{Text: "sales are up", AgentName: "finance", Success: true})
	speech := &fakeSpeech{transcript: "how are my sales", audio: []byte("mp3 bytes")}
	eng := newEngine(t, classifier, registry, WithSpeech(speech))

	out, err := eng.HandleVoiceQuery(context.Background(), 7, []byte("recording"), contractx.LocaleHindi)
	if err != nil {
		t.Fatalf("HandleVoiceQuery: %v", err)
	}
	if out.Transcript != "how are my sales" {
		t.Fatalf("transcript = %q", out.Transcript)
	}
	if out.Response.Text != "sales are up" {
		t.Fatalf("response = %+v", out.Response)
	}
	if len(out.Audio) == 0 {
		t.Fatal("synthesized audio missing")
	}
}

func TestHandleVoiceQuerySynthesisIsBestEffort(t *testing.T) {
	t.Parallel()

	classifier := &fakeClassifier{intent: contractx.Intent{Category: contractx.IntentFinance}}
	registry := testRegistry(contractx.QueryResponse{Text: "sales are up", Success: true})
	speech := &fakeSpeech{transcript: "sales", synthesizeErr: errors.New("tts down")}
	eng := newEngine(t, classifier, registry, WithSpeech(speech))

	out, err := eng.HandleVoiceQuery(context.Background(), 7, []byte("recording"), contractx.LocaleHindi)
	if err != nil {
		t.Fatalf("synthesis failure must not fail the query: %v", err)
	}
	if out.Audio != nil {
		t.Fatal("audio present despite synthesis failure")
	}
	if !strings.Contains(out.Response.Text, "sales are up") {
		t.Fatalf("text answer lost: %+v", out.Response)
	}
}

func TestHandleVoiceQueryErrors(t *testing.T) {
	t.Parallel()

	eng := newEngine(t, &fakeClassifier{}, testRegistry(contractx.QueryResponse{}))
	if _, err := eng.HandleVoiceQuery(context.Background(), 7, []byte("x"), contractx.LocaleHindi); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("no speech capability returned %v, want ErrValidation", err)
	}

	withSpeech := newEngine(t, &fakeClassifier{}, testRegistry(contractx.QueryResponse{}), WithSpeech(&fakeSpeech{}))
	if _, err := withSpeech.HandleVoiceQuery(context.Background(), 7, nil, contractx.LocaleHindi); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("empty audio returned %v, want ErrValidation", err)
	}

	failing := newEngine(t, &fakeClassifier{}, testRegistry(contractx.QueryResponse{}), WithSpeech(&fakeSpeech{transcribeErr: errors.New("stt down")}))
	if _, err := failing.HandleVoiceQuery(context.Background(), 7, []byte("x"), contractx.LocaleHindi); err == nil {
		t.Fatal("transcription failure swallowed")
	}
}
