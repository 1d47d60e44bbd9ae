// Package engine is the query-facing composition of the insight system:
// classification, agent routing and cross-domain insight aggregation behind
// one façade, with an optional voice round-trip on top.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	aggregatorx "github.com/vyapaarai/insight-engine/engine/aggregator"
	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	routerx "github.com/vyapaarai/insight-engine/engine/router"
)

type Engine struct {
	classifier contractx.Classifier
	router     *routerx.Router
	aggregator *aggregatorx.Aggregator
	speech     contractx.Speech

	queryRunner compose.Runnable[contractx.QueryRequest, contractx.QueryResponse]
}

type Option func(*Engine)

// WithSpeech enables HandleVoiceQuery. Without it voice queries fail with
// ErrValidation.
func WithSpeech(s contractx.Speech) Option {
	return func(e *Engine) {
		e.speech = s
	}
}

func New(
	classifier contractx.Classifier,
	router *routerx.Router,
	aggregator *aggregatorx.Aggregator,
	opts ...Option,
) (*Engine, error) {
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if router == nil {
		return nil, errors.New("router is required")
	}
	if aggregator == nil {
		return nil, errors.New("aggregator is required")
	}

	e := &Engine{
		classifier: classifier,
		router:     router,
		aggregator: aggregator,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	queryRunner, err := e.compileHandleQueryGraph(context.Background())
	if err != nil {
		return nil, err
	}
	e.queryRunner = queryRunner

	return e, nil
}

// HandleQuery runs the full classify-and-route pipeline for one text query.
func (e *Engine) HandleQuery(ctx context.Context, req contractx.QueryRequest) (contractx.QueryResponse, error) {
	return e.queryRunner.Invoke(ctx, req)
}

// GetInsights merges per-domain analytics for the owner, restricted by the
// filter.
func (e *Engine) GetInsights(ctx context.Context, ownerID int64, filter contractx.DomainFilter, locale contractx.Locale) (contractx.InsightReport, error) {
	if ownerID <= 0 {
		return contractx.InsightReport{}, fmt.Errorf("%w: owner id must be positive", contractx.ErrValidation)
	}
	if filter == "" {
		filter = contractx.DomainAll
	}
	return e.aggregator.Aggregate(ctx, ownerID, filter, locale.OrDefault())
}

// VoiceResponse pairs the routed answer with its synthesized audio. Audio is
// nil when synthesis failed; the text answer always survives.
type VoiceResponse struct {
	Response   contractx.QueryResponse
	Transcript string
	Audio      []byte
}

// HandleVoiceQuery transcribes the audio, answers the transcript like a text
// query and speaks the answer back. Synthesis is best effort.
func (e *Engine) HandleVoiceQuery(ctx context.Context, ownerID int64, audio []byte, locale contractx.Locale) (VoiceResponse, error) {
	if e.speech == nil {
		return VoiceResponse{}, fmt.Errorf("%w: speech capability not configured", contractx.ErrValidation)
	}
	if len(audio) == 0 {
		return VoiceResponse{}, fmt.Errorf("%w: empty audio payload", contractx.ErrValidation)
	}

	loc := locale.OrDefault()
	transcript, err := e.speech.Transcribe(ctx, audio, loc)
	if err != nil {
		return VoiceResponse{}, fmt.Errorf("transcribe voice query: %w", err)
	}

	resp, err := e.HandleQuery(ctx, contractx.QueryRequest{
		OwnerID: ownerID,
		Text:    transcript,
		Locale:  loc,
	})
	if err != nil {
		return VoiceResponse{}, err
	}

	out := VoiceResponse{Response: resp, Transcript: transcript}
	spoken, err := e.speech.Synthesize(ctx, resp.Text, "")
	if err != nil {
		log.Warn().Err(err).Int64("owner_id", ownerID).Msg("speech synthesis failed, returning text only")
		return out, nil
	}
	out.Audio = spoken
	return out, nil
}
