// Package classifier maps free-text owner queries to intent categories.
// The primary path delegates to a language model; the rule-based keyword
// table takes over whenever the model times out or misbehaves, so a query
// is always classified.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	llmx "github.com/vyapaarai/insight-engine/engine/llm"
)

const (
	keywordConfidence  = 0.8
	fallbackConfidence = 0.5
)

type intentLLMOutput struct {
	Category   string   `json:"category"`
	Confidence float64  `json:"confidence"`
	Entities   []string `json:"entities,omitempty"`
}

type Classifier struct {
	runner  compose.Runnable[map[string]any, intentLLMOutput]
	timeout time.Duration
}

var _ contractx.Classifier = (*Classifier)(nil)

// New builds a model-backed classifier.
func New(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	timeout time.Duration,
) (*Classifier, error) {
	runner, err := llmx.CompileStructuredGraph[intentLLMOutput](ctx, chatModel, systemPrompt, "classifier.model_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile classifier graph: %v", contractx.ErrModelInvoke, err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Classifier{runner: runner, timeout: timeout}, nil
}

// NewKeywordOnly builds a classifier with no model attached; every query
// takes the rule-based path. Used when no model capability is configured.
func NewKeywordOnly() *Classifier {
	return &Classifier{}
}

// Classify never fails: model problems degrade to the keyword table, and an
// unmatched query lands on GENERAL. Confidence is always within [0,1].
func (c *Classifier) Classify(ctx context.Context, text string, loc contractx.Locale) contractx.Intent {
	text = strings.TrimSpace(text)
	if text == "" {
		return contractx.Intent{Category: contractx.IntentGeneral, Confidence: fallbackConfidence}
	}

	if c.runner != nil {
		intent, err := c.classifyByModel(ctx, text, loc)
		if err == nil {
			return intent
		}
		log.Warn().Err(err).Str("locale", string(loc)).Msg("classifier degraded to keyword rules")
	}

	return classifyByKeywords(text, loc)
}

func (c *Classifier) classifyByModel(ctx context.Context, text string, loc contractx.Locale) (contractx.Intent, error) {
	payload := map[string]any{
		"query":  text,
		"locale": string(loc.OrDefault()),
	}
	input, err := json.Marshal(payload)
	if err != nil {
		return contractx.Intent{}, fmt.Errorf("%w: marshal classifier payload: %v", contractx.ErrValidation, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.runner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return contractx.Intent{}, fmt.Errorf("%w: classifier invoke: %v", contractx.ErrModelInvoke, err)
	}

	category, err := parseCategory(out.Category)
	if err != nil {
		return contractx.Intent{}, err
	}

	return contractx.Intent{
		Category:   category,
		Confidence: out.Confidence,
		Entities:   out.Entities,
	}.Clamp(), nil
}

func parseCategory(raw string) (contractx.IntentCategory, error) {
	switch contractx.IntentCategory(strings.ToUpper(strings.TrimSpace(raw))) {
	case contractx.IntentInventory:
		return contractx.IntentInventory, nil
	case contractx.IntentCustomer:
		return contractx.IntentCustomer, nil
	case contractx.IntentFinance:
		return contractx.IntentFinance, nil
	case contractx.IntentGeneral:
		return contractx.IntentGeneral, nil
	default:
		return "", fmt.Errorf("%w: unknown category %q", contractx.ErrSchemaViolation, raw)
	}
}
