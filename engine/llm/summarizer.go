package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	contractx "github.com/vyapaarai/insight-engine/engine/contract"
)

type summaryLLMOutput struct {
	Summary string `json:"summary"`
}

// Summarizer condenses a merged insight report into one localized paragraph
// via the structured-output graph. Callers treat any error as "use the
// placeholder" rather than failing the report.
type Summarizer struct {
	runner  compose.Runnable[map[string]any, summaryLLMOutput]
	timeout time.Duration
}

func NewSummarizer(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	timeout time.Duration,
) (*Summarizer, error) {
	runner, err := CompileStructuredGraph[summaryLLMOutput](ctx, chatModel, systemPrompt, "insights.summary_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile summarizer graph: %v", contractx.ErrModelInvoke, err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Summarizer{runner: runner, timeout: timeout}, nil
}

func (s *Summarizer) Summarize(ctx context.Context, report contractx.InsightReport, locale contractx.Locale) (string, error) {
	payload := map[string]any{
		"locale":   string(locale.OrDefault()),
		"insights": report.Domains,
	}
	input, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal summary payload: %v", contractx.ErrValidation, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.runner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return "", fmt.Errorf("%w: summarizer invoke: %v", contractx.ErrModelInvoke, err)
	}

	summary := strings.TrimSpace(out.Summary)
	if summary == "" {
		return "", fmt.Errorf("%w: summary is empty", contractx.ErrSchemaViolation)
	}
	return summary, nil
}
