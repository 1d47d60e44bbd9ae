package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
	openrouterx "github.com/vyapaarai/insight-engine/pkg/openrouter"
)

// Capability names the two language-model duties the engine delegates.
type Capability string

const (
	CapabilityClassifier Capability = "classifier"
	CapabilitySummarizer Capability = "summarizer"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.1"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`

	ClassifierModel       string        `envconfig:"CLASSIFIER_MODEL" split_words:"true"`
	SummarizerModel       string        `envconfig:"SUMMARIZER_MODEL" split_words:"true"`
	ClassifierTemperature float32       `envconfig:"CLASSIFIER_TEMPERATURE" split_words:"true" default:"-1"`
	SummarizerTemperature float32       `envconfig:"SUMMARIZER_TEMPERATURE" split_words:"true" default:"-1"`
	ClassifierTimeout     time.Duration `envconfig:"CLASSIFIER_TIMEOUT" split_words:"true"`
	SummarizerTimeout     time.Duration `envconfig:"SUMMARIZER_TIMEOUT" split_words:"true"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// ModelFor resolves the model configuration for one capability, applying
// per-capability overrides over the shared defaults.
func (c Config) ModelFor(capability Capability) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch capability {
	case CapabilityClassifier:
		if v := strings.TrimSpace(c.ClassifierModel); v != "" {
			modelName = v
		}
		if c.ClassifierTemperature >= 0 {
			temp = c.ClassifierTemperature
		}
	case CapabilitySummarizer:
		if v := strings.TrimSpace(c.SummarizerModel); v != "" {
			modelName = v
		}
		if c.SummarizerTemperature >= 0 {
			temp = c.SummarizerTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
	}
}

// TimeoutFor returns the per-call deadline for a capability. Delegated calls
// are always time-bounded; on expiry the caller degrades instead of blocking.
func (c Config) TimeoutFor(capability Capability) time.Duration {
	switch capability {
	case CapabilityClassifier:
		if c.ClassifierTimeout > 0 {
			return c.ClassifierTimeout
		}
	case CapabilitySummarizer:
		if c.SummarizerTimeout > 0 {
			return c.SummarizerTimeout
		}
	}
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 10 * time.Second
}
