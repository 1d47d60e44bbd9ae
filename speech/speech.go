// Package speech wraps the OpenAI audio endpoints as the engine's voice
// capability: Whisper for transcription, TTS for the spoken reply. Both
// calls are timeout-bounded and blocking.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"

	contractx "github.com/vyapaarai/insight-engine/engine/contract"
)

type Config struct {
	TranscribeModel string        `envconfig:"TRANSCRIBE_MODEL" split_words:"true" default:"whisper-1"`
	SynthesizeModel string        `envconfig:"SYNTHESIZE_MODEL" split_words:"true" default:"tts-1"`
	Voice           string        `envconfig:"VOICE" split_words:"true" default:"alloy"`
	Timeout         time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

type Service struct {
	client *openaisdk.Client
	cfg    Config
}

var _ contractx.Speech = (*Service)(nil)

func New(client *openaisdk.Client, cfg Config) (*Service, error) {
	if client == nil {
		return nil, errors.New("openai client is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Service{client: client, cfg: cfg}, nil
}

// Transcribe turns owner audio into text. The locale is passed through as
// the Whisper language hint; supported locale codes are ISO 639-1 already.
func (s *Service) Transcribe(ctx context.Context, audio []byte, locale contractx.Locale) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: empty audio payload", contractx.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	result, err := s.client.Audio.Transcriptions.New(ctx, openaisdk.AudioTranscriptionNewParams{
		File:     openaisdk.File(bytes.NewReader(audio), "query.mp3", "audio/mpeg"),
		Model:    openaisdk.AudioModel(s.cfg.TranscribeModel),
		Language: openaisdk.String(string(locale.OrDefault())),
	})
	if err != nil {
		return "", fmt.Errorf("%w: transcription: %v", contractx.ErrModelInvoke, err)
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty transcription", contractx.ErrModelInvoke)
	}
	return text, nil
}

// Synthesize speaks the reply. An empty voice falls back to the configured
// default.
func (s *Service) Synthesize(ctx context.Context, text string, voice string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty synthesis input", contractx.ErrValidation)
	}
	if voice == "" {
		voice = s.cfg.Voice
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.Audio.Speech.New(ctx, openaisdk.AudioSpeechNewParams{
		Model: openaisdk.SpeechModel(s.cfg.SynthesizeModel),
		Input: text,
		Voice: openaisdk.AudioSpeechNewParamsVoice(voice),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: synthesis: %v", contractx.ErrModelInvoke, err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read synthesis body: %v", contractx.ErrModelInvoke, err)
	}
	return audio, nil
}
