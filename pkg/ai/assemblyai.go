package ai

import (
	"context"
	"errors"
	"io"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/config"
)

// AssemblyAIClient transcribes uploaded meeting audio
type AssemblyAIClient struct {
	client       *aai.Client
	languageCode string
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	opts := []aai.ClientOption{aai.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, aai.WithBaseURL(cfg.BaseURL))
	}
	return &AssemblyAIClient{
		client:       aai.NewClientWithOptions(opts...),
		languageCode: cfg.LanguageCode,
	}
}

// Transcribe uploads audio and blocks until the transcript is ready
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		Punctuate:  aai.Bool(true),
		FormatText: aai.Bool(true),
	}
	if c.languageCode != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(c.languageCode)
	}

	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, audio, params)
	if err != nil {
		return "", &entities.TranscriptionError{Err: err}
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "assemblyai reported an error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", &entities.TranscriptionError{Err: errors.New(msg)}
	}
	if transcript.Text == nil {
		return "", &entities.TranscriptionError{Err: errors.New("transcript has no text")}
	}
	return *transcript.Text, nil
}
