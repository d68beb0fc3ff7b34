package ai

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

// AnalysisTemperature keeps the extraction close to deterministic
const AnalysisTemperature = 0.1

// InferenceProvider is the LLM capability the analyzer needs
type InferenceProvider interface {
	ModelLister
	Complete(ctx context.Context, model, prompt string, temperature float64) (string, error)
}

// Transcriber turns recorded audio into text
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// AnalysisOutcome is the result of one analysis call
type AnalysisOutcome struct {
	Analysis entities.MeetingAnalysis `json:"analysis"`
	Warnings []entities.Warning       `json:"warnings"`
	Model    string                   `json:"model"`
}

// Service defines meeting analysis operations
type Service interface {
	Analyze(ctx context.Context, meetingText string, ref time.Time) (*AnalysisOutcome, error)
	AnalyzeAudio(ctx context.Context, audio io.Reader, filename string, ref time.Time) (*AnalysisOutcome, error)
}

// Analyzer runs model selection, one completion and validation for a meeting.
// It never retries; retry policy belongs to the caller.
type Analyzer struct {
	provider    InferenceProvider
	selector    *ModelSelector
	parser      *Parser
	transcriber Transcriber
	clock       func() time.Time
	logger      *zap.Logger
}

// NewAnalyzer constructs a new meeting analyzer. transcriber may be nil when
// audio analysis is not configured.
func NewAnalyzer(provider InferenceProvider, preferences []string, transcriber Transcriber, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		provider:    provider,
		selector:    NewModelSelector(provider, preferences, logger),
		parser:      NewParser(logger),
		transcriber: transcriber,
		clock:       time.Now,
		logger:      logger,
	}
}

// WithClock replaces the clock used when a caller passes a zero reference time
func (a *Analyzer) WithClock(clock func() time.Time) *Analyzer {
	if clock != nil {
		a.clock = clock
	}
	return a
}

// Analyze extracts decisions, action items, risks and a summary from meetingText.
// A zero ref means "now" according to the analyzer's clock.
func (a *Analyzer) Analyze(ctx context.Context, meetingText string, ref time.Time) (*AnalysisOutcome, error) {
	if strings.TrimSpace(meetingText) == "" {
		return nil, entities.ErrEmptyMeetingText
	}
	if ref.IsZero() {
		ref = a.clock()
	}

	model, err := a.selector.Select(ctx)
	if err != nil {
		return nil, err
	}

	if a.logger != nil {
		a.logger.Info("🤖 Analyzing meeting",
			zap.String("model", model),
			zap.Int("text_length", len(meetingText)),
		)
	}

	reply, err := a.provider.Complete(ctx, model, BuildAnalysisPrompt(meetingText, ref), AnalysisTemperature)
	if err != nil {
		if a.logger != nil {
			a.logger.Error("❌ Completion request failed", zap.String("model", model), zap.Error(err))
		}
		return nil, err
	}

	parsed, err := a.parser.Parse(reply, ref)
	if err != nil {
		return nil, err
	}

	if a.logger != nil {
		a.logger.Info("✅ Meeting analyzed",
			zap.String("model", model),
			zap.Int("action_items", len(parsed.Analysis.ActionItems)),
			zap.Int("decisions", len(parsed.Analysis.KeyDecisions)),
			zap.Int("warnings", len(parsed.Warnings)),
		)
	}

	return &AnalysisOutcome{
		Analysis: parsed.Analysis,
		Warnings: parsed.Warnings,
		Model:    model,
	}, nil
}

// AnalyzeAudio transcribes audio and analyzes the transcript. The transcript
// is attached to the returned analysis.
func (a *Analyzer) AnalyzeAudio(ctx context.Context, audio io.Reader, filename string, ref time.Time) (*AnalysisOutcome, error) {
	if a.transcriber == nil {
		return nil, &entities.TranscriptionError{Err: errors.New("transcription is not configured")}
	}

	if a.logger != nil {
		a.logger.Info("🎙️ Transcribing meeting audio", zap.String("filename", filename))
	}

	transcript, err := a.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		var te *entities.TranscriptionError
		if !errors.As(err, &te) {
			err = &entities.TranscriptionError{Err: err}
		}
		return nil, err
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, &entities.TranscriptionError{Err: errors.New("transcript is empty")}
	}

	outcome, err := a.Analyze(ctx, transcript, ref)
	if err != nil {
		return nil, err
	}
	outcome.Analysis.Transcript = &transcript
	return outcome, nil
}
