package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

// DefaultModelPreferences is the Groq model order tried when none is configured
var DefaultModelPreferences = []string{
	"llama-3.3-70b-versatile",
	"llama-3.1-8b-instant",
	"meta-llama/llama-4-scout-17b-16e-instruct",
	"gemma2-9b-it",
	"qwen/qwen3-32b",
}

// ModelLister reports which models the inference provider currently serves
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// ModelSelector picks the first preferred model the provider offers.
// The provider is asked on every call.
type ModelSelector struct {
	lister      ModelLister
	preferences []string
	logger      *zap.Logger
}

// NewModelSelector creates a selector; an empty preference list falls back
// to DefaultModelPreferences.
func NewModelSelector(lister ModelLister, preferences []string, logger *zap.Logger) *ModelSelector {
	if len(preferences) == 0 {
		preferences = DefaultModelPreferences
	}
	prefs := make([]string, len(preferences))
	copy(prefs, preferences)
	return &ModelSelector{lister: lister, preferences: prefs, logger: logger}
}

// Preferences returns a copy of the configured preference order
func (s *ModelSelector) Preferences() []string {
	out := make([]string, len(s.preferences))
	copy(out, s.preferences)
	return out
}

// Select returns the highest-ranked preferred model that is available
func (s *ModelSelector) Select(ctx context.Context) (string, error) {
	available, err := s.lister.ListModels(ctx)
	if err != nil {
		return "", err
	}

	offered := make(map[string]struct{}, len(available))
	for _, m := range available {
		offered[m] = struct{}{}
	}

	for _, want := range s.preferences {
		if _, ok := offered[want]; ok {
			if s.logger != nil {
				s.logger.Debug("🤖 Selected inference model", zap.String("model", want))
			}
			return want, nil
		}
	}

	if s.logger != nil {
		s.logger.Error("❌ No preferred model available",
			zap.Strings("preferences", s.preferences),
			zap.Int("available", len(available)),
		)
	}
	return "", &entities.NoModelAvailableError{
		Preferences: s.Preferences(),
		Available:   available,
	}
}
