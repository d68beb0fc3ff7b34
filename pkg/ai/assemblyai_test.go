package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/config"
)

func TestAssemblyAIClient_Transcribe_UploadRejected(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid API key"})
	}))
	defer ts.Close()

	client := NewAssemblyAIClient(&config.AssemblyAIConfig{APIKey: "test-key", BaseURL: ts.URL, LanguageCode: "en"})

	text, err := client.Transcribe(context.Background(), strings.NewReader("fake audio"), "standup.mp3")
	require.Error(t, err)
	assert.Empty(t, text)

	var te *entities.TranscriptionError
	assert.True(t, errors.As(err, &te))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&hits), int32(1))
}
