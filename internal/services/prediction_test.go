package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddyguard/paddyguard-backend/internal/models"
)

func TestPredictForwardsImageAndDecodesResult(t *testing.T) {
	var gotPath, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("X-API-Key")

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "leaf.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.PredictionResult{
			PestDetected:      "Brown Planthopper",
			Confidence:        "85%",
			Description:       "Sap-sucking pest found at the base of paddy stems.",
			RecommendedAction: "- Drain the field.\n- Apply a recommended insecticide.",
		})
	}))
	defer srv.Close()

	predictor := NewPredictionService(srv.URL, "test-key")
	require.True(t, predictor.Available())

	result, err := predictor.Predict(context.Background(), []byte("fake image bytes"), "leaf.jpg")
	require.NoError(t, err)

	assert.Equal(t, "/v1/predict", gotPath)
	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, "Brown Planthopper", result.PestDetected)
	assert.Equal(t, "85%", result.Confidence)
	assert.Contains(t, result.RecommendedAction, "Drain the field")
}

func TestPredictSurfacesServiceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	predictor := NewPredictionService(srv.URL, "")
	_, err := predictor.Predict(context.Background(), []byte("img"), "leaf.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestPredictUnconfigured(t *testing.T) {
	predictor := NewPredictionService("", "")
	assert.False(t, predictor.Available())

	_, err := predictor.Predict(context.Background(), []byte("img"), "leaf.jpg")
	assert.ErrorIs(t, err, ErrInferenceUnavailable)
}
