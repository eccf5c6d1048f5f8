package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/paddyguard/paddyguard-backend/internal/models"
)

var ErrInferenceUnavailable = errors.New("pest analysis service is not configured")

// PredictionService forwards crop images to the external inference
// service and hands the structured result back untouched.
type PredictionService struct {
	client *resty.Client
}

func NewPredictionService(baseURL, apiKey string) *PredictionService {
	if baseURL == "" {
		return &PredictionService{}
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second)
	if apiKey != "" {
		client.SetHeader("X-API-Key", apiKey)
	}
	return &PredictionService{client: client}
}

// Available reports whether an inference endpoint is configured.
func (s *PredictionService) Available() bool {
	return s.client != nil
}

// Predict submits an image and returns the inference result. The image
// payload is opaque to this service; so is the result beyond decoding.
func (s *PredictionService) Predict(ctx context.Context, image []byte, filename string) (*models.PredictionResult, error) {
	if s.client == nil {
		return nil, ErrInferenceUnavailable
	}

	var result models.PredictionResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetFileReader("image", filename, bytes.NewReader(image)).
		SetResult(&result).
		Post("/v1/predict")
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("inference service returned %s", resp.Status())
	}
	return &result, nil
}
