package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/paddyguard/paddyguard-backend/internal/middleware"
	"github.com/paddyguard/paddyguard-backend/internal/models"
	"github.com/paddyguard/paddyguard-backend/internal/services"
)

const maxImageSize = 10 << 20 // 10MB

// PredictHandler accepts crop images from farmers, forwards them to the
// inference service, and keeps a per-farmer history of results.
type PredictHandler struct {
	predictor *services.PredictionService
	// images and history are optional; both degrade to no-ops when
	// their backing service is not configured.
	images  *services.ImageArchive
	history *services.HistoryService
}

func NewPredictHandler(predictor *services.PredictionService, images *services.ImageArchive, history *services.HistoryService) *PredictHandler {
	return &PredictHandler{predictor: predictor, images: images, history: history}
}

type PredictResponse struct {
	Success  bool                     `json:"success"`
	Message  string                   `json:"message,omitempty"`
	Result   *models.PredictionResult `json:"result,omitempty"`
	ImageURL string                   `json:"image_url,omitempty"`
}

// Predict analyzes one uploaded image. The payload travels to the
// inference service opaquely; archival and history are best-effort and
// never block the result.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Authentication required"})
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Failed to parse form"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "No image provided"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Failed to read image"})
		return
	}

	result, err := h.predictor.Predict(r.Context(), image, header.Filename)
	if err != nil {
		log.Printf("ERROR: prediction failed for farmer %s: %v", identity.ID, err)
		writeJSON(w, http.StatusBadGateway, Response{Success: false, Message: "Pest analysis is unavailable right now. Please try again."})
		return
	}

	var imageURL string
	if h.images != nil {
		imageURL, err = h.images.Upload(r.Context(), image, "paddyguard/crops")
		if err != nil {
			log.Printf("Warning: failed to archive crop image: %v", err)
		}
	}

	if h.history != nil {
		if err := h.history.Save(r.Context(), identity.ID, imageURL, *result); err != nil {
			log.Printf("Warning: failed to save prediction history: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, PredictResponse{
		Success:  true,
		Result:   result,
		ImageURL: imageURL,
	})
}

type HistoryResponse struct {
	Success     bool                      `json:"success"`
	Predictions []models.PredictionRecord `json:"predictions"`
}

// History returns the farmer's recent predictions, newest first.
func (h *PredictHandler) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Authentication required"})
		return
	}

	if h.history == nil {
		writeJSON(w, http.StatusOK, HistoryResponse{Success: true, Predictions: []models.PredictionRecord{}})
		return
	}

	records, err := h.history.ListByFarmer(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Success: true, Predictions: records})
}
