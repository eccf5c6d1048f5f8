package handlers

import (
	"net/http"

	"github.com/paddyguard/paddyguard-backend/internal/models"
	"github.com/paddyguard/paddyguard-backend/internal/store"
)

// AdminHandler serves the administrator's view of the farmer roster.
type AdminHandler struct {
	dir store.Directory
}

func NewAdminHandler(dir store.Directory) *AdminHandler {
	return &AdminHandler{dir: dir}
}

type FarmerListResponse struct {
	Success bool              `json:"success"`
	Farmers []models.Identity `json:"farmers"`
}

// GetFarmers returns all farmer records, sanitized, in registration
// order.
func (h *AdminHandler) GetFarmers(w http.ResponseWriter, r *http.Request) {
	users, err := h.dir.ListByRole(r.Context(), models.RoleFarmer)
	if err != nil {
		writeError(w, err)
		return
	}

	farmers := make([]models.Identity, 0, len(users))
	for i := range users {
		farmers = append(farmers, users[i].Sanitize())
	}

	writeJSON(w, http.StatusOK, FarmerListResponse{Success: true, Farmers: farmers})
}
