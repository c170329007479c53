package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"salsa-storefront/internal/utils"
)

type Handler struct {
	Gate *Gate
}

type unlockRequest struct {
	PIN string `json:"pin"`
}

type unlockResponse struct {
	Token string `json:"token"`
}

// Unlock exchanges the admin PIN for a session token.
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.Gate.Unlock(req.PIN)
	if err != nil {
		if errors.Is(err, ErrInvalidPIN) {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Unlock failed", "invalid pin"))
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Unlock failed", err.Error()))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Admin unlocked", unlockResponse{Token: token}))
}
