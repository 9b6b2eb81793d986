package handler

import (
	"net/http"

	"github.com/showtrack/showtrack-go/internal/middleware"
	"github.com/showtrack/showtrack-go/internal/model"
	"github.com/showtrack/showtrack-go/internal/service"
)

// UserHandler handles registration, login and identity requests.
type UserHandler struct {
	service *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.AuthService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleRegister handles POST /users requests.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		// Conflicts, validation and storage failures all share one status.
		writeJSON(w, http.StatusNotFound, errorResponse(err))
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /sessions requests.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusNotFound, model.NotFoundResponse{NotFound: true})
		return
	}

	writeJSON(w, http.StatusAccepted, resp)
}

// HandleWhoAmI handles POST /users/{userId} requests. It echoes the
// identity resolved from the token.
func (h *UserHandler) HandleWhoAmI(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusForbidden, model.AuthFailureResponse{Authorized: false})
		return
	}

	writeJSON(w, http.StatusCreated, h.service.WhoAmI(user))
}
