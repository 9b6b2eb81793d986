package handler

import (
	"errors"
	"net/http"

	"github.com/showtrack/showtrack-go/internal/middleware"
	"github.com/showtrack/showtrack-go/internal/model"
	"github.com/showtrack/showtrack-go/internal/service"
)

const showAddedMessage = "show added to watchlist"

// WatchlistHandler handles HTTP requests for a user's watchlist.
type WatchlistHandler struct {
	service *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(svc *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{service: svc}
}

// HandleAddShow handles PUT /users/{userId}/watchlist requests.
func (h *WatchlistHandler) HandleAddShow(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusForbidden, model.AuthFailureResponse{Authorized: false})
		return
	}

	var req model.AddShowRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.AddShow(r.Context(), user.ID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrShowIDRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err))
		case errors.Is(err, service.ErrDuplicateShow):
			writeJSON(w, http.StatusConflict, errorResponse(err))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse(err))
		}
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: showAddedMessage})
}

// HandleGetWatchlist handles GET /users/{userId}/watchlist requests.
func (h *WatchlistHandler) HandleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusForbidden, model.AuthFailureResponse{Authorized: false})
		return
	}

	entries, err := h.service.GetWatchlist(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.MessageResponse{Message: service.ErrFetchFailed.Error()})
		return
	}

	writeJSON(w, http.StatusOK, model.WatchlistResponse{Watchlist: entries})
}

// HandleRemoveShow handles DELETE /users/{userId}/watchlist requests. The
// show to remove is named in the request body.
func (h *WatchlistHandler) HandleRemoveShow(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusForbidden, model.AuthFailureResponse{Authorized: false})
		return
	}

	var req model.RemoveShowRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entries, err := h.service.RemoveShow(r.Context(), user.ID, req.ShowID)
	if err != nil {
		msg := service.ErrRemoveFailed.Error()
		if errors.Is(err, service.ErrShowIDRequired) {
			msg = err.Error()
		}
		writeJSON(w, http.StatusBadRequest, model.MessageResponse{Message: msg})
		return
	}

	writeJSON(w, http.StatusOK, model.WatchlistResponse{Watchlist: entries})
}
