package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/zenscore/internal/common"
	"github.com/dmitrijs2005/zenscore/internal/logging"
	"github.com/dmitrijs2005/zenscore/internal/server/predictor"
	"github.com/dmitrijs2005/zenscore/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	users     *services.UserService
	predictor predictor.Predictor
	logger    logging.Logger
}

func NewHandler(us *services.UserService, p predictor.Predictor, logger logging.Logger) *Handler {
	return &Handler{users: us, predictor: p, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterUser creates an account. 201 with a Location reference on success;
// 400 when a field is missing or the username is already taken.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			respondWithError(w, http.StatusBadRequest, "missing username or password", h.logger)
		case errors.Is(err, common.ErrorAlreadyExists):
			respondWithError(w, http.StatusBadRequest, "username already taken", h.logger)
		default:
			h.logger.Error(r.Context(), "registration failure", "error", err)
			respondWithError(w, http.StatusInternalServerError, "internal error", h.logger)
		}
		return
	}

	h.logger.Info(r.Context(), "registered user", "username", user.UserName, "id", user.ID)

	w.Header().Set("Location", fmt.Sprintf("/api/users/%d", user.ID))
	respondWithJSON(w, http.StatusCreated, map[string]string{"username": user.UserName}, h.logger)
}

// GetUser resolves an account by numeric id. 404 when absent.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid user id", h.logger)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondWithError(w, http.StatusNotFound, "user not found", h.logger)
			return
		}
		h.logger.Error(r.Context(), "user lookup failure", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"username": user.UserName}, h.logger)
}

// GetToken issues a fresh signed token for the authenticated user. The
// duration field reports the token lifetime in seconds.
func (h *Handler) GetToken(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}

	token, err := h.users.IssueToken(r.Context(), user)
	if err != nil {
		h.logger.Error(r.Context(), "token issuance failure", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"token":    token,
		"duration": int(h.users.TokenValidity().Seconds()),
	}, h.logger)
}

// Predict scores a feature vector. The body is a JSON object mapping the
// model's feature names to numbers; the names themselves are an opaque
// contract with the upstream feature producers. Missing or non-numeric
// features are the caller's fault (400); anything failing inside the model
// is ours (500).
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var features map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&features); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	probability, err := h.predictor.Predict(features)
	if err != nil {
		if errors.Is(err, predictor.ErrMissingFeature) {
			respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		h.logger.Error(r.Context(), "prediction failure", "error", err)
		respondWithError(w, http.StatusInternalServerError, "prediction failed", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]float64{"probability": probability}, h.logger)
}
