package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"AuthDesk/internal/config"
	"AuthDesk/internal/metrics"
	"AuthDesk/internal/middleware"
	"AuthDesk/internal/model"
	"AuthDesk/internal/service"
)

// AuthHandler обслуживает /auth/*.
type AuthHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewAuthHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{UserService: userService, Logger: logger, Config: cfg}
}

// Register регистрация пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.UserService.Register(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		h.Logger.Errorw("Register: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()
	h.Logger.Infow("User registered", "user_id", user.ID)
	h.respondWithToken(w, user)
}

// Login вход по email и паролю
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		metrics.AuthAttemptsTotal.WithLabelValues("password", "invalid").Inc()
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		metrics.AuthAttemptsTotal.WithLabelValues("password", "error").Inc()
		h.Logger.Errorw("Login: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("password", "ok").Inc()
	h.respondWithToken(w, user)
}

// SSOLogin вход через внешнего провайдера
func (h *AuthHandler) SSOLogin(w http.ResponseWriter, r *http.Request) {
	var req model.SSOLoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.UserService.SSOLogin(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrSSOConflict):
		metrics.AuthAttemptsTotal.WithLabelValues("sso", "conflict").Inc()
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		metrics.AuthAttemptsTotal.WithLabelValues("sso", "error").Inc()
		h.Logger.Errorw("SSOLogin: service error", "provider", req.SSOProvider, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("sso", "ok").Inc()
	h.respondWithToken(w, user)
}

// Me текущий пользователь по токену
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.UserService.GetByID(r.Context(), userID)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	case err != nil:
		h.Logger.Errorw("Me: service error", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Verify проверка токена. Невалидный токен — 200 с valid=false.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	res := model.VerifyResult{}
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		_, err := h.UserService.GetByID(r.Context(), userID)
		switch {
		case err == nil:
			res = model.VerifyResult{Valid: true, UserID: &userID}
		case !errors.Is(err, service.ErrUserNotFound):
			h.Logger.Errorw("Verify: service error", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	if res.Valid {
		metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
	} else {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
	}
	writeJSON(w, http.StatusOK, res)
}

// decode читает JSON и валидирует его. false — ответ уже записан.
func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.Logger.Warnw("invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}
	if err := validateStruct(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *model.User) {
	token, err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret, h.Config.TokenTTL)
	if err != nil {
		h.Logger.Errorw("failed to issue token", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, model.AuthResponse{
		AccessToken: token,
		TokenType:   model.TokenTypeBearer,
		User:        *user,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}
