package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"identity-platform/internal/authsvc/usecase"
	"identity-platform/shared/response"
	"identity-platform/shared/xerrors"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

type AuthHandler struct {
	uc *usecase.UserUsecase
}

func NewAuthHandler(uc *usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	log.Printf("Registration request received for username: %s", req.Username)

	res, err := h.uc.Register(r.Context(), usecase.RegisterRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toAuthResponse(res))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	log.Printf("Login request received for: %s", req.UsernameOrEmail)

	res, err := h.uc.Login(r.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toAuthResponse(res))
}

// ValidateToken always answers 200; the verdict is in the body.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	var req validateTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v := h.uc.ValidateToken(r.Context(), req.Token)
	response.JSON(w, http.StatusOK, validateTokenResponse{
		Valid:    v.Valid,
		UserID:   v.UserID,
		Username: v.Username,
		Email:    v.Email,
		Roles:    v.Roles,
		Message:  v.Message,
	})
}

func (h *AuthHandler) UpdateIdentity(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var req updateIdentityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.uc.UpdateIdentity(r.Context(), userID, usecase.UpdateIdentityRequest{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.uc.Deactivate(r.Context(), userID); err != nil {
		writeAuthError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "UP",
		"service": "auth-service",
	})
}

func toAuthResponse(res *usecase.AuthResult) authResponse {
	return authResponse{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		ExpiresIn:   res.ExpiresIn,
		UserID:      res.UserID,
		Username:    res.Username,
		FirstName:   res.FirstName,
		LastName:    res.LastName,
		Roles:       res.Roles,
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{ Validate() error }) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Malformed request body")
		return false
	}
	if err := req.Validate(); err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			details := make(map[string]string, len(fieldErrs))
			for field, ferr := range fieldErrs {
				details[field] = ferr.Error()
			}
			response.FieldErrors(w, details)
		} else {
			response.Error(w, http.StatusBadRequest, err.Error())
		}
		return false
	}
	return true
}

func pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID")
		return 0, false
	}
	return userID, true
}

// writeAuthError is the single mapping from business errors to transport
// status codes.
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, xerrors.ErrUsernameTaken), errors.Is(err, xerrors.ErrEmailTaken):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, xerrors.ErrInvalidCredentials),
		errors.Is(err, xerrors.ErrAccountLocked),
		errors.Is(err, xerrors.ErrAccountDisabled):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, xerrors.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Unexpected error: %v", err)
		response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
