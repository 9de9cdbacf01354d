package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"identity-platform/internal/usersvc/usecase"
	"identity-platform/shared/response"
	"identity-platform/shared/xerrors"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

type UserHandler struct {
	uc *usecase.ProfileUsecase
}

func NewUserHandler(uc *usecase.ProfileUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	p, err := h.uc.Get(r.Context(), userID)
	if err != nil {
		writeUserError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toProfileResponse(p))
}

func (h *UserHandler) GetProfileByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	p, err := h.uc.GetByUsername(r.Context(), username)
	if err != nil {
		writeUserError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toProfileResponse(p))
}

func (h *UserHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	profiles, err := h.uc.List(r.Context(), limit, offset)
	if err != nil {
		writeUserError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toProfileResponses(profiles))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := h.uc.Update(r.Context(), userID, req.toPatch())
	if err != nil {
		writeUserError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toProfileResponse(p))
}

func (h *UserHandler) RecordLastLogin(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.uc.RecordLastLogin(r.Context(), userID); err != nil {
		writeUserError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProfile deactivates rather than deletes; only USER_DELETED events
// remove rows.
func (h *UserHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.uc.Deactivate(r.Context(), userID); err != nil {
		writeUserError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "UP",
		"service": "user-service",
	})
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

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, xerrors.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Unexpected error: %v", err)
		response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
