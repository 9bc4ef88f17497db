package user

import (
	"errors"
	"net/http"

	"chandra-dukan-be/internal/httpx"
	"chandra-dukan-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/request-otp", h.requestOTP)
	r.Post("/verify-otp", h.verifyOTP)
}

// Me is mounted behind RequireAuth in cmd/server.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	u, err := h.svc.GetByID(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, u)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var input RegisterInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Register(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.Created(w, result)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Login(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, result)
}

func (h *Handler) requestOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.RequestOTP(r.Context(), body.Phone); err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{
		Success:   true,
		Message:   "otp sent if the phone is registered",
		MessageHi: "यदि फ़ोन पंजीकृत है तो ओटीपी भेजा गया",
	})
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.VerifyOTP(r.Context(), body.Phone, body.Code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, result)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		httpx.Fail(w, http.StatusNotFound, "user not found")
	case errors.Is(err, ErrPhoneExists):
		httpx.FailBilingual(w, http.StatusConflict,
			"phone number already registered", "फ़ोन नंबर पहले से पंजीकृत है")
	case errors.Is(err, ErrInvalidCredentials):
		httpx.FailBilingual(w, http.StatusUnauthorized,
			"invalid phone or password", "गलत फ़ोन या पासवर्ड")
	case errors.Is(err, ErrInvalidOTP):
		httpx.FailBilingual(w, http.StatusUnauthorized,
			"invalid or expired otp", "अमान्य या समाप्त ओटीपी")
	case errors.Is(err, ErrInvalidPhone),
		errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrWeakPassword):
		httpx.Fail(w, http.StatusBadRequest, err.Error())
	default:
		httpx.Internal(w, r, err)
	}
}
