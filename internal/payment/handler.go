package payment

import (
	"errors"
	"net/http"

	"chandra-dukan-be/internal/httpx"
	"chandra-dukan-be/internal/order"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/verify", h.verify)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	var input VerifyInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.svc.VerifyAndConfirm(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrSignatureMismatch):
			httpx.FailBilingual(w, http.StatusBadRequest,
				"payment verification failed", "भुगतान सत्यापन विफल रहा")
		case errors.Is(err, ErrMissingField):
			httpx.Fail(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrOrderNotFound):
			httpx.Fail(w, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrForbidden):
			httpx.Fail(w, http.StatusForbidden, "not allowed")
		default:
			httpx.Internal(w, r, err)
		}
		return
	}

	httpx.OK(w, o)
}
