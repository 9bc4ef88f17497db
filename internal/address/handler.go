package address

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
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{addressID}/default", h.setDefault)
	r.Delete("/{addressID}", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	addrs, err := h.svc.List(r.Context(), userID)
	if err != nil {
		httpx.Internal(w, r, err)
		return
	}
	httpx.OK(w, addrs)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input CreateAddressInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	addr, err := h.svc.Create(r.Context(), userID, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.Created(w, addr)
}

func (h *Handler) setDefault(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.svc.SetDefault(r.Context(), userID, chi.URLParam(r, "addressID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.OK(w, nil)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), userID, chi.URLParam(r, "addressID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.OK(w, nil)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrAddressNotFound):
		httpx.Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAddressIncomplete), errors.Is(err, ErrInvalidPincode):
		httpx.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.Fail(w, http.StatusForbidden, "not allowed")
	default:
		httpx.Internal(w, r, err)
	}
}
