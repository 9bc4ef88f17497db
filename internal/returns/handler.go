package returns

import (
	"errors"
	"net/http"
	"strconv"

	"chandra-dukan-be/internal/httpx"
	"chandra-dukan-be/internal/order"
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
	r.Post("/", h.request)
	r.Get("/", h.list)
}

func (h *Handler) AdminRoutes(r chi.Router) {
	r.Put("/{returnID}/status", h.updateStatus)
}

func (h *Handler) request(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input CreateInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ret, err := h.svc.Request(r.Context(), userID, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.Created(w, ret)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var limit, page int32
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			limit = int32(n)
		}
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			page = int32(n)
		}
	}

	result, total, err := h.svc.List(r.Context(), limit, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, map[string]any{
		"returns": result,
		"total":   total,
	})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status Status  `json:"status"`
		Note   *string `json:"note"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !body.Status.Valid() {
		httpx.Fail(w, http.StatusBadRequest, "invalid return status")
		return
	}

	ret, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "returnID"), body.Status, body.Note)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, ret)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrReturnNotFound), errors.Is(err, order.ErrOrderNotFound):
		httpx.Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.Fail(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, ErrOrderNotDelivered), errors.Is(err, ErrReasonRequired):
		httpx.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrReturnExists), errors.Is(err, ErrInvalidTransition):
		httpx.Fail(w, http.StatusConflict, err.Error())
	default:
		httpx.Internal(w, r, err)
	}
}
