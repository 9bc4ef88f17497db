package order

import (
	"errors"
	"net/http"
	"strconv"

	"chandra-dukan-be/internal/httpx"
	"chandra-dukan-be/internal/product"
	"chandra-dukan-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts authenticated order endpoints; Track is mounted separately
// as a public route in cmd/server.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.place)
	r.Get("/", h.list)
	r.Get("/{orderID}", h.get)
	r.Put("/{orderID}/cancel", h.cancel)
}

func (h *Handler) AdminRoutes(r chi.Router) {
	r.Put("/{orderID}/status", h.updateStatus)
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input PlaceOrderInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.svc.PlaceOrder(r.Context(), userID, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.Created(w, o)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ListFilter{}
	if v := q.Get("status"); v != "" {
		status := Status(v)
		if !status.Valid() {
			httpx.Fail(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		filter.Status = &status
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			filter.Limit = int32(n)
		}
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			filter.Page = int32(n)
		}
	}

	orders, total, err := h.svc.ListOrders(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, map[string]any{
		"orders": orders,
		"total":  total,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.svc.GetOrder(r.Context(), orderID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var body struct {
		Status Status  `json:"status"`
		Note   *string `json:"note"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.svc.UpdateStatus(r.Context(), orderID, body.Status, body.Note)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, o)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.svc.CancelOrder(r.Context(), orderID, body.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, o)
}

// Track handles public tracking by order number.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Track(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, info)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		httpx.FailBilingual(w, http.StatusNotFound, "order not found", "ऑर्डर नहीं मिला")
	case errors.Is(err, product.ErrProductNotFound):
		httpx.FailBilingual(w, http.StatusNotFound, err.Error(), "उत्पाद नहीं मिला")
	case errors.Is(err, product.ErrInsufficientStock):
		httpx.FailBilingual(w, http.StatusConflict, err.Error(), "पर्याप्त स्टॉक नहीं है")
	case errors.Is(err, product.ErrProductInactive):
		httpx.FailBilingual(w, http.StatusConflict, err.Error(), "उत्पाद उपलब्ध नहीं है")
	case errors.Is(err, ErrOrderTerminal):
		httpx.FailBilingual(w, http.StatusBadRequest,
			"order can no longer be cancelled", "ऑर्डर अब रद्द नहीं किया जा सकता")
	case errors.Is(err, ErrInvalidTransition):
		httpx.Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.Fail(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, ErrEmptyOrder),
		errors.Is(err, ErrReasonRequired),
		errors.Is(err, ErrInvalidPayment),
		errors.Is(err, ErrCustomerIncomplete),
		errors.Is(err, product.ErrInvalidQuantity):
		httpx.Fail(w, http.StatusBadRequest, err.Error())
	default:
		httpx.Internal(w, r, err)
	}
}
