package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"chandra-dukan-be/internal/httpx"
	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/order"
	"chandra-dukan-be/internal/payment"

	"go.uber.org/zap"
)

const provider = "razorpay"

// Payload is the subset of the Razorpay webhook body we act on. The internal
// order id travels in the payment notes, set when the gateway order was
// created.
type Payload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string            `json:"id"`
				OrderID string            `json:"order_id"`
				Amount  int64             `json:"amount"`
				Notes   map[string]string `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type Handler struct {
	repo      payment.Repository
	orderRepo order.Repository
	verifier  *payment.Verifier
}

func NewHandler(repo payment.Repository, orderRepo order.Repository, verifier *payment.Verifier) *Handler {
	return &Handler{repo: repo, orderRepo: orderRepo, verifier: verifier}
}

// ServeHTTP handles POST /api/payments/webhook. Retried deliveries of the same
// event id are acknowledged without reprocessing.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context()).With(zap.String("handler", "RazorpayWebhook"))

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "failed to read body")
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Razorpay-Signature")
	eventID := r.Header.Get("X-Razorpay-Event-Id")
	if signature == "" || eventID == "" {
		httpx.Fail(w, http.StatusBadRequest, "missing webhook headers")
		return
	}

	if !h.verifier.VerifyBody(body, signature) {
		log.Warn("webhook signature mismatch", zap.String("event_id", eventID))
		httpx.Fail(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	duplicate, err := h.repo.SaveWebhookEvent(r.Context(), provider, eventID, body, true)
	if err != nil {
		httpx.Internal(w, r, err)
		return
	}
	if duplicate {
		httpx.OK(w, nil)
		return
	}

	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	log = log.With(zap.String("event", p.Event), zap.String("event_id", eventID))

	switch p.Event {
	case "payment.captured":
		orderID, err := strconv.ParseInt(p.Payload.Payment.Entity.Notes["order_id"], 10, 64)
		if err != nil {
			log.Warn("webhook payment without order_id note")
			httpx.OK(w, nil)
			return
		}

		note := "payment captured via " + provider + " webhook"
		o, err := h.orderRepo.ConfirmPayment(r.Context(), orderID, &note)
		if err != nil {
			log.Error("failed to confirm payment", zap.Int64("order_id", orderID), zap.Error(err))
			httpx.Internal(w, r, err)
			return
		}
		log.Info("payment captured", zap.String("order_number", o.OrderNumber))
	default:
		// Other events are recorded for audit only.
	}

	httpx.OK(w, nil)
}
