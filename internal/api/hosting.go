package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"nexus/internal/auth"
	"nexus/internal/models"
)

// GET /hosting/plans — public catalog.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.hosting.ListPlans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, plans)
}

type createOrderRequest struct {
	PlanID             uint   `json:"plan_id"`
	DomainName         string `json:"domain_name"`
	DatacenterLocation string `json:"datacenter_location"`
	SSLEnabled         *bool  `json:"ssl_enabled"`
}

func (in *createOrderRequest) validate() error {
	if in.PlanID == 0 {
		return errInvalid("plan_id is required")
	}
	if strings.TrimSpace(in.DomainName) == "" {
		return errInvalid("domain_name is required")
	}
	if strings.TrimSpace(in.DatacenterLocation) == "" {
		return errInvalid("datacenter_location is required")
	}
	return nil
}

type orderResponse struct {
	OrderID     uint    `json:"order_id"`
	Reference   string  `json:"reference"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

// POST /hosting/orders
//
// Total = (plan price + domain fee) * (1 + VAT). Computed once here;
// the stored amount is authoritative and never re-derived on display.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user := auth.IdentityFrom(r)
	var in createOrderRequest
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}
	if err := in.validate(); err != nil {
		badRequest(w, err.Error())
		return
	}

	plan, err := h.hosting.GetPlan(r.Context(), in.PlanID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	subtotal := plan.Price + h.cfg.Billing.DomainFee
	total := round2(subtotal * (1 + h.cfg.Billing.VATRate))

	sslEnabled := true
	if in.SSLEnabled != nil {
		sslEnabled = *in.SSLEnabled
	}
	order := &models.HostingOrder{
		Reference:          uuid.NewString(),
		UserID:             user.ID,
		PlanID:             plan.ID,
		DomainName:         strings.TrimSpace(in.DomainName),
		DatacenterLocation: strings.TrimSpace(in.DatacenterLocation),
		SSLEnabled:         sslEnabled,
		TotalAmount:        total,
		PaymentStatus:      models.PaymentStatusPending,
	}
	if err := h.hosting.CreateOrder(r.Context(), order); err != nil {
		writeError(w, r, err)
		return
	}

	models.WriteJSON(w, http.StatusCreated, orderResponse{
		OrderID:     order.ID,
		Reference:   order.Reference,
		TotalAmount: order.TotalAmount,
		Status:      order.PaymentStatus,
	})
}

// GET /hosting/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := auth.IdentityFrom(r)
	orders, err := h.hosting.ListOrdersByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, orders)
}
