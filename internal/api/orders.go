package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/safar/northwind-store/internal/models"
)

type orderRequest struct {
	CustomerID     string           `json:"customer_id"`
	EmployeeID     int64            `json:"employee_id"`
	ShipVia        *int64           `json:"ship_via"`
	Freight        *decimal.Decimal `json:"freight"`
	ShipName       string           `json:"ship_name"`
	ShipAddress    string           `json:"ship_address"`
	ShipCity       string           `json:"ship_city"`
	ShipRegion     string           `json:"ship_region"`
	ShipPostalCode string           `json:"ship_postal_code"`
	ShipCountry    string           `json:"ship_country"`
}

func (req orderRequest) toModel(id int64) models.Order {
	return models.Order{
		OrderID:        id,
		CustomerID:     req.CustomerID,
		EmployeeID:     req.EmployeeID,
		ShipVia:        req.ShipVia,
		Freight:        req.Freight,
		ShipName:       req.ShipName,
		ShipAddress:    req.ShipAddress,
		ShipCity:       req.ShipCity,
		ShipRegion:     req.ShipRegion,
		ShipPostalCode: req.ShipPostalCode,
		ShipCountry:    req.ShipCountry,
	}
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) addOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orders.Add(r.Context(), req.toModel(0))
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orders.GetDetail(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orders.Update(r.Context(), req.toModel(id))
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orders.Delete(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) setInWork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req struct {
		OrderDate    *time.Time `json:"order_date"`
		RequiredDate *time.Time `json:"required_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderDate == nil || req.RequiredDate == nil {
		respondError(w, http.StatusBadRequest, "order_date and required_date are required")
		return
	}

	order, err := h.orders.SetInWork(r.Context(), id, *req.OrderDate, *req.RequiredDate)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) setFinished(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req struct {
		ShippedDate *time.Time `json:"shipped_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ShippedDate == nil {
		respondError(w, http.StatusBadRequest, "shipped_date is required")
		return
	}

	order, err := h.orders.SetFinished(r.Context(), id, *req.ShippedDate)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) orderLines(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	lines, err := h.orders.CustomerOrderDetail(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, lines)
}

func (h *Handler) customerHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.orders.CustomerOrderHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}
