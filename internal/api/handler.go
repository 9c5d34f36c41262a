package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/safar/northwind-store/internal/database"
	"github.com/safar/northwind-store/internal/models"
)

type OrderStore interface {
	List(ctx context.Context) ([]models.Order, error)
	GetDetail(ctx context.Context, id int64) (*models.Order, error)
	Add(ctx context.Context, order models.Order) (*models.Order, error)
	SetInWork(ctx context.Context, id int64, orderDate, requiredDate time.Time) (*models.Order, error)
	SetFinished(ctx context.Context, id int64, shippedDate time.Time) (*models.Order, error)
	Update(ctx context.Context, order models.Order) (*models.Order, error)
	Delete(ctx context.Context, id int64) (*models.Order, error)
	CustomerOrderHistory(ctx context.Context, customerID string) ([]models.CustOrderHist, error)
	CustomerOrderDetail(ctx context.Context, orderID int64) ([]models.CustOrdersDetail, error)
}

type CatalogStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListShippers(ctx context.Context) ([]models.Shipper, error)
	ListTerritories(ctx context.Context) ([]models.Territory, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	orders  OrderStore
	catalog CatalogStore
	db      Pinger
	logger  *log.Entry
}

func NewHandler(orders OrderStore, catalog CatalogStore, db Pinger, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}

	return &Handler{
		orders:  orders,
		catalog: catalog,
		db:      db,
		logger:  logger.WithField("component", "api"),
	}
}

// Router wires every endpoint. Extra middlewares run after request id and
// panic recovery.
func (h *Handler) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middlewares...)

	r.Get("/health", h.health)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.addOrder)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getOrder)
			r.Put("/", h.updateOrder)
			r.Delete("/", h.deleteOrder)
			r.Post("/in-work", h.setInWork)
			r.Post("/finished", h.setFinished)
			r.Get("/lines", h.orderLines)
		})
	})

	r.Get("/customers/{id}/history", h.customerHistory)

	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/shippers", h.listShippers)
	r.Get("/territories", h.listTerritories)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.WithError(err).Warn("health check failed")
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, database.ErrOrderNotFound), errors.Is(err, database.ErrProductNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case database.IsAbsent(err):
		respondError(w, http.StatusConflict, err.Error())
	case database.ClassifyError(err) == database.ErrorClassConstraint:
		respondError(w, http.StatusUnprocessableEntity, "request violates a store constraint")
	case database.ClassifyError(err) == database.ErrorClassConnection:
		h.logger.WithError(err).Warn("store unavailable")
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
	default:
		h.logger.WithError(err).WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": middleware.GetReqID(r.Context()),
		}).Error("store operation failed")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("encode JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
