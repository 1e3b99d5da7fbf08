package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
	"github.com/rl1809/storefront/internal/port"
)

type HTTPHandler struct {
	orderService *service.OrderService
	catalog      port.ProductRepository
}

type OrderItemRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type CreateOrderHTTPRequest struct {
	CustomerID string             `json:"customer_id"`
	Products   []OrderItemRequest `json:"products"`
}

type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Items      []OrderItemResponse `json:"items"`
	Total      decimal.Decimal     `json:"total"`
	CreatedAt  time.Time           `json:"created_at"`
}

type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantity_in_stock"`
}

type ShortageResponse struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

type ErrorResponse struct {
	Error           string             `json:"error"`
	MissingProducts []string           `json:"missing_products,omitempty"`
	Shortages       []ShortageResponse `json:"shortages,omitempty"`
}

func NewHTTPHandler(orderService *service.OrderService, catalog port.ProductRepository) *HTTPHandler {
	return &HTTPHandler{orderService: orderService, catalog: catalog}
}

func (h *HTTPHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.HealthCheck)
	r.Post("/api/orders", h.CreateOrder)
	r.Get("/api/products/{id}", h.GetProduct)
	return r
}

func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	items := make([]service.RequestedItem, len(req.Products))
	for i, p := range req.Products {
		items[i] = service.RequestedItem{ProductID: p.ID, Quantity: p.Quantity}
	}

	order, err := h.orderService.CreateOrder(r.Context(), service.CreateOrderRequest{
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	products, err := h.catalog.FindAllByID(r.Context(), []string{id})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}
	if len(products) == 0 {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}

	p := products[0]
	writeJSON(w, http.StatusOK, ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price,
		QuantityInStock: p.QuantityInStock,
	})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, err error) {
	var missing *domain.MissingProductsError
	var shortage *domain.InsufficientStockError

	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:           "products not found",
			MissingProducts: missing.ProductIDs,
		})
	case errors.As(err, &shortage):
		resp := ErrorResponse{Error: "insufficient stock"}
		for _, s := range shortage.Shortages {
			resp.Shortages = append(resp.Shortages, ShortageResponse{
				ProductID: s.ProductID,
				Requested: s.Requested,
				Available: s.Available,
			})
		}
		writeJSON(w, http.StatusConflict, resp)
	case errors.Is(err, domain.ErrCustomerNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "customer not found"})
	case errors.Is(err, domain.ErrNoProductsFound):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "no products found"})
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrDuplicateProducts):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func toOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return OrderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Items:      items,
		Total:      order.Total(),
		CreatedAt:  order.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
