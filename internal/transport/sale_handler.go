package transport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"vendas-service/internal/domain"
	"vendas-service/internal/middleware"
	"vendas-service/internal/repository"
	"vendas-service/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterSaleRequest represents the sale registration request payload.
// saleDate is optional RFC 3339; the registration time is used when absent.
type RegisterSaleRequest struct {
	ProductIDs []int64 `json:"productIds" validate:"required,min=1,dive,gt=0"`
	Quantities []int32 `json:"quantities" validate:"required,min=1,dive,gt=0"`
	SaleDate   string  `json:"saleDate" validate:"omitempty"`
}

// SaleResponse represents a sale record returned to clients
type SaleResponse struct {
	ID         int64   `json:"id"`
	ProductIDs []int64 `json:"productIds"`
	Quantities []int32 `json:"quantities"`
	TotalValue string  `json:"totalValue"`
	SaleDate   string  `json:"saleDate"`
}

// DeleteSaleResponse confirms a deletion
type DeleteSaleResponse struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// SaleHandler handles HTTP requests for sale operations
type SaleHandler struct {
	saleService service.SaleService
	logger      *zap.Logger
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService service.SaleService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		logger:      logger,
	}
}

// RegisterRoutes registers all sale routes. Both the singular and plural
// registration paths are kept for compatibility with existing clients.
func (h *SaleHandler) RegisterRoutes(r chi.Router) {
	r.Post("/venda", h.RegisterSale)
	r.Post("/vendas", h.RegisterSale)
	r.Get("/vendas", h.ListSales)
	r.Get("/venda/{id}", h.GetSale)
	r.Delete("/venda/{id}", h.DeleteSale)
}

// RegisterSale handles sale registration
func (h *SaleHandler) RegisterSale(w http.ResponseWriter, r *http.Request) {
	var req RegisterSaleRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Sale registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var saleDate time.Time
	if req.SaleDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.SaleDate)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "saleDate must be a valid RFC 3339 timestamp")
			return
		}
		saleDate = parsed
	}

	sale, err := h.saleService.RegisterSale(r.Context(), service.RegisterSaleInput{
		ProductIDs: req.ProductIDs,
		Quantities: req.Quantities,
		SaleDate:   saleDate,
	})
	if err != nil {
		h.respondSaleError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, toSaleResponse(sale))
}

// ListSales returns all recorded sales, oldest first. An empty store yields
// 200 with an empty array rather than 404.
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.saleService.ListSales(r.Context())
	if err != nil {
		h.logger.Error("Failed to list sales", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list sales")
		return
	}

	response := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		response = append(response, toSaleResponse(sale))
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// GetSale returns a single sale by id
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(r.Context(), id)
	if err != nil {
		h.respondSaleError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toSaleResponse(sale))
}

// DeleteSale removes a sale record. Inventory is not restocked.
func (h *SaleHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(r.Context(), id); err != nil {
		h.respondSaleError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, DeleteSaleResponse{ID: id, Deleted: true})
}

// respondSaleError maps workflow errors to HTTP statuses: validation failures
// to 400, unknown products and sales to 404, insufficient stock to 409, and
// everything else (store unreachable, write failures) to 500.
func (h *SaleHandler) respondSaleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoLineItems),
		errors.Is(err, service.ErrLengthMismatch),
		errors.Is(err, service.ErrQuantityNotPositive):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrSaleNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "sale not found")
	case errors.Is(err, repository.ErrStockInsufficient):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("Sale operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to process sale")
	}
}

func toSaleResponse(sale *domain.Sale) SaleResponse {
	return SaleResponse{
		ID:         sale.ID,
		ProductIDs: sale.ProductIDs,
		Quantities: sale.Quantities,
		TotalValue: sale.TotalValue.StringFixed(2),
		SaleDate:   sale.SaleDate.Format(time.RFC3339),
	}
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}
