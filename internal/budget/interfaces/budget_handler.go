package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

type BudgetServiceInterface interface {
	CreateBudget(authorID, name string, income, expenses float64, categoryID int, sharedWith []string) (*domain.Budget, error)
	ListVisible(userID string, assignedOnly bool, limit, offset int) ([]domain.Budget, int, error)
	GetBudget(requesterID string, budgetID int) (*domain.Budget, error)
	AddShare(requesterID string, budgetID int, targetUserID string) error
	RemoveShare(requesterID string, budgetID int, targetUserID string) error
}

type BudgetHandler struct {
	service      BudgetServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewBudgetHandler(
	service BudgetServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *BudgetHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &BudgetHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// ListBudgets answers the access-scoped listing: budgets the requester
// authored or was shared on. ?assigned_only=1 narrows to authored ones.
func (h *BudgetHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	assignedOnly := false
	if raw := r.URL.Query().Get("assigned_only"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid assigned_only parameter")
			return
		}
		assignedOnly = parsed != 0
	}

	limit, offset, err := pageParams(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	budgets, total, err := h.service.ListVisible(userID, assignedOnly, limit, offset)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve budgets")
		return
	}
	if budgets == nil {
		budgets = make([]domain.Budget, 0)
	}

	h.respondJSON(w, http.StatusOK, paginatedResponse{
		Count:   total,
		Results: budgets,
	})
}

// CreateBudget stamps the authenticated identity as author. The request body
// is decoded into an explicit field list, so a client-supplied "author" never
// reaches the service.
func (h *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name       string   `json:"name"`
		Income     float64  `json:"income"`
		Expenses   float64  `json:"expenses"`
		Category   int      `json:"category"`
		SharedWith []string `json:"shared_with"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	budget, err := h.service.CreateBudget(userID, req.Name, req.Income, req.Expenses, req.Category, req.SharedWith)
	if err != nil {
		h.handleServiceError(w, err, "Could not create budget")
		return
	}

	h.respondJSON(w, http.StatusCreated, budget)
}

func (h *BudgetHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	budgetID, err := strconv.Atoi(r.PathValue("budgetID"))
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Budget not found")
		return
	}

	budget, err := h.service.GetBudget(userID, budgetID)
	if err != nil {
		h.handleServiceError(w, err, "Could not fetch budget")
		return
	}

	h.respondJSON(w, http.StatusOK, budget)
}

func (h *BudgetHandler) AddShare(w http.ResponseWriter, r *http.Request) {
	h.mutateShare(w, r, h.service.AddShare, "Budget shared successfully")
}

func (h *BudgetHandler) RemoveShare(w http.ResponseWriter, r *http.Request) {
	h.mutateShare(w, r, h.service.RemoveShare, "Budget share removed")
}

func (h *BudgetHandler) mutateShare(
	w http.ResponseWriter,
	r *http.Request,
	mutate func(requesterID string, budgetID int, targetUserID string) error,
	successMessage string,
) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	budgetID, err := strconv.Atoi(r.PathValue("budgetID"))
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Budget not found")
		return
	}

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		h.respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := mutate(userID, budgetID, req.UserID); err != nil {
		h.handleServiceError(w, err, "Could not update budget shares")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": successMessage,
	})
}

func (h *BudgetHandler) handleServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, budgetErrors.ErrBudgetNotFound):
		h.respondError(w, http.StatusNotFound, "Budget not found")
	case errors.Is(err, budgetErrors.ErrNotBudgetAuthor):
		h.respondError(w, http.StatusForbidden, budgetErrors.ErrNotBudgetAuthor.Error())
	case budgetErrors.IsValidationError(err), budgetErrors.IsConflictError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}
