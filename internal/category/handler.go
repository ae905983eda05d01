package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/firetrack/internal/user"
)

type Handler struct {
	store        Store
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewHandler(
	store Store,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	if store == nil || respondJSON == nil || respondError == nil {
		panic("Store and response functions must not be nil")
	}
	return &Handler{
		store:        store,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ParentID    *int    `json:"parent_id"`
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var parent *Category
	if req.ParentID != nil {
		var err error
		parent, err = h.store.Get(r.Context(), *req.ParentID)
		if err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				h.respondError(w, http.StatusNotFound, "Parent category not found")
				return
			}
			slog.Error("could not load parent category", "parent_id", *req.ParentID, "error", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to create category")
			return
		}
	}

	category, err := h.store.Create(r.Context(), u, req.Name, req.Description, parent)
	if err != nil {
		var (
			missing   *MissingDataError
			wrongUser *ParentCategoryHasWrongUserError
			exists    *CategoryAlreadyExistsError
		)
		switch {
		case errors.As(err, &missing):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &wrongUser):
			// Do not reveal that the category exists for someone else.
			h.respondError(w, http.StatusNotFound, "Parent category not found")
		case errors.As(err, &exists):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			slog.Error("could not create category", "user_id", u.ID, "error", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to create category")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully created.",
		"data":    category,
	})
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := h.ownedCategory(w, r)
	if !ok {
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category retrieved successfully.",
		"data":    category,
	})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := h.ownedCategory(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), category.ID); err != nil {
		var (
			hasChildren *HasChildrenError
			notDeleted  *NotDeletedError
		)
		switch {
		case errors.As(err, &hasChildren):
			h.respondError(w, http.StatusConflict, err.Error())
		case errors.As(err, &notDeleted):
			h.respondError(w, http.StatusNotFound, "Category not found")
		default:
			slog.Error("could not delete category", "category_id", category.ID, "error", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully deleted.",
	})
}

// ownedCategory resolves the validated {categoryID} path value to a category of the authenticated user.
// Categories of other users are reported as not found.
func (h *Handler) ownedCategory(w http.ResponseWriter, r *http.Request) (*Category, bool) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	id, ok := pathParamFromContext(r.Context(), "categoryID")
	if !ok {
		h.respondError(w, http.StatusNotFound, "Category not found")
		return nil, false
	}

	category, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			h.respondError(w, http.StatusNotFound, "Category not found")
			return nil, false
		}
		slog.Error("could not load category", "category_id", id, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to load category")
		return nil, false
	}
	if category.UserID != u.ID {
		h.respondError(w, http.StatusNotFound, "Category not found")
		return nil, false
	}
	return category, true
}
