package handlers

//go:generate mockgen -source=named.go -destination=named_mock.go -package=handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
)

// NamedManager lists, renames and deletes tags or ingredients.
type NamedManager interface {
	List(ctx context.Context, ownerID int64, filter models.NamedFilter) ([]models.NamedDB, error)
	Update(ctx context.Context, ownerID, id int64, name *string) (*models.NamedDB, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// NamedRequest is a tag or ingredient payload
// swagger:model NamedRequest
type NamedRequest struct {
	// default: Vegan
	Name *string `json:"name" validate:"omitempty,max=255"`
}

// NamedResponse is a tag or an ingredient
// swagger:model NamedResponse
type NamedResponse struct {
	// default: 1
	ID int64 `json:"id"`

	// default: Vegan
	Name string `json:"name"`
}

func newNamedResponses(entities []models.NamedDB) []NamedResponse {
	out := make([]NamedResponse, 0, len(entities))
	for _, e := range entities {
		out = append(out, NamedResponse{ID: e.ID, Name: e.Name})
	}
	return out
}

// pathID parses the {id} URL parameter. Ids that cannot be parsed match no
// row, so they are reported as not found.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.ErrNotFound
	}
	return id, nil
}

// NewListNamedHandler returns an HTTP handler listing the caller's tags or
// ingredients, ordered by name descending. assigned_only=1 keeps only the
// entries attached to at least one recipe.
// @Summary List tags or ingredients
// @Tags recipe
// @Produce json
// @Param kind path string true "tags or ingredients"
// @Param assigned_only query int false "1 to return only entries assigned to a recipe"
// @Success 200 {array} handlers.NamedResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /recipe/{kind} [get]
// @Security BearerAuth
func NewListNamedHandler(svc NamedManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		filter := models.NamedFilter{AssignedOnly: r.URL.Query().Get("assigned_only") == "1"}
		entities, err := svc.List(r.Context(), owner, filter)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newNamedResponses(entities))
	}
}

// NewUpdateNamedHandler returns an HTTP handler renaming an owned tag or
// ingredient.
// @Summary Rename a tag or ingredient
// @Tags recipe
// @Accept json
// @Produce json
// @Param kind path string true "tags or ingredients"
// @Param id path int true "Entry id"
// @Param request body handlers.NamedRequest true "New name"
// @Success 200 {object} handlers.NamedResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input or name already used"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipe/{kind}/{id} [put]
// @Router /recipe/{kind}/{id} [patch]
// @Security BearerAuth
func NewUpdateNamedHandler(svc NamedManager, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req NamedRequest
		if err := decodeJSON(r, &req, "name"); err != nil {
			writeError(w, r, err)
			return
		}
		if err := validateRequest(req); err != nil {
			writeError(w, r, err)
			return
		}
		if req.Name == nil && !partial {
			writeError(w, r, services.NewValidationError("name", "This field is required."))
			return
		}

		entity, err := svc.Update(r.Context(), owner, id, req.Name)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, NamedResponse{ID: entity.ID, Name: entity.Name})
	}
}

// NewDeleteNamedHandler returns an HTTP handler deleting an owned tag or
// ingredient.
// @Summary Delete a tag or ingredient
// @Tags recipe
// @Param kind path string true "tags or ingredients"
// @Param id path int true "Entry id"
// @Success 204 "Deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipe/{kind}/{id} [delete]
// @Security BearerAuth
func NewDeleteNamedHandler(svc NamedManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if err := svc.Delete(r.Context(), owner, id); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
