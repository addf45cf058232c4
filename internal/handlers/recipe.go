package handlers

//go:generate mockgen -source=recipe.go -destination=recipe_mock.go -package=handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
)

// MaxImageSize bounds the accepted upload size.
const MaxImageSize = 10 << 20

// RecipeLister defines the interface that the service must implement.
type RecipeLister interface {
	List(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.Recipe, error)
}

// RecipeCreator creates recipes.
type RecipeCreator interface {
	Create(ctx context.Context, ownerID int64, in models.RecipeInput) (*models.Recipe, error)
}

// RecipeGetter returns one recipe.
type RecipeGetter interface {
	Get(ctx context.Context, ownerID, id int64) (*models.Recipe, error)
}

// RecipeUpdater updates recipes.
type RecipeUpdater interface {
	Update(ctx context.Context, ownerID, id int64, in models.RecipeInput, partial bool) (*models.Recipe, error)
}

// RecipeDeleter deletes recipes.
type RecipeDeleter interface {
	Delete(ctx context.Context, ownerID, id int64) error
}

// RecipeImageUploader stores recipe images.
type RecipeImageUploader interface {
	UploadImage(ctx context.Context, ownerID, id int64, data []byte) (*models.RecipeDB, error)
}

// RecipeRequest represents the JSON body for creating or updating a recipe.
// Omitting tags or ingredients keeps the current set on update; an empty list
// removes every entry.
// swagger:model RecipeRequest
type RecipeRequest struct {
	// required: true
	// default: Sample recipe
	Title *string `json:"title" validate:"omitempty,max=255"`

	// default: Sample description
	Description *string `json:"description"`

	// required: true
	// default: 22
	TimeMinutes *int `json:"time_minutes" validate:"omitempty,gte=0,lte=2147483647"`

	// Decimal with at most 2 places and 5 digits
	// required: true
	// default: 5.25
	Price *models.Price `json:"price" swaggertype:"string"`

	// default: http://example.com/recipe.pdf
	Link *string `json:"link" validate:"omitempty,max=255"`

	Tags        *[]NamedRequest `json:"tags"`
	Ingredients *[]NamedRequest `json:"ingredients"`
}

var recipeFields = []string{"title", "description", "time_minutes", "price", "link", "tags", "ingredients"}

func (req RecipeRequest) input() models.RecipeInput {
	return models.RecipeInput{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Tags:        namedInputs(req.Tags),
		Ingredients: namedInputs(req.Ingredients),
	}
}

func namedInputs(in *[]NamedRequest) *[]models.NamedInput {
	if in == nil {
		return nil
	}
	out := make([]models.NamedInput, 0, len(*in))
	for _, item := range *in {
		var name string
		if item.Name != nil {
			name = *item.Name
		}
		out = append(out, models.NamedInput{Name: name})
	}
	return &out
}

// RecipeResponse is the list representation of a recipe
// swagger:model RecipeResponse
type RecipeResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       models.Price    `json:"price" swaggertype:"string"`
	Link        string          `json:"link"`
	Tags        []NamedResponse `json:"tags"`
	Ingredients []NamedResponse `json:"ingredients"`
}

// RecipeDetailResponse is the detail representation of a recipe
// swagger:model RecipeDetailResponse
type RecipeDetailResponse struct {
	RecipeResponse
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

// RecipeImageResponse is returned after an image upload
// swagger:model RecipeImageResponse
type RecipeImageResponse struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

func newRecipeResponse(r models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        newNamedResponses(r.Tags),
		Ingredients: newNamedResponses(r.Ingredients),
	}
}

func newRecipeDetailResponse(r *models.Recipe) RecipeDetailResponse {
	resp := RecipeDetailResponse{
		RecipeResponse: newRecipeResponse(*r),
		Description:    r.Description,
	}
	if r.Image != "" {
		image := r.Image
		resp.Image = &image
	}
	return resp
}

// parseIDs parses a comma separated id list such as "1,2,3".
func parseIDs(field, raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, services.NewValidationError(field, msgInvalidInteger)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// NewListRecipesHandler returns an HTTP handler listing the caller's recipes,
// newest first. tags and ingredients take comma separated ids; a recipe
// matches when it has any of the tags and any of the ingredients.
// @Summary List recipes
// @Tags recipe
// @Produce json
// @Param tags query string false "Comma separated tag ids"
// @Param ingredients query string false "Comma separated ingredient ids"
// @Success 200 {array} handlers.RecipeResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid filter"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /recipe/recipes [get]
// @Security BearerAuth
func NewListRecipesHandler(svc RecipeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		tagIDs, err := parseIDs("tags", query.Get("tags"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		ingredientIDs, err := parseIDs("ingredients", query.Get("ingredients"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		recipes, err := svc.List(r.Context(), owner, models.RecipeFilter{TagIDs: tagIDs, IngredientIDs: ingredientIDs})
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := make([]RecipeResponse, 0, len(recipes))
		for _, recipe := range recipes {
			resp = append(resp, newRecipeResponse(recipe))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewCreateRecipeHandler returns an HTTP handler creating a recipe together
// with its nested tags and ingredients.
// @Summary Create a recipe
// @Tags recipe
// @Accept json
// @Produce json
// @Param request body handlers.RecipeRequest true "Recipe"
// @Success 201 {object} handlers.RecipeDetailResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /recipe/recipes [post]
// @Security BearerAuth
func NewCreateRecipeHandler(svc RecipeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerID(w, r)
		if !ok {
			return
		}

		var req RecipeRequest
		if err := decodeJSON(r, &req, recipeFields...); err != nil {
			writeError(w, r, err)
			return
		}
		if err := validateRequest(req); err != nil {
			writeError(w, r, err)
			return
		}

		recipe, err := svc.Create(r.Context(), owner, req.input())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, newRecipeDetailResponse(recipe))
	}
}

// NewGetRecipeHandler returns an HTTP handler returning one owned recipe.
// @Summary Get a recipe
// @Tags recipe
// @Produce json
// @Param id path int true "Recipe id"
// @Success 200 {object} handlers.RecipeDetailResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipe/recipes/{id} [get]
// @Security BearerAuth
func NewGetRecipeHandler(svc RecipeGetter) http.HandlerFunc {
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

		recipe, err := svc.Get(r.Context(), owner, id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newRecipeDetailResponse(recipe))
	}
}

// NewUpdateRecipeHandler returns an HTTP handler updating an owned recipe.
// PUT (partial false) requires title, time_minutes and price.
// @Summary Update a recipe
// @Tags recipe
// @Accept json
// @Produce json
// @Param id path int true "Recipe id"
// @Param request body handlers.RecipeRequest true "Recipe fields"
// @Success 200 {object} handlers.RecipeDetailResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipe/recipes/{id} [put]
// @Router /recipe/recipes/{id} [patch]
// @Security BearerAuth
func NewUpdateRecipeHandler(svc RecipeUpdater, partial bool) http.HandlerFunc {
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

		var req RecipeRequest
		if err := decodeJSON(r, &req, recipeFields...); err != nil {
			writeError(w, r, err)
			return
		}
		if err := validateRequest(req); err != nil {
			writeError(w, r, err)
			return
		}

		recipe, err := svc.Update(r.Context(), owner, id, req.input(), partial)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newRecipeDetailResponse(recipe))
	}
}

// NewDeleteRecipeHandler returns an HTTP handler deleting an owned recipe.
// @Summary Delete a recipe
// @Tags recipe
// @Param id path int true "Recipe id"
// @Success 204 "Deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipe/recipes/{id} [delete]
// @Security BearerAuth
func NewDeleteRecipeHandler(svc RecipeDeleter) http.HandlerFunc {
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

// NewUploadRecipeImageHandler returns an HTTP handler attaching an image to an
// owned recipe. The file is sent as the multipart field "image".
// @Summary Upload a recipe image
// @Tags recipe
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Recipe id"
// @Param image formData file true "JPEG, PNG, GIF or WebP image"
// @Success 200 {object} handlers.RecipeImageResponse
// @Failure 400 {object} handlers.ErrorResponse "Not an image"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipe/recipes/{id}/upload-image [post]
// @Security BearerAuth
func NewUploadRecipeImageHandler(svc RecipeImageUploader) http.HandlerFunc {
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

		r.Body = http.MaxBytesReader(w, r.Body, MaxImageSize+1<<20)
		file, _, err := r.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, r, services.NewValidationError("image", "The submitted file is too large."))
				return
			}
			writeError(w, r, services.NewValidationError("image", "No file was submitted."))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
		if err != nil {
			writeError(w, r, err)
			return
		}
		if len(data) > MaxImageSize {
			writeError(w, r, services.NewValidationError("image", "The submitted file is too large."))
			return
		}

		recipe, err := svc.UploadImage(r.Context(), owner, id, data)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, RecipeImageResponse{ID: recipe.ID, Image: recipe.Image})
	}
}
