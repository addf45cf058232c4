package services

//go:generate mockgen -source=recipe.go -destination=recipe_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RecipeReader defines owner-scoped recipe reads.
type RecipeReader interface {
	GetByID(ctx context.Context, ownerID, id int64) (*models.RecipeDB, error)
	List(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.RecipeDB, error)
}

// RecipeWriter defines owner-scoped recipe writes.
type RecipeWriter interface {
	Create(ctx context.Context, recipe *models.RecipeDB) (*models.RecipeDB, error)
	Update(ctx context.Context, recipe *models.RecipeDB) (*models.RecipeDB, error)
	SetImage(ctx context.Context, ownerID, id int64, image string) (*models.RecipeDB, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// AssociationLister loads one association set for many recipes at once.
type AssociationLister interface {
	ListByRecipes(ctx context.Context, recipeIDs []int64) (map[int64][]models.NamedDB, error)
}

// AssociationReconciler rebinds the tags and ingredients of a recipe.
type AssociationReconciler interface {
	Reconcile(ctx context.Context, ownerID, recipeID int64, tags, ingredients *[]models.NamedInput, replace bool) error
}

// ImageStorage stores uploaded images and returns their public reference.
type ImageStorage interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}

// RecipePublisher announces committed recipe writes.
type RecipePublisher interface {
	Publish(ctx context.Context, ownerID, recipeID int64, operation string)
}

// RecipeService handles recipe operations for the authenticated owner.
type RecipeService struct {
	tx          Transactor
	reader      RecipeReader
	writer      RecipeWriter
	reconciler  AssociationReconciler
	tags        AssociationLister
	ingredients AssociationLister
	images      ImageStorage
	publisher   RecipePublisher
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(
	tx Transactor,
	reader RecipeReader,
	writer RecipeWriter,
	reconciler AssociationReconciler,
	tags AssociationLister,
	ingredients AssociationLister,
	images ImageStorage,
	publisher RecipePublisher,
) *RecipeService {
	return &RecipeService{
		tx:          tx,
		reader:      reader,
		writer:      writer,
		reconciler:  reconciler,
		tags:        tags,
		ingredients: ingredients,
		images:      images,
		publisher:   publisher,
	}
}

// Create stores a recipe with its nested tags and ingredients in one
// transaction.
func (s *RecipeService) Create(ctx context.Context, ownerID int64, in models.RecipeInput) (*models.Recipe, error) {
	if err := validateRecipeInput(&in, true); err != nil {
		return nil, err
	}

	var recipe *models.Recipe
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		row := &models.RecipeDB{UserID: ownerID}
		in.Apply(row)

		created, err := s.writer.Create(ctx, row)
		if err != nil {
			logger.Log.Errorw("failed to create recipe", "ownerID", ownerID, "error", err)
			return err
		}
		if err := s.reconciler.Reconcile(ctx, ownerID, created.ID, in.Tags, in.Ingredients, false); err != nil {
			return err
		}
		recipe, err = s.load(ctx, created)
		return err
	})
	if err != nil {
		return nil, ownerGone(err)
	}

	s.publisher.Publish(ctx, ownerID, recipe.ID, models.RecipeCreated)
	return recipe, nil
}

// Get returns an owned recipe with its associations.
func (s *RecipeService) Get(ctx context.Context, ownerID, id int64) (*models.Recipe, error) {
	row, err := s.getRow(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, row)
}

// List returns the owner's recipes matching filter, newest first.
func (s *RecipeService) List(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.Recipe, error) {
	rows, err := s.reader.List(ctx, ownerID, filter)
	if err != nil {
		logger.Log.Errorw("failed to list recipes", "ownerID", ownerID, "error", err)
		return nil, err
	}
	return s.loadAll(ctx, rows)
}

// Update changes an owned recipe. A full update requires title, time_minutes
// and price; a partial one only touches submitted fields. Submitted tag or
// ingredient lists replace the current set, absent ones keep it.
func (s *RecipeService) Update(ctx context.Context, ownerID, id int64, in models.RecipeInput, partial bool) (*models.Recipe, error) {
	if err := validateRecipeInput(&in, !partial); err != nil {
		return nil, err
	}

	var recipe *models.Recipe
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		row, err := s.getRow(ctx, ownerID, id)
		if err != nil {
			return err
		}
		in.Apply(row)

		updated, err := s.writer.Update(ctx, row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			logger.Log.Errorw("failed to update recipe", "ownerID", ownerID, "id", id, "error", err)
			return err
		}
		if err := s.reconciler.Reconcile(ctx, ownerID, updated.ID, in.Tags, in.Ingredients, true); err != nil {
			return err
		}
		recipe, err = s.load(ctx, updated)
		return err
	})
	if err != nil {
		return nil, ownerGone(err)
	}

	s.publisher.Publish(ctx, ownerID, recipe.ID, models.RecipeUpdated)
	return recipe, nil
}

// Delete removes an owned recipe and, best effort, its stored image.
func (s *RecipeService) Delete(ctx context.Context, ownerID, id int64) error {
	var image string
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		row, err := s.getRow(ctx, ownerID, id)
		if err != nil {
			return err
		}
		image = row.Image

		if err := s.writer.Delete(ctx, ownerID, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			logger.Log.Errorw("failed to delete recipe", "ownerID", ownerID, "id", id, "error", err)
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.removeImage(ctx, image)
	s.publisher.Publish(ctx, ownerID, id, models.RecipeDeleted)
	return nil
}

// UploadImage stores data as the recipe's image and replaces the previous one.
// data must decode as a JPEG, PNG, GIF or WebP image.
func (s *RecipeService) UploadImage(ctx context.Context, ownerID, id int64, data []byte) (*models.RecipeDB, error) {
	ext, contentType, err := DetectImage(data)
	if err != nil {
		return nil, err
	}

	current, err := s.getRow(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("uploads/recipe/%d/%s.%s", id, uuid.NewString(), ext)
	ref, err := s.images.Save(ctx, key, contentType, data)
	if err != nil {
		logger.Log.Errorw("failed to store recipe image", "ownerID", ownerID, "id", id, "error", err)
		return nil, err
	}

	updated, err := s.writer.SetImage(ctx, ownerID, id, ref)
	if err != nil {
		s.removeImage(ctx, ref)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Log.Errorw("failed to record recipe image", "ownerID", ownerID, "id", id, "error", err)
		return nil, err
	}

	if current.Image != "" && current.Image != ref {
		s.removeImage(ctx, current.Image)
	}
	s.publisher.Publish(ctx, ownerID, id, models.RecipeImageUploaded)
	return updated, nil
}

func (s *RecipeService) getRow(ctx context.Context, ownerID, id int64) (*models.RecipeDB, error) {
	row, err := s.reader.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Log.Errorw("failed to get recipe", "ownerID", ownerID, "id", id, "error", err)
		return nil, err
	}
	return row, nil
}

func (s *RecipeService) removeImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.images.Delete(ctx, ref); err != nil {
		logger.Log.Warnw("failed to remove stored image", "image", ref, "error", err)
	}
}

func (s *RecipeService) load(ctx context.Context, row *models.RecipeDB) (*models.Recipe, error) {
	recipes, err := s.loadAll(ctx, []models.RecipeDB{*row})
	if err != nil {
		return nil, err
	}
	return &recipes[0], nil
}

// loadAll attaches tags and ingredients to rows, keeping their order.
func (s *RecipeService) loadAll(ctx context.Context, rows []models.RecipeDB) ([]models.Recipe, error) {
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	tags, err := s.tags.ListByRecipes(ctx, ids)
	if err != nil {
		logger.Log.Errorw("failed to load recipe tags", "error", err)
		return nil, err
	}
	ingredients, err := s.ingredients.ListByRecipes(ctx, ids)
	if err != nil {
		logger.Log.Errorw("failed to load recipe ingredients", "error", err)
		return nil, err
	}

	recipes := make([]models.Recipe, len(rows))
	for i, row := range rows {
		recipes[i] = models.Recipe{
			RecipeDB:    row,
			Tags:        nonNil(tags[row.ID]),
			Ingredients: nonNil(ingredients[row.ID]),
		}
	}
	return recipes, nil
}

func nonNil(entities []models.NamedDB) []models.NamedDB {
	if entities == nil {
		return []models.NamedDB{}
	}
	return entities
}

// validateRecipeInput checks submitted fields, trimming scalar strings in place.
// With required set, title, time_minutes and price must be present. Nested
// names are checked here too so nothing is written for an invalid payload.
func validateRecipeInput(in *models.RecipeInput, required bool) error {
	v := &ValidationError{}

	switch {
	case in.Title != nil:
		title := checkText(v, "title", *in.Title, false)
		in.Title = &title
	case required:
		v.Add("title", msgRequired)
	}

	switch {
	case in.TimeMinutes != nil:
		checkCount(v, "time_minutes", *in.TimeMinutes)
	case required:
		v.Add("time_minutes", msgRequired)
	}

	switch {
	case in.Price != nil:
		if err := in.Price.Validate(); err != nil {
			v.Add("price", err.Error())
		}
	case required:
		v.Add("price", msgRequired)
	}

	if in.Link != nil {
		link := checkText(v, "link", *in.Link, true)
		in.Link = &link
	}

	normalizeNames(v, string(models.KindTag), in.Tags)
	normalizeNames(v, string(models.KindIngredient), in.Ingredients)

	return v.Err()
}
