package services

//go:generate mockgen -source=reconcile.go -destination=reconcile_mock.go -package=services

import (
	"context"
	"fmt"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// AssociationStore resolves named entities and maintains one association set.
type AssociationStore interface {
	GetOrCreate(ctx context.Context, ownerID int64, name string) (*models.NamedDB, error)
	Attach(ctx context.Context, recipeID, entityID int64) error
	Clear(ctx context.Context, recipeID int64) error
}

// Reconciler rebinds a recipe's tags and ingredients from submitted names.
type Reconciler struct {
	tags        AssociationStore
	ingredients AssociationStore
}

// NewReconciler creates a new Reconciler.
func NewReconciler(tags, ingredients AssociationStore) *Reconciler {
	return &Reconciler{tags: tags, ingredients: ingredients}
}

// Reconcile resolves every submitted name to an owned entity, creating the
// missing ones, and adds it to the recipe. With replace set, a kind whose
// input is non-nil is cleared first, so an empty slice detaches everything.
// A nil input leaves that kind untouched. All names are validated before any
// row is written. Callers are expected to run it inside a transaction.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	ownerID, recipeID int64,
	tags, ingredients *[]models.NamedInput,
	replace bool,
) error {
	v := &ValidationError{}
	tagNames := normalizeNames(v, string(models.KindTag), tags)
	ingredientNames := normalizeNames(v, string(models.KindIngredient), ingredients)
	if err := v.Err(); err != nil {
		return err
	}

	if err := r.rebind(ctx, r.tags, models.KindTag, ownerID, recipeID, tagNames, tags != nil && replace); err != nil {
		return err
	}
	return r.rebind(ctx, r.ingredients, models.KindIngredient, ownerID, recipeID, ingredientNames, ingredients != nil && replace)
}

func (r *Reconciler) rebind(
	ctx context.Context,
	store AssociationStore,
	kind models.NamedKind,
	ownerID, recipeID int64,
	names []string,
	clear bool,
) error {
	if clear {
		if err := store.Clear(ctx, recipeID); err != nil {
			logger.Log.Errorw("failed to clear associations", "kind", kind, "recipeID", recipeID, "error", err)
			return err
		}
	}

	for _, name := range names {
		entity, err := store.GetOrCreate(ctx, ownerID, name)
		if err != nil {
			logger.Log.Errorw("failed to resolve named entity", "kind", kind, "ownerID", ownerID, "name", name, "error", err)
			return err
		}
		if err := store.Attach(ctx, recipeID, entity.ID); err != nil {
			logger.Log.Errorw("failed to attach named entity", "kind", kind, "recipeID", recipeID, "entityID", entity.ID, "error", err)
			return err
		}
	}
	return nil
}

// normalizeNames trims every submitted name and records a field error for
// blank or oversized ones.
func normalizeNames(v *ValidationError, field string, in *[]models.NamedInput) []string {
	if in == nil {
		return nil
	}
	names := make([]string, 0, len(*in))
	for i, item := range *in {
		names = append(names, checkText(v, fmt.Sprintf("%s.%d.name", field, i), item.Name, false))
	}
	return names
}
