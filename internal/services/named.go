package services

//go:generate mockgen -source=named.go -destination=named_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
)

// NamedCatalog is the owner-scoped store of one named entity kind.
type NamedCatalog interface {
	GetByID(ctx context.Context, ownerID, id int64) (*models.NamedDB, error)
	List(ctx context.Context, ownerID int64, filter models.NamedFilter) ([]models.NamedDB, error)
	Rename(ctx context.Context, ownerID, id int64, name string) (*models.NamedDB, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// NamedService lists, renames and deletes tags or ingredients.
type NamedService struct {
	kind    models.NamedKind
	catalog NamedCatalog
}

// NewNamedService creates a NamedService for kind.
func NewNamedService(kind models.NamedKind, catalog NamedCatalog) *NamedService {
	return &NamedService{kind: kind, catalog: catalog}
}

// List returns the owner's entities, newest name first.
func (svc *NamedService) List(ctx context.Context, ownerID int64, filter models.NamedFilter) ([]models.NamedDB, error) {
	entities, err := svc.catalog.List(ctx, ownerID, filter)
	if err != nil {
		logger.Log.Errorw("failed to list named entities", "kind", svc.kind, "ownerID", ownerID, "err", err)
		return nil, err
	}
	return entities, nil
}

// Update renames an owned entity. A nil name leaves it unchanged.
func (svc *NamedService) Update(ctx context.Context, ownerID, id int64, name *string) (*models.NamedDB, error) {
	if name == nil {
		return svc.get(ctx, ownerID, id)
	}

	v := &ValidationError{}
	trimmed := checkText(v, "name", *name, false)
	if err := v.Err(); err != nil {
		return nil, err
	}

	entity, err := svc.catalog.Rename(ctx, ownerID, id, trimmed)
	switch {
	case err == nil:
		return entity, nil
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return nil, NewValidationError("name", svc.singular()+" with this name already exists.")
	default:
		logger.Log.Errorw("failed to rename named entity", "kind", svc.kind, "id", id, "err", err)
		return nil, err
	}
}

// Delete removes an owned entity and detaches it from every recipe.
func (svc *NamedService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := svc.catalog.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		logger.Log.Errorw("failed to delete named entity", "kind", svc.kind, "id", id, "err", err)
		return err
	}
	return nil
}

func (svc *NamedService) get(ctx context.Context, ownerID, id int64) (*models.NamedDB, error) {
	entity, err := svc.catalog.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Log.Errorw("failed to get named entity", "kind", svc.kind, "id", id, "err", err)
		return nil, err
	}
	return entity, nil
}

func (svc *NamedService) singular() string {
	return strings.TrimSuffix(string(svc.kind), "s")
}
