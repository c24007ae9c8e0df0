// Package users provides the persistence adapter for User documents.
package users

import (
	"context"

	"github.com/dmitrijs2005/exercisetracker/internal/server/models"
)

// Repository stores users together with their embedded exercise log.
// Lookups of unknown or malformed ids return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// FindByIDForUpdate is FindByID that also locks the document until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
}
