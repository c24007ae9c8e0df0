package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/exercisetracker/internal/common"
	"github.com/dmitrijs2005/exercisetracker/internal/dbx"
	"github.com/dmitrijs2005/exercisetracker/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository keeps one row per user with the log in a JSONB column.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Log == nil {
		user.Log = models.Log{}
	}

	query :=
		`INSERT INTO users (username, log)
		 VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, user.UserName, user.Log).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, username, log, created_at FROM users
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.UserName, &user.Log, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findByID(ctx, id, false)
}

func (r *PostgresRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	return r.findByID(ctx, id, true)
}

func (r *PostgresRepository) findByID(ctx context.Context, id string, lock bool) (*models.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT id, username, log, created_at FROM users
		 WHERE id = $1
		 `
	if lock {
		query += "FOR UPDATE\n"
	}

	user := &models.User{}
	err = r.db.QueryRowContext(ctx, query, parsed.String()).Scan(&user.ID, &user.UserName, &user.Log, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// Save writes user back in place, inserting it when the id is not stored yet.
// A user without an id is created.
func (r *PostgresRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		return r.Create(ctx, user)
	}
	if _, err := uuid.Parse(user.ID); err != nil {
		return nil, common.ErrorNotFound
	}
	if user.Log == nil {
		user.Log = models.Log{}
	}

	query :=
		`INSERT INTO users (id, username, log)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id)
		 DO UPDATE SET username = EXCLUDED.username, log = EXCLUDED.log
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, user.ID, user.UserName, user.Log).Scan(&user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
