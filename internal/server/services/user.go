// Package services contains server-side business logic. UserService
// implements the four exercise tracker operations on top of the users
// repository and the log query engine.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/exercisetracker/internal/common"
	"github.com/dmitrijs2005/exercisetracker/internal/dbx"
	"github.com/dmitrijs2005/exercisetracker/internal/server/logquery"
	"github.com/dmitrijs2005/exercisetracker/internal/server/models"
	"github.com/dmitrijs2005/exercisetracker/internal/server/repositories/repomanager"
)

// NewExercise is the caller-supplied input for AddExercise. Duration takes
// precedence over DurationRaw, the textual form read from a request; when
// both are empty the duration is missing. An empty Date means "now".
type NewExercise struct {
	Description string
	Duration    *float64
	DurationRaw string
	Date        string
}

// UserService creates users, appends exercises and answers log queries.
//
// Errors returned match common.ErrorValidation, common.ErrorNotFound or
// common.ErrorInternal via errors.Is.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

// NewUserService constructs a UserService over the given pool.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m, now: time.Now}
}

// CreateUser persists a new user with an empty log.
func (s *UserService) CreateUser(ctx context.Context, username string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, common.NewValidationError("username", "username is required")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{UserName: username, Log: models.Log{}})
	if err != nil {
		return nil, internal("create user", err)
	}
	return user, nil
}

// ListUsers returns every stored user with the full, unfiltered log.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	users, err := repo.List(ctx)
	if err != nil {
		return nil, internal("list users", err)
	}
	return users, nil
}

// AddExercise appends one exercise to the user's log and returns the updated
// user together with the stored entry. The user row is locked for the
// duration of the read-modify-write, so concurrent appends to the same user
// are serialized rather than lost.
//
// An unknown user is reported before any input problem.
func (s *UserService) AddExercise(ctx context.Context, userID string, in NewExercise) (*models.User, models.Exercise, error) {
	exercise, inputErr := s.buildExercise(in)

	var (
		user  *models.User
		added models.Exercise
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if inputErr != nil {
			return inputErr
		}

		added = u.Log.Append(exercise)
		user, err = repo.Save(ctx, u)
		return err
	})

	switch {
	case err == nil:
		return user, added, nil
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorValidation):
		return nil, models.Exercise{}, err
	default:
		return nil, models.Exercise{}, internal("add exercise", err)
	}
}

// GetLog loads the user and runs q over its log.
func (s *UserService) GetLog(ctx context.Context, userID string, q logquery.Query) (*logquery.Result, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, internal("get log", err)
	}
	return logquery.Run(user, q), nil
}

func (s *UserService) buildExercise(in NewExercise) (models.Exercise, error) {
	if strings.TrimSpace(in.Description) == "" {
		return models.Exercise{}, common.NewValidationError("description", "description is required")
	}
	duration, err := exerciseDuration(in)
	if err != nil {
		return models.Exercise{}, err
	}

	date := s.now().UTC()
	if strings.TrimSpace(in.Date) != "" {
		parsed, err := logquery.ParseDate(in.Date)
		if err != nil {
			return models.Exercise{}, common.NewValidationError("date", "date %q is not a valid date", in.Date)
		}
		date = parsed
	}

	return models.Exercise{Description: in.Description, Duration: duration, Date: date}, nil
}

func exerciseDuration(in NewExercise) (float64, error) {
	var d float64
	switch raw := strings.TrimSpace(in.DurationRaw); {
	case in.Duration != nil:
		d = *in.Duration
	case raw != "":
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, common.NewValidationError("duration", "duration %q is not a number", raw)
		}
		d = parsed
	default:
		return 0, common.NewValidationError("duration", "duration is required")
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, common.NewValidationError("duration", "duration must be a number")
	}
	return d, nil
}

func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
}
