package services

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/exercisetracker/internal/common"
	"github.com/dmitrijs2005/exercisetracker/internal/dbx"
	"github.com/dmitrijs2005/exercisetracker/internal/server/logquery"
	"github.com/dmitrijs2005/exercisetracker/internal/server/models"
	usersrepo "github.com/dmitrijs2005/exercisetracker/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo is an in-memory users.Repository with injectable failures.
type fakeUsersRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	order []string
	seq   int

	createErr error
	listErr   error
	findErr   error
	saveErr   error

	locked []string
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.seq++
	u.ID = "user-" + string(rune('0'+f.seq))
	f.users[u.ID] = clone(u)
	f.order = append(f.order, u.ID)
	return u, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.User, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, clone(f.users[id]))
	}
	return out, nil
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (f *fakeUsersRepo) FindByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	f.locked = append(f.locked, id)
	f.mu.Unlock()
	return f.FindByID(ctx, id)
}

func (f *fakeUsersRepo) Save(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.users[u.ID] = clone(u)
	return u, nil
}

func clone(u *models.User) *models.User {
	c := *u
	c.Log = append(models.Log{}, u.Log...)
	return &c
}

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository     { return m.u }

func newService(t *testing.T, db *sql.DB, repo *fakeUsersRepo) *UserService {
	t.Helper()
	s := NewUserService(db, &fakeRepoManager{u: repo})
	s.now = func() time.Time { return time.Date(2024, 2, 29, 13, 45, 0, 0, time.UTC) }
	return s
}

func ptr(f float64) *float64 { return &f }

// --- CreateUser ---

func TestCreateUser_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := newFakeUsersRepo()
	s := newService(t, db, repo)

	u, err := s.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.UserName)
	assert.NotEmpty(t, u.ID)
	assert.NotNil(t, u.Log)
	assert.Empty(t, u.Log)
}

func TestCreateUser_EmptyUsername(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := newService(t, db, newFakeUsersRepo())

	for _, name := range []string{"", "   "} {
		_, err := s.CreateUser(context.Background(), name)
		require.ErrorIs(t, err, common.ErrorValidation, "username %q", name)
	}
}

func TestCreateUser_StoreFailure(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := newFakeUsersRepo()
	repo.createErr = errors.New("db down")
	s := newService(t, db, repo)

	_, err := s.CreateUser(context.Background(), "alice")
	require.ErrorIs(t, err, common.ErrorInternal)
	assert.Contains(t, err.Error(), "db down")
}

// --- ListUsers ---

func TestListUsers_IncludesCreatedUserWithEmptyLog(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := newService(t, db, newFakeUsersRepo())

	created, err := s.CreateUser(context.Background(), "bob")
	require.NoError(t, err)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, created.ID, users[0].ID)
	assert.Empty(t, users[0].Log)
}

func TestListUsers_StoreFailure(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := newFakeUsersRepo()
	repo.listErr = errors.New("timeout")
	s := newService(t, db, repo)

	_, err := s.ListUsers(context.Background())
	require.ErrorIs(t, err, common.ErrorInternal)
}

// --- AddExercise ---

func TestAddExercise_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeUsersRepo()
	s := newService(t, db, repo)
	created, err := s.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	user, added, err := s.AddExercise(context.Background(), created.ID, NewExercise{
		Description: "run", Duration: ptr(30), Date: "2023-01-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "run", added.Description)
	assert.Equal(t, 30.0, added.Duration)
	assert.Equal(t, "Sun Jan 15 2023", logquery.RenderDate(added.Date))
	require.Len(t, user.Log, 1)
	assert.Equal(t, []string{created.ID}, repo.locked, "row must be locked")

	stored, _ := repo.FindByID(context.Background(), created.ID)
	assert.Len(t, stored.Log, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddExercise_DefaultsDateToNow(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeUsersRepo()
	s := newService(t, db, repo)
	created, _ := s.CreateUser(context.Background(), "alice")

	_, added, err := s.AddExercise(context.Background(), created.ID, NewExercise{Description: "walk", Duration: ptr(12.5)})
	require.NoError(t, err)
	assert.Equal(t, "Thu Feb 29 2024", logquery.RenderDate(added.Date))
	assert.Equal(t, s.now(), added.Date)
}

func TestAddExercise_AppendOrderPreserved(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := newFakeUsersRepo()
	s := newService(t, db, repo)
	created, _ := s.CreateUser(context.Background(), "alice")

	dates := []string{"2023-03-01", "2023-01-01", "2023-02-01"}
	for i, d := range dates {
		mock.ExpectBegin()
		mock.ExpectCommit()
		_, _, err := s.AddExercise(context.Background(), created.ID, NewExercise{
			Description: d, Duration: ptr(float64(i + 1)), Date: d,
		})
		require.NoError(t, err)
	}

	res, err := s.GetLog(context.Background(), created.ID, logquery.Query{})
	require.NoError(t, err)
	require.Equal(t, 3, res.Count)
	for i, d := range dates {
		assert.Equal(t, d, res.Log[i].Description)
	}
}

func TestAddExercise_UnknownUser(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := newService(t, db, newFakeUsersRepo())

	_, _, err := s.AddExercise(context.Background(), "missing", NewExercise{Description: "run", Duration: ptr(1)})
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddExercise_NotFoundWinsOverBadInput(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := newService(t, db, newFakeUsersRepo())

	_, _, err := s.AddExercise(context.Background(), "missing", NewExercise{})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAddExercise_NotFoundWinsOverNonNumericDuration(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := newService(t, db, newFakeUsersRepo())

	_, _, err := s.AddExercise(context.Background(), "missing", NewExercise{Description: "run", DurationRaw: "abc"})
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.NotErrorIs(t, err, common.ErrorValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddExercise_RawDuration(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	s := newService(t, db, newFakeUsersRepo())
	created, _ := s.CreateUser(context.Background(), "alice")

	_, added, err := s.AddExercise(context.Background(), created.ID, NewExercise{
		Description: "swim", DurationRaw: " 12.5 ", Date: "2023-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5, added.Duration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddExercise_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    NewExercise
		field string
	}{
		{name: "missing description", in: NewExercise{Duration: ptr(10)}, field: "description"},
		{name: "blank description", in: NewExercise{Description: "  ", Duration: ptr(10)}, field: "description"},
		{name: "missing duration", in: NewExercise{Description: "run"}, field: "duration"},
		{name: "blank raw duration", in: NewExercise{Description: "run", DurationRaw: "  "}, field: "duration"},
		{name: "non-numeric duration", in: NewExercise{Description: "run", DurationRaw: "thirty"}, field: "duration"},
		{name: "infinite duration", in: NewExercise{Description: "run", DurationRaw: "Inf"}, field: "duration"},
		{name: "bad date", in: NewExercise{Description: "run", Duration: ptr(10), Date: "someday"}, field: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newSQLMockDB(t)
			mock.ExpectBegin()
			mock.ExpectRollback()

			repo := newFakeUsersRepo()
			s := newService(t, db, repo)
			created, _ := s.CreateUser(context.Background(), "alice")

			_, _, err := s.AddExercise(context.Background(), created.ID, tt.in)
			require.ErrorIs(t, err, common.ErrorValidation)

			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)

			stored, _ := repo.FindByID(context.Background(), created.ID)
			assert.Empty(t, stored.Log, "nothing may be appended")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAddExercise_SaveFailureRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := newFakeUsersRepo()
	s := newService(t, db, repo)
	created, _ := s.CreateUser(context.Background(), "alice")
	repo.saveErr = errors.New("disk full")

	_, _, err := s.AddExercise(context.Background(), created.ID, NewExercise{Description: "run", Duration: ptr(5)})
	require.ErrorIs(t, err, common.ErrorInternal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddExercise_BeginFailure(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("no connections"))

	s := newService(t, db, newFakeUsersRepo())

	_, _, err := s.AddExercise(context.Background(), "any", NewExercise{Description: "run", Duration: ptr(5)})
	require.ErrorIs(t, err, common.ErrorInternal)
}

// --- GetLog ---

func TestGetLog_Filters(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := newFakeUsersRepo()
	s := newService(t, db, repo)
	created, _ := s.CreateUser(context.Background(), "alice")

	stored := repo.users[created.ID]
	for _, d := range []string{"2023-01-01", "2023-02-01", "2023-03-01"} {
		dt, _ := logquery.ParseDate(d)
		stored.Log.Append(models.Exercise{Description: d, Duration: 1, Date: dt})
	}

	res, err := s.GetLog(context.Background(), created.ID, logquery.ParseQuery(url.Values{
		"from": {"2023-01-15"}, "to": {"2023-02-15"},
	}))
	require.NoError(t, err)
	assert.Equal(t, created.ID, res.ID)
	assert.Equal(t, "alice", res.UserName)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "Wed Feb 01 2023", res.Log[0].Date)
}

func TestGetLog_UnknownUser(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := newService(t, db, newFakeUsersRepo())

	_, err := s.GetLog(context.Background(), "missing", logquery.Query{})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetLog_StoreFailure(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := newFakeUsersRepo()
	repo.findErr = errors.New("boom")
	s := newService(t, db, repo)

	_, err := s.GetLog(context.Background(), "x", logquery.Query{})
	require.ErrorIs(t, err, common.ErrorInternal)
}
