//go:build integration
// +build integration

package repositories_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/emirkay/schoolregistry/internal/app/auth"
	"github.com/emirkay/schoolregistry/internal/app/migrations"
	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/app/repositories"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

// setupTestDB starts a PostgreSQL container, applies the schema and returns
// a connected pool plus a cleanup function.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("schoolregistry_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err, "failed to connect")

	migrator := migrations.NewMigrator(pool)
	require.NoError(t, migrator.MigrateFromDirectory(ctx, filepath.Join("..", "..", "..", "migrations")))

	cleanup := func() {
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
	return pool, cleanup
}

func insertReturningID(t *testing.T, pool *pgxpool.Pool, sql string, args ...any) int64 {
	t.Helper()
	var id int64
	require.NoError(t, pool.QueryRow(context.Background(), sql, args...).Scan(&id))
	return id
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func newAccount(t *testing.T, pool *pgxpool.Pool, email string) int64 {
	t.Helper()
	return insertReturningID(t, pool,
		`INSERT INTO users (name, email, password) VALUES ('U', $1, 'x') RETURNING id`, email)
}

func TestLinkParentStudentIsIdempotent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := repositories.NewAssociationRepository(pool)

	classID := insertReturningID(t, pool,
		`INSERT INTO classes (name, level) VALUES ('5A', '5') RETURNING id`)
	studentID := insertReturningID(t, pool,
		`INSERT INTO students (user_id, first_name, last_name, date_of_birth, class_id)
		 VALUES ($1, 'Ada', 'L', '2014-03-01', $2) RETURNING id`,
		newAccount(t, pool, "s-link@example.com"), classID)
	parentID := insertReturningID(t, pool,
		`INSERT INTO parents (user_id, first_name, last_name, phone) VALUES ($1, 'Pia', 'K', '555') RETURNING id`,
		newAccount(t, pool, "p-link@example.com"))

	require.NoError(t, repo.LinkParentStudent(ctx, parentID, studentID))
	require.NoError(t, repo.LinkParentStudent(ctx, parentID, studentID))
	assert.Equal(t, 1, countRows(t, pool, "parent_student"))

	parents, err := repo.ParentsOfStudent(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, parentID, parents[0].ID)

	require.NoError(t, repo.UnlinkParentStudent(ctx, parentID, studentID))
	assert.Zero(t, countRows(t, pool, "parent_student"))

	// The link is already gone; unlinking again must report that and change
	// nothing.
	err = repo.UnlinkParentStudent(ctx, parentID, studentID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Zero(t, countRows(t, pool, "parent_student"))
	assert.Equal(t, 1, countRows(t, pool, "parents"))
	assert.Equal(t, 1, countRows(t, pool, "students"))
}

func TestStudentCreateGetRoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := repositories.NewStudentRepository(pool)

	classID := insertReturningID(t, pool,
		`INSERT INTO classes (name, level) VALUES ('6B', '6') RETURNING id`)
	accountID := newAccount(t, pool, "s-roundtrip@example.com")

	created := &models.Student{
		UserID:      accountID,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: time.Date(2013, 11, 5, 0, 0, 0, 0, time.UTC),
		ClassID:     classID,
	}
	require.NoError(t, repo.Create(ctx, created))
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.UserID, got.UserID)
	assert.Equal(t, created.FirstName, got.FirstName)
	assert.Equal(t, created.LastName, got.LastName)
	assert.Equal(t, created.ClassID, got.ClassID)
	assert.True(t, created.DateOfBirth.Equal(got.DateOfBirth))
}

func TestProfileCreateMapsUniqueAccountViolation(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	classID := insertReturningID(t, pool,
		`INSERT INTO classes (name, level) VALUES ('7C', '7') RETURNING id`)

	t.Run("student", func(t *testing.T) {
		repo := repositories.NewStudentRepository(pool)
		accountID := newAccount(t, pool, "dup-student@example.com")

		first := &models.Student{UserID: accountID, FirstName: "A", LastName: "B",
			DateOfBirth: time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC), ClassID: classID}
		require.NoError(t, repo.Create(ctx, first))

		second := &models.Student{UserID: accountID, FirstName: "C", LastName: "D",
			DateOfBirth: time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC), ClassID: classID}
		err := repo.Create(ctx, second)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})

	t.Run("parent", func(t *testing.T) {
		repo := repositories.NewParentRepository(pool)
		accountID := newAccount(t, pool, "dup-parent@example.com")

		require.NoError(t, repo.Create(ctx, &models.ParentGuardian{
			UserID: accountID, FirstName: "A", LastName: "B", Phone: "555"}))
		err := repo.Create(ctx, &models.ParentGuardian{
			UserID: accountID, FirstName: "C", LastName: "D", Phone: "556"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})

	t.Run("accountant", func(t *testing.T) {
		repo := repositories.NewAccountantRepository(pool)
		accountID := newAccount(t, pool, "dup-accountant@example.com")

		require.NoError(t, repo.Create(ctx, &models.Accountant{
			UserID: accountID, FirstName: "A", LastName: "B", Phone: "555"}))
		err := repo.Create(ctx, &models.Accountant{
			UserID: accountID, FirstName: "C", LastName: "D", Phone: "556"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})
}

func TestTeacherScopeChecksBothRowAndDestinationSubject(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	scope := repositories.NewScopeRepository(pool)

	classID := insertReturningID(t, pool,
		`INSERT INTO classes (name, level) VALUES ('8D', '8') RETURNING id`)
	studentID := insertReturningID(t, pool,
		`INSERT INTO students (user_id, first_name, last_name, date_of_birth, class_id)
		 VALUES ($1, 'Ada', 'L', '2013-03-01', $2) RETURNING id`,
		newAccount(t, pool, "s-scope@example.com"), classID)

	teacherID := newAccount(t, pool, "t-scope@example.com")
	otherTeacherID := newAccount(t, pool, "t-other@example.com")
	taughtSubjectID := insertReturningID(t, pool,
		`INSERT INTO subjects (name, class_id, teacher_id) VALUES ('Math', $1, $2) RETURNING id`,
		classID, teacherID)
	foreignSubjectID := insertReturningID(t, pool,
		`INSERT INTO subjects (name, class_id, teacher_id) VALUES ('Art', $1, $2) RETURNING id`,
		classID, otherTeacherID)
	gradeID := insertReturningID(t, pool,
		`INSERT INTO grades (student_id, subject_id, grade, exam_date) VALUES ($1, $2, 15.00, '2026-04-01') RETURNING id`,
		studentID, taughtSubjectID)

	// Own row, kept on a taught subject.
	ok, err := scope.InTeacherScope(ctx, teacherID, models.EntityGrade,
		auth.Target{ID: gradeID, SubjectID: taughtSubjectID})
	require.NoError(t, err)
	assert.True(t, ok)

	// Own row, but the update would re-point it to a subject the actor
	// does not teach.
	ok, err = scope.InTeacherScope(ctx, teacherID, models.EntityGrade,
		auth.Target{ID: gradeID, SubjectID: foreignSubjectID})
	require.NoError(t, err)
	assert.False(t, ok)

	// Someone else's row stays out of scope regardless of the claimed
	// destination subject.
	ok, err = scope.InTeacherScope(ctx, otherTeacherID, models.EntityGrade,
		auth.Target{ID: gradeID, SubjectID: foreignSubjectID})
	require.NoError(t, err)
	assert.False(t, ok)
}
