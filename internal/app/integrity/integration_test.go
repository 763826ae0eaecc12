//go:build integration
// +build integration

package integrity_test

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

	"github.com/emirkay/schoolregistry/internal/app/integrity"
	"github.com/emirkay/schoolregistry/internal/app/migrations"
	"github.com/emirkay/schoolregistry/internal/app/models"
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

// fixture inserts one row and returns its id.
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

// seedStudent creates an account, a class and a student profile and returns
// (accountID, classID, studentID). Suffix keeps emails unique across tests.
func seedStudent(t *testing.T, pool *pgxpool.Pool, suffix string) (int64, int64, int64) {
	t.Helper()
	accountID := insertReturningID(t, pool,
		`INSERT INTO users (name, email, password) VALUES ($1, $2, 'x') RETURNING id`,
		"Student "+suffix, "student-"+suffix+"@example.com")
	classID := insertReturningID(t, pool,
		`INSERT INTO classes (name, level) VALUES ($1, '5') RETURNING id`, "Class "+suffix)
	studentID := insertReturningID(t, pool,
		`INSERT INTO students (user_id, first_name, last_name, date_of_birth, class_id)
		 VALUES ($1, 'Ada', $2, '2014-03-01', $3) RETURNING id`,
		accountID, suffix, classID)
	return accountID, classID, studentID
}

func TestEngineDeleteAccountCascadesStudentClosure(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	engine := integrity.NewEngine(pool)

	accountID, classID, studentID := seedStudent(t, pool, "cascade")

	teacherID := insertReturningID(t, pool,
		`INSERT INTO users (name, email, password) VALUES ('T', 't-cascade@example.com', 'x') RETURNING id`)
	subjectID := insertReturningID(t, pool,
		`INSERT INTO subjects (name, class_id, teacher_id) VALUES ('Math', $1, $2) RETURNING id`,
		classID, teacherID)

	insertReturningID(t, pool,
		`INSERT INTO absences (student_id, subject_id, date) VALUES ($1, $2, '2026-01-12') RETURNING id`,
		studentID, subjectID)
	insertReturningID(t, pool,
		`INSERT INTO grades (student_id, subject_id, grade, exam_date) VALUES ($1, $2, 17.50, '2026-01-20') RETURNING id`,
		studentID, subjectID)
	insertReturningID(t, pool,
		`INSERT INTO payments (student_id, amount, payment_date, payment_type, status, reference)
		 VALUES ($1, 120.00, '2026-02-01', 'tuition', 'pending', gen_random_uuid()) RETURNING id`,
		studentID)

	parentAccountID := insertReturningID(t, pool,
		`INSERT INTO users (name, email, password) VALUES ('P', 'p-cascade@example.com', 'x') RETURNING id`)
	parentID := insertReturningID(t, pool,
		`INSERT INTO parents (user_id, first_name, last_name, phone) VALUES ($1, 'Pia', 'K', '555') RETURNING id`,
		parentAccountID)
	_, err := pool.Exec(ctx,
		`INSERT INTO parent_student (parent_id, student_id) VALUES ($1, $2)`, parentID, studentID)
	require.NoError(t, err)

	transportID := insertReturningID(t, pool,
		`INSERT INTO transports (vehicle_number, driver_name, route_description)
		 VALUES ('34 AB 123', 'D', 'north loop') RETURNING id`)
	_, err = pool.Exec(ctx,
		`INSERT INTO student_transport (student_id, transport_id, start_date) VALUES ($1, $2, '2026-01-05')`,
		studentID, transportID)
	require.NoError(t, err)

	// Deleting the account takes the student profile and every record that
	// hangs off it, in one transaction.
	require.NoError(t, engine.Delete(ctx, models.EntityAccount, accountID))

	assert.Zero(t, countRows(t, pool, "students"))
	assert.Zero(t, countRows(t, pool, "absences"))
	assert.Zero(t, countRows(t, pool, "grades"))
	assert.Zero(t, countRows(t, pool, "payments"))
	assert.Zero(t, countRows(t, pool, "parent_student"))
	assert.Zero(t, countRows(t, pool, "student_transport"))

	// Bystanders survive.
	assert.Equal(t, 1, countRows(t, pool, "parents"))
	assert.Equal(t, 1, countRows(t, pool, "subjects"))
	assert.Equal(t, 1, countRows(t, pool, "transports"))
}

func TestEngineDeleteRestrictsAndLeavesRowsUntouched(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	engine := integrity.NewEngine(pool)

	_, classID, studentID := seedStudent(t, pool, "restrict")

	t.Run("class blocked by enrolled student", func(t *testing.T) {
		err := engine.Delete(ctx, models.EntityClassGroup, classID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrRestricted))

		var restricted *apperrors.RestrictedError
		require.True(t, errors.As(err, &restricted))
		assert.Equal(t, "student", restricted.BlockingEntity)
		assert.Equal(t, studentID, restricted.BlockingID)

		assert.Equal(t, 1, countRows(t, pool, "classes"))
		assert.Equal(t, 1, countRows(t, pool, "students"))
	})

	t.Run("transport blocked by enrollment", func(t *testing.T) {
		transportID := insertReturningID(t, pool,
			`INSERT INTO transports (vehicle_number, driver_name, route_description)
			 VALUES ('06 XY 9', 'D', 'east loop') RETURNING id`)
		_, err := pool.Exec(ctx,
			`INSERT INTO student_transport (student_id, transport_id, start_date) VALUES ($1, $2, '2026-01-05')`,
			studentID, transportID)
		require.NoError(t, err)

		err = engine.Delete(ctx, models.EntityTransport, transportID)
		require.Error(t, err)

		var restricted *apperrors.RestrictedError
		require.True(t, errors.As(err, &restricted))
		assert.Equal(t, "transport enrollment", restricted.BlockingEntity)
		assert.Equal(t, studentID, restricted.BlockingID)
		assert.Equal(t, 1, countRows(t, pool, "transports"))
	})

	t.Run("subject blocked by grade", func(t *testing.T) {
		teacherID := insertReturningID(t, pool,
			`INSERT INTO users (name, email, password) VALUES ('T', 't-restrict@example.com', 'x') RETURNING id`)
		subjectID := insertReturningID(t, pool,
			`INSERT INTO subjects (name, class_id, teacher_id) VALUES ('Physics', $1, $2) RETURNING id`,
			classID, teacherID)
		gradeID := insertReturningID(t, pool,
			`INSERT INTO grades (student_id, subject_id, grade, exam_date) VALUES ($1, $2, 9.00, '2026-03-01') RETURNING id`,
			studentID, subjectID)

		err := engine.Delete(ctx, models.EntitySubject, subjectID)
		require.Error(t, err)

		var restricted *apperrors.RestrictedError
		require.True(t, errors.As(err, &restricted))
		assert.Equal(t, "grade", restricted.BlockingEntity)
		assert.Equal(t, gradeID, restricted.BlockingID)
	})
}

func TestEngineDeleteMissingRootIsNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	engine := integrity.NewEngine(pool)

	err := engine.Delete(context.Background(), models.EntityStudent, 424242)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestSchemaConstraints(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, _, studentID := seedStudent(t, pool, "schema")

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := pool.Exec(ctx,
			`INSERT INTO users (name, email, password) VALUES ('Dup', 'student-schema@example.com', 'x')`)
		require.Error(t, err)
	})

	t.Run("enrollment interval checked", func(t *testing.T) {
		transportID := insertReturningID(t, pool,
			`INSERT INTO transports (vehicle_number, driver_name, route_description)
			 VALUES ('01 QQ 1', 'D', 'west loop') RETURNING id`)
		_, err := pool.Exec(ctx,
			`INSERT INTO student_transport (student_id, transport_id, start_date, end_date)
			 VALUES ($1, $2, '2026-05-01', '2026-04-01')`,
			studentID, transportID)
		require.Error(t, err, "end before start must violate the interval check")
	})
}
