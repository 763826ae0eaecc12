package integrity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

// fakeStore holds rows as column->value maps keyed by table name.
type fakeStore struct {
	tables map[string][]map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{tables: make(map[string][]map[string]int64)}
}

func (s *fakeStore) insert(table string, row map[string]int64) {
	s.tables[table] = append(s.tables[table], row)
}

func (s *fakeStore) count(table string) int {
	return len(s.tables[table])
}

func (s *fakeStore) DependentIDs(_ context.Context, table, keyCol, fkCol string, parentIDs []int64) ([]int64, error) {
	var out []int64
	for _, row := range s.tables[table] {
		for _, pid := range parentIDs {
			if row[fkCol] == pid {
				out = append(out, row[keyCol])
			}
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteWhere(_ context.Context, table, col string, ids []int64) (int64, error) {
	var kept []map[string]int64
	var removed int64
	for _, row := range s.tables[table] {
		match := false
		for _, id := range ids {
			if row[col] == id {
				match = true
				break
			}
		}
		if match {
			removed++
		} else {
			kept = append(kept, row)
		}
	}
	s.tables[table] = kept
	return removed, nil
}

func seedStudent(s *fakeStore, studentID, userID, classID int64) {
	s.insert("users", map[string]int64{"id": userID})
	s.insert("students", map[string]int64{"id": studentID, "user_id": userID, "class_id": classID})
}

func TestPlanDeleteRestrictedByDirectDependent(t *testing.T) {
	store := newFakeStore()
	store.insert("classes", map[string]int64{"id": 1})
	seedStudent(store, 10, 100, 1)

	_, err := PlanDelete(context.Background(), store, models.EntityClassGroup, 1)

	var restricted *apperrors.RestrictedError
	require.True(t, errors.As(err, &restricted))
	assert.Equal(t, "student", restricted.BlockingEntity)
	assert.Equal(t, int64(10), restricted.BlockingID)

	// Nothing was removed.
	assert.Equal(t, 1, store.count("classes"))
	assert.Equal(t, 1, store.count("students"))
}

func TestPlanDeleteRestrictedDeepInClosure(t *testing.T) {
	// The teacher account would cascade into nothing, but it still owns a
	// subject, so the whole delete is refused.
	store := newFakeStore()
	store.insert("users", map[string]int64{"id": 5})
	store.insert("subjects", map[string]int64{"id": 7, "teacher_id": 5, "class_id": 1})

	_, err := PlanDelete(context.Background(), store, models.EntityAccount, 5)

	var restricted *apperrors.RestrictedError
	require.True(t, errors.As(err, &restricted))
	assert.Equal(t, "subject", restricted.BlockingEntity)
	assert.Equal(t, int64(7), restricted.BlockingID)
}

func TestDeleteStudentCascadesClosure(t *testing.T) {
	store := newFakeStore()
	store.insert("classes", map[string]int64{"id": 1})
	seedStudent(store, 10, 100, 1)
	store.insert("absences", map[string]int64{"id": 201, "student_id": 10, "subject_id": 3})
	store.insert("grades", map[string]int64{"id": 301, "student_id": 10, "subject_id": 3})
	store.insert("payments", map[string]int64{"id": 401, "student_id": 10})
	store.insert("parent_student", map[string]int64{"parent_id": 50, "student_id": 10})
	store.insert("student_transport", map[string]int64{"student_id": 10, "transport_id": 60})

	ctx := context.Background()
	steps, err := PlanDelete(ctx, store, models.EntityStudent, 10)
	require.NoError(t, err)
	require.NoError(t, Execute(ctx, store, models.EntityStudent, 10, steps))

	assert.Equal(t, 0, store.count("students"))
	assert.Equal(t, 0, store.count("absences"))
	assert.Equal(t, 0, store.count("grades"))
	assert.Equal(t, 0, store.count("payments"))
	assert.Equal(t, 0, store.count("parent_student"))
	assert.Equal(t, 0, store.count("student_transport"))

	// Untouched ancestors survive.
	assert.Equal(t, 1, store.count("classes"))
	assert.Equal(t, 1, store.count("users"))
}

func TestDeleteAccountCascadesThroughProfile(t *testing.T) {
	store := newFakeStore()
	store.insert("classes", map[string]int64{"id": 1})
	seedStudent(store, 10, 100, 1)
	store.insert("grades", map[string]int64{"id": 301, "student_id": 10, "subject_id": 3})
	store.insert("user_roles", map[string]int64{"user_id": 100, "role_id": 4})

	ctx := context.Background()
	steps, err := PlanDelete(ctx, store, models.EntityAccount, 100)
	require.NoError(t, err)

	// Dependents-first ordering: the grade rows (depth 2) go before the
	// student row (depth 1), the account row goes last.
	require.Len(t, steps, 4)
	assert.Equal(t, "grades", steps[0].Table)
	assert.Equal(t, "users", steps[len(steps)-1].Table)

	require.NoError(t, Execute(ctx, store, models.EntityAccount, 100, steps))
	assert.Equal(t, 0, store.count("users"))
	assert.Equal(t, 0, store.count("user_roles"))
	assert.Equal(t, 0, store.count("students"))
	assert.Equal(t, 0, store.count("grades"))
}

func TestDeleteMissingRootReturnsNotFound(t *testing.T) {
	store := newFakeStore()

	ctx := context.Background()
	steps, err := PlanDelete(ctx, store, models.EntityTransport, 99)
	require.NoError(t, err)

	err = Execute(ctx, store, models.EntityTransport, 99, steps)

	var notFound *apperrors.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, int64(99), notFound.ID)
}

func TestDeleteTransportRestrictedByEnrollment(t *testing.T) {
	store := newFakeStore()
	store.insert("transports", map[string]int64{"id": 60})
	store.insert("student_transport", map[string]int64{"student_id": 10, "transport_id": 60})

	_, err := PlanDelete(context.Background(), store, models.EntityTransport, 60)

	var restricted *apperrors.RestrictedError
	require.True(t, errors.As(err, &restricted))
	assert.Equal(t, "transport enrollment", restricted.BlockingEntity)
	assert.Equal(t, int64(10), restricted.BlockingID)
	assert.Equal(t, 1, store.count("transports"))
}
