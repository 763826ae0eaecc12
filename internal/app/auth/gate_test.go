package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirkay/schoolregistry/internal/app/models"
)

type fakeRoles map[int64][]models.RoleName

func (f fakeRoles) GetAccountRoles(_ context.Context, accountID int64) ([]models.RoleName, error) {
	return f[accountID], nil
}

// fakeScope answers scope checks from explicit relation sets.
type fakeScope struct {
	// teacherSubjects[account] lists owned subject ids; records carry their
	// subject in Target.SubjectID during tests.
	teacherSubjects map[int64][]int64
	parentStudents  map[int64][]int64
	ownStudent      map[int64]int64 // account -> student profile id
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (f *fakeScope) InTeacherScope(_ context.Context, accountID int64, _ models.EntityType, target Target) (bool, error) {
	return containsID(f.teacherSubjects[accountID], target.SubjectID), nil
}

func (f *fakeScope) InParentScope(_ context.Context, accountID int64, _ models.EntityType, target Target) (bool, error) {
	return containsID(f.parentStudents[accountID], target.StudentID), nil
}

func (f *fakeScope) InStudentScope(_ context.Context, accountID int64, _ models.EntityType, target Target) (bool, error) {
	return f.ownStudent[accountID] == target.StudentID, nil
}

func newTestGate() *Gate {
	roles := fakeRoles{
		1: {models.RoleAdmin},
		2: {models.RoleTeacher},
		3: {models.RoleParent},
		4: {models.RoleStudent},
		5: {models.RoleAccountant},
		6: {models.RoleTeacher, models.RoleParent}, // staff member with a child enrolled
		7: nil,
	}
	scope := &fakeScope{
		teacherSubjects: map[int64][]int64{2: {100}, 6: {100}},
		parentStudents:  map[int64][]int64{3: {10}, 6: {11}},
		ownStudent:      map[int64]int64{4: 10},
	}
	return NewGate(roles, scope)
}

func TestAdminAllowedEverything(t *testing.T) {
	gate := newTestGate()
	ctx := context.Background()

	for _, res := range []models.EntityType{models.EntityStudent, models.EntityPayment, models.EntityTransport} {
		for _, action := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete} {
			d, err := gate.Authorize(ctx, 1, res, action, Target{ID: 42})
			require.NoError(t, err)
			assert.Equal(t, Allow, d, "admin should be allowed %s on %s", action, res)
		}
	}
}

func TestTeacherScopedToOwnSubjects(t *testing.T) {
	gate := newTestGate()
	ctx := context.Background()

	// Grade in subject 100, which account 2 teaches.
	d, err := gate.Authorize(ctx, 2, models.EntityGrade, ActionUpdate, Target{ID: 1, SubjectID: 100})
	require.NoError(t, err)
	assert.Equal(t, Allow, d)

	// Grade in subject 200, taught by someone else.
	d, err = gate.Authorize(ctx, 2, models.EntityGrade, ActionUpdate, Target{ID: 2, SubjectID: 200})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)

	// Teachers never delete grades.
	d, err = gate.Authorize(ctx, 2, models.EntityGrade, ActionDelete, Target{ID: 1, SubjectID: 100})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)
}

func TestParentReadsLinkedStudentRecordsOnly(t *testing.T) {
	gate := newTestGate()
	ctx := context.Background()

	d, err := gate.Authorize(ctx, 3, models.EntityPayment, ActionRead, Target{ID: 9, StudentID: 10})
	require.NoError(t, err)
	assert.Equal(t, Allow, d)

	d, err = gate.Authorize(ctx, 3, models.EntityPayment, ActionRead, Target{ID: 9, StudentID: 11})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)

	// Read-only: no updates for parents.
	d, err = gate.Authorize(ctx, 3, models.EntityPayment, ActionUpdate, Target{ID: 9, StudentID: 10})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)
}

func TestStudentReadsOwnRecordsOnly(t *testing.T) {
	gate := newTestGate()
	ctx := context.Background()

	d, err := gate.Authorize(ctx, 4, models.EntityGrade, ActionRead, Target{ID: 3, StudentID: 10})
	require.NoError(t, err)
	assert.Equal(t, Allow, d)

	d, err = gate.Authorize(ctx, 4, models.EntityGrade, ActionRead, Target{ID: 3, StudentID: 11})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)
}

func TestAccountantGrantsAreTableWide(t *testing.T) {
	gate := newTestGate()
	ctx := context.Background()

	d, err := gate.Authorize(ctx, 5, models.EntityPayment, ActionCreate, Target{StudentID: 10})
	require.NoError(t, err)
	assert.Equal(t, Allow, d)

	d, err = gate.Authorize(ctx, 5, models.EntityPayment, ActionDelete, Target{ID: 9})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)

	d, err = gate.Authorize(ctx, 5, models.EntityGrade, ActionRead, Target{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)
}

func TestMultipleRolesAreORed(t *testing.T) {
	gate := newTestGate()
	ctx := context.Background()

	// Account 6 teaches subject 100 and is parent of student 11. Either
	// relation alone must be enough for the matching grant.
	d, err := gate.Authorize(ctx, 6, models.EntityGrade, ActionUpdate, Target{ID: 1, SubjectID: 100})
	require.NoError(t, err)
	assert.Equal(t, Allow, d)

	d, err = gate.Authorize(ctx, 6, models.EntityPayment, ActionRead, Target{ID: 9, StudentID: 11})
	require.NoError(t, err)
	assert.Equal(t, Allow, d)

	// Neither role covers payments of unrelated students.
	d, err = gate.Authorize(ctx, 6, models.EntityPayment, ActionRead, Target{ID: 9, StudentID: 10})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)
}

func TestFailClosed(t *testing.T) {
	gate := newTestGate()
	ctx := context.Background()

	// No roles at all.
	d, err := gate.Authorize(ctx, 7, models.EntityStudent, ActionRead, Target{ID: 10})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)

	// Row-scoped grant without a target row: denied, not widened.
	d, err = gate.Authorize(ctx, 2, models.EntityGrade, ActionRead, Target{})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)
}
