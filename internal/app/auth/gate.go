package auth

import (
	"context"
	"fmt"

	"github.com/emirkay/schoolregistry/internal/app/models"
)

// Decision is the gate's verdict. Deny is a normal outcome, not an error.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Target identifies the row an action touches. For creates there is no row
// yet, so the caller passes the references the new row would carry instead.
// A zero Target means the action is not aimed at any particular row.
type Target struct {
	ID        int64
	StudentID int64
	SubjectID int64
	ClassID   int64
}

// zero reports whether no row or reference hint was provided.
func (t Target) zero() bool {
	return t.ID == 0 && t.StudentID == 0 && t.SubjectID == 0 && t.ClassID == 0
}

// RoleSource yields the role set of an account. The gate keeps no state of
// its own; every decision re-reads the assignments.
type RoleSource interface {
	GetAccountRoles(ctx context.Context, accountID int64) ([]models.RoleName, error)
}

// ScopeResolver answers whether a target row is related to the actor in the
// way a row-scoped role requires: ownership via subjects.teacher_id, a
// parent_student link, or the student's own account reference.
type ScopeResolver interface {
	InTeacherScope(ctx context.Context, accountID int64, resource models.EntityType, target Target) (bool, error)
	InParentScope(ctx context.Context, accountID int64, resource models.EntityType, target Target) (bool, error)
	InStudentScope(ctx context.Context, accountID int64, resource models.EntityType, target Target) (bool, error)
}

// Gate evaluates authorization requests against the policy table. An actor is
// allowed iff at least one held role grants (resource, action) and, for
// row-scoped roles, the scoping predicate holds for the target. It fails
// closed: unknown roles, missing grants and unresolvable scopes all deny.
type Gate struct {
	roles RoleSource
	scope ScopeResolver
}

// NewGate creates an access control gate.
func NewGate(roles RoleSource, scope ScopeResolver) *Gate {
	return &Gate{roles: roles, scope: scope}
}

// Authorize decides whether the actor may perform action on the target of
// the given resource type. The decision ORs across every role the actor
// holds. The returned error is infrastructural only (role or scope lookup
// failed); a refusal is expressed as Deny with a nil error.
func (g *Gate) Authorize(ctx context.Context, actorID int64, resource models.EntityType, action Action, target Target) (Decision, error) {
	roles, err := g.roles.GetAccountRoles(ctx, actorID)
	if err != nil {
		return Deny, fmt.Errorf("loading roles for account %d: %w", actorID, err)
	}

	for _, role := range roles {
		if !policyAllows(role, resource, action) {
			continue
		}
		if !rowScoped[role] {
			return Allow, nil
		}

		// Row-scoped grant with no row to scope against: deny rather than
		// widen the grant to the whole table.
		if target.zero() {
			continue
		}

		ok, err := g.inScope(ctx, role, actorID, resource, target)
		if err != nil {
			return Deny, fmt.Errorf("resolving %s scope for account %d: %w", role, actorID, err)
		}
		if ok {
			return Allow, nil
		}
	}

	return Deny, nil
}

func (g *Gate) inScope(ctx context.Context, role models.RoleName, actorID int64, resource models.EntityType, target Target) (bool, error) {
	switch role {
	case models.RoleTeacher:
		return g.scope.InTeacherScope(ctx, actorID, resource, target)
	case models.RoleParent:
		return g.scope.InParentScope(ctx, actorID, resource, target)
	case models.RoleStudent:
		return g.scope.InStudentScope(ctx, actorID, resource, target)
	}
	return false, nil
}
