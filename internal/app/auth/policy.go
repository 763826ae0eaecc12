package auth

import (
	"github.com/emirkay/schoolregistry/internal/app/models"
)

// Action is one of the four operations the gate rules on.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type actionSet map[Action]bool

func actions(as ...Action) actionSet {
	set := make(actionSet, len(as))
	for _, a := range as {
		set[a] = true
	}
	return set
}

// policy is the role × resource × action table, fixed at design time.
// Admin is handled separately: every resource, every action.
//
// Teachers additionally hold create on Absence and Grade: those records are
// authored by teachers for subjects they teach, which the row-scope predicate
// still enforces through the subject reference.
var policy = map[models.RoleName]map[models.EntityType]actionSet{
	models.RoleTeacher: {
		models.EntityAbsence:   actions(ActionCreate, ActionRead, ActionUpdate),
		models.EntityGrade:     actions(ActionCreate, ActionRead, ActionUpdate),
		models.EntityTimetable: actions(ActionRead),
		models.EntityStudent:   actions(ActionRead),
	},
	models.RoleParent: {
		models.EntityAbsence:   actions(ActionRead),
		models.EntityGrade:     actions(ActionRead),
		models.EntityPayment:   actions(ActionRead),
		models.EntityTimetable: actions(ActionRead),
	},
	models.RoleAccountant: {
		models.EntityPayment: actions(ActionCreate, ActionRead, ActionUpdate),
		models.EntityStudent: actions(ActionRead),
	},
	models.RoleStudent: {
		models.EntityAbsence:   actions(ActionRead),
		models.EntityGrade:     actions(ActionRead),
		models.EntityPayment:   actions(ActionRead),
		models.EntityTimetable: actions(ActionRead),
	},
}

// rowScoped marks the roles whose grants only cover rows related to the
// actor. Admin and accountant grants are table-wide.
var rowScoped = map[models.RoleName]bool{
	models.RoleTeacher: true,
	models.RoleParent:  true,
	models.RoleStudent: true,
}

// policyAllows reports whether the static table grants (resource, action) to
// the role, before any row scoping.
func policyAllows(role models.RoleName, resource models.EntityType, action Action) bool {
	if role == models.RoleAdmin {
		return true
	}
	grants, ok := policy[role]
	if !ok {
		return false
	}
	set, ok := grants[resource]
	if !ok {
		return false
	}
	return set[action]
}
