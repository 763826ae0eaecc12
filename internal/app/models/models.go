package models

// EntityType identifies a record kind across the entity graph. The integrity
// engine and the access gate both key their tables on it.
type EntityType string

const (
	EntityAccount    EntityType = "account"
	EntityRole       EntityType = "role"
	EntityClassGroup EntityType = "class"
	EntityStudent    EntityType = "student"
	EntityParent     EntityType = "parent"
	EntityAccountant EntityType = "accountant"
	EntitySubject    EntityType = "subject"
	EntityAbsence    EntityType = "absence"
	EntityGrade      EntityType = "grade"
	EntityPayment    EntityType = "payment"
	EntityTransport  EntityType = "transport"
	EntityTimetable  EntityType = "timetable"
)

// Table returns the backing table for an entity type.
func (t EntityType) Table() string {
	switch t {
	case EntityAccount:
		return "users"
	case EntityRole:
		return "roles"
	case EntityClassGroup:
		return "classes"
	case EntityStudent:
		return "students"
	case EntityParent:
		return "parents"
	case EntityAccountant:
		return "accountants"
	case EntitySubject:
		return "subjects"
	case EntityAbsence:
		return "absences"
	case EntityGrade:
		return "grades"
	case EntityPayment:
		return "payments"
	case EntityTransport:
		return "transports"
	case EntityTimetable:
		return "timetables"
	}
	return string(t)
}

// RoleName is the closed set of roles an account may hold.
type RoleName string

const (
	RoleAdmin      RoleName = "admin"
	RoleTeacher    RoleName = "teacher"
	RoleParent     RoleName = "parent"
	RoleStudent    RoleName = "student"
	RoleAccountant RoleName = "accountant"
)

// AllRoles lists every valid role name, in seeding order.
var AllRoles = []RoleName{RoleAdmin, RoleTeacher, RoleParent, RoleStudent, RoleAccountant}

// Valid reports whether the role name belongs to the closed set.
func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleParent, RoleStudent, RoleAccountant:
		return true
	}
	return false
}

// ProfileType is the subset of entity types an account may attach a profile of.
type ProfileType = EntityType
