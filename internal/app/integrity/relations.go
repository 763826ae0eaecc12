package integrity

import (
	"github.com/emirkay/schoolregistry/internal/app/models"
)

// Policy is the deletion policy of one foreign-key edge.
type Policy int

const (
	// Cascade removes dependent rows together with the parent.
	Cascade Policy = iota
	// Restrict refuses the delete while any dependent row exists.
	Restrict
)

// Relation is one foreign-key edge from a dependent table to its parent
// entity. Key identifies a dependent row: "id" for entities, the opposite
// pivot column for association rows (that is what a RestrictedError reports).
type Relation struct {
	Parent models.EntityType
	Child  string // entity label used in error reporting
	Table  string
	FK     string
	Key    string
	Policy Policy
	Pivot  bool // pivot rows are terminal, they have no dependents of their own
}

// relations is the full deletion-propagation table of the entity graph.
// Every mutation of the schema must be mirrored here; the engine consults
// nothing else.
var relations = []Relation{
	// users
	{Parent: models.EntityAccount, Child: "student", Table: "students", FK: "user_id", Key: "id", Policy: Cascade},
	{Parent: models.EntityAccount, Child: "parent", Table: "parents", FK: "user_id", Key: "id", Policy: Cascade},
	{Parent: models.EntityAccount, Child: "accountant", Table: "accountants", FK: "user_id", Key: "id", Policy: Cascade},
	{Parent: models.EntityAccount, Child: "role assignment", Table: "user_roles", FK: "user_id", Key: "role_id", Policy: Cascade, Pivot: true},
	{Parent: models.EntityAccount, Child: "subject", Table: "subjects", FK: "teacher_id", Key: "id", Policy: Restrict},

	// classes
	{Parent: models.EntityClassGroup, Child: "student", Table: "students", FK: "class_id", Key: "id", Policy: Restrict},
	{Parent: models.EntityClassGroup, Child: "subject", Table: "subjects", FK: "class_id", Key: "id", Policy: Restrict},
	{Parent: models.EntityClassGroup, Child: "timetable", Table: "timetables", FK: "class_id", Key: "id", Policy: Restrict},

	// students
	{Parent: models.EntityStudent, Child: "absence", Table: "absences", FK: "student_id", Key: "id", Policy: Cascade},
	{Parent: models.EntityStudent, Child: "grade", Table: "grades", FK: "student_id", Key: "id", Policy: Cascade},
	{Parent: models.EntityStudent, Child: "payment", Table: "payments", FK: "student_id", Key: "id", Policy: Cascade},
	{Parent: models.EntityStudent, Child: "parent link", Table: "parent_student", FK: "student_id", Key: "parent_id", Policy: Cascade, Pivot: true},
	{Parent: models.EntityStudent, Child: "transport enrollment", Table: "student_transport", FK: "student_id", Key: "transport_id", Policy: Cascade, Pivot: true},

	// parents
	{Parent: models.EntityParent, Child: "student link", Table: "parent_student", FK: "parent_id", Key: "student_id", Policy: Cascade, Pivot: true},

	// subjects
	{Parent: models.EntitySubject, Child: "absence", Table: "absences", FK: "subject_id", Key: "id", Policy: Restrict},
	{Parent: models.EntitySubject, Child: "grade", Table: "grades", FK: "subject_id", Key: "id", Policy: Restrict},
	{Parent: models.EntitySubject, Child: "timetable", Table: "timetables", FK: "subject_id", Key: "id", Policy: Restrict},

	// transports
	{Parent: models.EntityTransport, Child: "transport enrollment", Table: "student_transport", FK: "transport_id", Key: "student_id", Policy: Restrict, Pivot: true},
}

// childEntity maps a dependent table back to its entity type so the planner
// can walk the next level of the closure. Pivot tables are terminal.
var childEntity = map[string]models.EntityType{
	"students":    models.EntityStudent,
	"parents":     models.EntityParent,
	"accountants": models.EntityAccountant,
	"subjects":    models.EntitySubject,
	"absences":    models.EntityAbsence,
	"grades":      models.EntityGrade,
	"payments":    models.EntityPayment,
	"timetables":  models.EntityTimetable,
}

// relationsOf returns the outgoing edges of a parent entity.
func relationsOf(parent models.EntityType) []Relation {
	var out []Relation
	for _, r := range relations {
		if r.Parent == parent {
			out = append(out, r)
		}
	}
	return out
}
