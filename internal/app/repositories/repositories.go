package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances.
type Repositories struct {
	UserRepository        *UserRepository
	ClassRepository       *ClassRepository
	StudentRepository     *StudentRepository
	ParentRepository      *ParentRepository
	AccountantRepository  *AccountantRepository
	SubjectRepository     *SubjectRepository
	AbsenceRepository     *AbsenceRepository
	GradeRepository       *GradeRepository
	PaymentRepository     *PaymentRepository
	TransportRepository   *TransportRepository
	TimetableRepository   *TimetableRepository
	AssociationRepository *AssociationRepository
	ScopeRepository       *ScopeRepository
}

// NewRepositories initializes all repositories.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		ClassRepository:       NewClassRepository(db),
		StudentRepository:     NewStudentRepository(db),
		ParentRepository:      NewParentRepository(db),
		AccountantRepository:  NewAccountantRepository(db),
		SubjectRepository:     NewSubjectRepository(db),
		AbsenceRepository:     NewAbsenceRepository(db),
		GradeRepository:       NewGradeRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		TransportRepository:   NewTransportRepository(db),
		TimetableRepository:   NewTimetableRepository(db),
		AssociationRepository: NewAssociationRepository(db),
		ScopeRepository:       NewScopeRepository(db),
	}
}

// rowExists runs an EXISTS probe for one row by id. Table names come from the
// callers' static queries, never from user input.
func rowExists(ctx context.Context, db *pgxpool.Pool, table string, id int64) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, table)
	if err := db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking %s existence: %w", table, err)
	}
	return exists, nil
}
