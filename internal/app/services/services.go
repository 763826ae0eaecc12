package services

import (
	"github.com/rs/zerolog"

	"github.com/emirkay/schoolregistry/internal/app/integrity"
	"github.com/emirkay/schoolregistry/internal/app/repositories"
	"github.com/emirkay/schoolregistry/internal/config"
	pkgauth "github.com/emirkay/schoolregistry/internal/pkg/auth"
)

// Services holds all the service instances.
type Services struct {
	AuthService       *AuthService
	AccountService    *AccountService
	ClassService      *ClassService
	StudentService    *StudentService
	ParentService     *ParentService
	AccountantService *AccountantService
	SubjectService    *SubjectService
	AbsenceService    *AbsenceService
	GradeService      *GradeService
	PaymentService    *PaymentService
	TransportService  *TransportService
	TimetableService  *TimetableService
}

// NewServices initializes all services.
func NewServices(
	repos *repositories.Repositories,
	engine *integrity.Engine,
	jwtService *pkgauth.JWTService,
	cfg *config.Config,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService:    NewAuthService(repos.UserRepository, jwtService, logger),
		AccountService: NewAccountService(repos.UserRepository, repos.StudentRepository, repos.ParentRepository, repos.AccountantRepository, repos.ClassRepository, engine, logger),
		ClassService:   NewClassService(repos.ClassRepository, engine),
		StudentService: NewStudentService(repos.StudentRepository, repos.UserRepository, repos.ClassRepository, engine),
		ParentService:  NewParentService(repos.ParentRepository, repos.StudentRepository, repos.UserRepository, repos.AssociationRepository, engine),
		AccountantService: NewAccountantService(repos.AccountantRepository, repos.UserRepository, engine),
		SubjectService:    NewSubjectService(repos.SubjectRepository, repos.ClassRepository, repos.UserRepository, engine),
		AbsenceService:    NewAbsenceService(repos.AbsenceRepository, repos.StudentRepository, repos.SubjectRepository, engine),
		GradeService:      NewGradeService(repos.GradeRepository, repos.StudentRepository, repos.SubjectRepository, engine),
		PaymentService:    NewPaymentService(repos.PaymentRepository, repos.StudentRepository, engine, logger),
		TransportService:  NewTransportService(repos.TransportRepository, repos.StudentRepository, repos.AssociationRepository, engine, cfg.Policy.TransportOverlap),
		TimetableService:  NewTimetableService(repos.TimetableRepository, repos.ClassRepository, repos.SubjectRepository, engine),
	}
}
