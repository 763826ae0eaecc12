package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emirkay/schoolregistry/internal/app/controllers"
	"github.com/emirkay/schoolregistry/internal/middleware"
	pkgauth "github.com/emirkay/schoolregistry/internal/pkg/auth"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Account    *controllers.AccountController
	Class      *controllers.ClassController
	Student    *controllers.StudentController
	Parent     *controllers.ParentController
	Accountant *controllers.AccountantController
	Subject    *controllers.SubjectController
	Absence    *controllers.AbsenceController
	Grade      *controllers.GradeController
	Payment    *controllers.PaymentController
	Transport  *controllers.TransportController
	Timetable  *controllers.TimetableController
}

// SetupRouter configures all application routes. Per-role access is enforced
// inside the controllers through the gate, not with per-route role
// middleware: row-scoped grants cannot be decided from the route alone.
func SetupRouter(router *gin.Engine, c *Controllers, jwtService *pkgauth.JWTService) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService))

	accounts := authenticated.Group("/accounts")
	{
		accounts.GET("/:id", c.Account.GetAccount)
		accounts.PUT("/:id", c.Account.UpdateAccount)
		accounts.DELETE("/:id", c.Account.DeleteAccount)
		accounts.POST("/:id/roles", c.Account.AssignRole)
		accounts.DELETE("/:id/roles/:role", c.Account.RevokeRole)
	}

	classes := authenticated.Group("/classes")
	{
		classes.POST("", c.Class.CreateClass)
		classes.GET("", c.Class.GetAllClasses)
		classes.GET("/:id", c.Class.GetClass)
		classes.PUT("/:id", c.Class.UpdateClass)
		classes.DELETE("/:id", c.Class.DeleteClass)
		classes.GET("/:id/students", c.Class.GetClassStudents)
		classes.GET("/:id/timetable", c.Timetable.GetClassTimetable)
	}

	students := authenticated.Group("/students")
	{
		students.POST("", c.Student.CreateStudent)
		students.GET("", c.Student.GetAllStudents)
		students.GET("/:id", c.Student.GetStudent)
		students.PUT("/:id", c.Student.UpdateStudent)
		students.DELETE("/:id", c.Student.DeleteStudent)
		students.GET("/:id/absences", c.Student.GetStudentAbsences)
		students.GET("/:id/grades", c.Student.GetStudentGrades)
		students.GET("/:id/payments", c.Student.GetStudentPayments)
		students.GET("/:id/transports", c.Student.GetStudentTransports)
		students.GET("/:id/parents", c.Parent.GetStudentParents)
	}

	parents := authenticated.Group("/parents")
	{
		parents.POST("", c.Parent.CreateParent)
		parents.GET("", c.Parent.GetAllParents)
		parents.GET("/:id", c.Parent.GetParent)
		parents.PUT("/:id", c.Parent.UpdateParent)
		parents.DELETE("/:id", c.Parent.DeleteParent)
		parents.POST("/:id/students", c.Parent.LinkStudent)
		parents.GET("/:id/students", c.Parent.GetParentStudents)
		parents.DELETE("/:id/students/:studentId", c.Parent.UnlinkStudent)
	}

	accountants := authenticated.Group("/accountants")
	{
		accountants.POST("", c.Accountant.CreateAccountant)
		accountants.GET("", c.Accountant.GetAllAccountants)
		accountants.GET("/:id", c.Accountant.GetAccountant)
		accountants.PUT("/:id", c.Accountant.UpdateAccountant)
		accountants.DELETE("/:id", c.Accountant.DeleteAccountant)
	}

	subjects := authenticated.Group("/subjects")
	{
		subjects.POST("", c.Subject.CreateSubject)
		subjects.GET("", c.Subject.GetAllSubjects)
		subjects.GET("/:id", c.Subject.GetSubject)
		subjects.PUT("/:id", c.Subject.UpdateSubject)
		subjects.DELETE("/:id", c.Subject.DeleteSubject)
	}

	absences := authenticated.Group("/absences")
	{
		absences.POST("", c.Absence.CreateAbsence)
		absences.GET("", c.Absence.GetAllAbsences)
		absences.GET("/:id", c.Absence.GetAbsence)
		absences.PUT("/:id", c.Absence.UpdateAbsence)
		absences.DELETE("/:id", c.Absence.DeleteAbsence)
	}

	grades := authenticated.Group("/grades")
	{
		grades.POST("", c.Grade.CreateGrade)
		grades.GET("", c.Grade.GetAllGrades)
		grades.GET("/:id", c.Grade.GetGrade)
		grades.PUT("/:id", c.Grade.UpdateGrade)
		grades.DELETE("/:id", c.Grade.DeleteGrade)
	}

	payments := authenticated.Group("/payments")
	{
		payments.POST("", c.Payment.CreatePayment)
		payments.GET("", c.Payment.GetAllPayments)
		payments.GET("/:id", c.Payment.GetPayment)
		payments.PUT("/:id", c.Payment.UpdatePayment)
		payments.DELETE("/:id", c.Payment.DeletePayment)
	}

	transports := authenticated.Group("/transports")
	{
		transports.POST("", c.Transport.CreateTransport)
		transports.GET("", c.Transport.GetAllTransports)
		transports.GET("/:id", c.Transport.GetTransport)
		transports.PUT("/:id", c.Transport.UpdateTransport)
		transports.DELETE("/:id", c.Transport.DeleteTransport)
		transports.POST("/:id/students", c.Transport.Enroll)
		transports.DELETE("/:id/students/:studentId", c.Transport.Withdraw)
	}

	timetables := authenticated.Group("/timetables")
	{
		timetables.POST("", c.Timetable.CreateEntry)
		timetables.GET("", c.Timetable.GetAllEntries)
		timetables.GET("/mine", c.Timetable.GetMyTimetable)
		timetables.GET("/:id", c.Timetable.GetEntry)
		timetables.PUT("/:id", c.Timetable.UpdateEntry)
		timetables.DELETE("/:id", c.Timetable.DeleteEntry)
	}
}
