package services

import (
	"context"

	"github.com/emirkay/schoolregistry/internal/app/integrity"
	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/app/models/dto"
	"github.com/emirkay/schoolregistry/internal/app/repositories"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

// TimetableService handles timetable entries.
type TimetableService struct {
	timetableRepo *repositories.TimetableRepository
	classRepo     *repositories.ClassRepository
	subjectRepo   *repositories.SubjectRepository
	engine        *integrity.Engine
}

// NewTimetableService creates a new timetable service instance.
func NewTimetableService(
	timetableRepo *repositories.TimetableRepository,
	classRepo *repositories.ClassRepository,
	subjectRepo *repositories.SubjectRepository,
	engine *integrity.Engine,
) *TimetableService {
	return &TimetableService{
		timetableRepo: timetableRepo,
		classRepo:     classRepo,
		subjectRepo:   subjectRepo,
		engine:        engine,
	}
}

// parseEntry validates a timetable request into an entry, leaving ID unset.
func (s *TimetableService) parseEntry(ctx context.Context, req *dto.TimetableRequest) (*models.TimetableEntry, error) {
	day := models.Weekday(req.Day)
	if !day.Valid() {
		return nil, apperrors.NewValidationError("day", "unknown weekday")
	}

	start, err := parseClock("startTime", req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock("endTime", req.EndTime)
	if err != nil {
		return nil, err
	}
	if end <= start {
		return nil, apperrors.NewValidationError("endTime", "must be after startTime")
	}

	classExists, err := s.classRepo.Exists(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if !classExists {
		return nil, apperrors.NewDanglingReference("classId")
	}

	subjectExists, err := s.subjectRepo.Exists(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if !subjectExists {
		return nil, apperrors.NewDanglingReference("subjectId")
	}

	return &models.TimetableEntry{
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
		Day:       day,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// CreateEntry creates a new timetable entry.
func (s *TimetableService) CreateEntry(ctx context.Context, req *dto.TimetableRequest) (*models.TimetableEntry, error) {
	entry, err := s.parseEntry(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.timetableRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetEntry retrieves a timetable entry by id.
func (s *TimetableService) GetEntry(ctx context.Context, id int64) (*models.TimetableEntry, error) {
	return s.timetableRepo.GetByID(ctx, id)
}

// GetAllEntries retrieves all timetable entries.
func (s *TimetableService) GetAllEntries(ctx context.Context) ([]*models.TimetableEntry, error) {
	return s.timetableRepo.GetAll(ctx)
}

// GetEntriesByClass retrieves the weekly timetable of one class.
func (s *TimetableService) GetEntriesByClass(ctx context.Context, classID int64) ([]*models.TimetableEntry, error) {
	exists, err := s.classRepo.Exists(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound(string(models.EntityClassGroup), classID)
	}
	return s.timetableRepo.GetByClass(ctx, classID)
}

// GetEntriesForAccount retrieves the timetable entries visible to an account
// through its student profile, guarded students or taught subjects.
func (s *TimetableService) GetEntriesForAccount(ctx context.Context, accountID int64) ([]*models.TimetableEntry, error) {
	return s.timetableRepo.GetForAccount(ctx, accountID)
}

// UpdateEntry changes a timetable entry.
func (s *TimetableService) UpdateEntry(ctx context.Context, id int64, req *dto.TimetableRequest) (*models.TimetableEntry, error) {
	existing, err := s.timetableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry, err := s.parseEntry(ctx, req)
	if err != nil {
		return nil, err
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt

	if err := s.timetableRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes a timetable entry.
func (s *TimetableService) DeleteEntry(ctx context.Context, id int64) error {
	return s.engine.Delete(ctx, models.EntityTimetable, id)
}
