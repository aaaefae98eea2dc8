package service

import (
	"context"
	"database/sql"
	"errors"

	"student-records-api/model"
	"student-records-api/repository"
)

var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrInvalidYearLevel = errors.New("year level must be between 1 and 4")
)

// StudentService handles student-record business logic.
type StudentService struct {
	repo repository.IStudentRepository
}

func NewStudentService(repo repository.IStudentRepository) *StudentService {
	return &StudentService{repo: repo}
}

// Create validates and stores a new record. Validation runs before any
// store call.
func (s *StudentService) Create(ctx context.Context, req model.StudentRequest) (*model.Student, error) {
	if req.YearLevel < 1 || req.YearLevel > 4 {
		return nil, ErrInvalidYearLevel
	}

	student := &model.Student{
		StudentID: req.StudentID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Program:   req.Program,
		YearLevel: req.YearLevel,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// List returns all records, or a substring search across first_name,
// last_name, email and program when term is non-empty.
func (s *StudentService) List(ctx context.Context, term string) ([]*model.Student, error) {
	if term != "" {
		return s.repo.Search(ctx, term)
	}
	return s.repo.List(ctx)
}

func (s *StudentService) Get(ctx context.Context, id int) (*model.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// Update overwrites every field of an existing record.
func (s *StudentService) Update(ctx context.Context, id int, req model.StudentRequest) (*model.Student, error) {
	if req.YearLevel < 1 || req.YearLevel > 4 {
		return nil, ErrInvalidYearLevel
	}

	student := &model.Student{
		ID:        id,
		StudentID: req.StudentID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Program:   req.Program,
		YearLevel: req.YearLevel,
	}
	if err := s.repo.Update(ctx, student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStudentNotFound
		}
		return err
	}
	return nil
}
