// service/student_service_test.go
package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"student-records-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStudentRepo struct{ mock.Mock }

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	args := m.Called(student)
	return args.Error(0)
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int) (*model.Student, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *mockStudentRepo) List(_ context.Context) ([]*model.Student, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Student), args.Error(1)
}

func (m *mockStudentRepo) Search(_ context.Context, term string) ([]*model.Student, error) {
	args := m.Called(term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Student), args.Error(1)
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	args := m.Called(student)
	return args.Error(0)
}

func (m *mockStudentRepo) Delete(_ context.Context, id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func validStudentRequest() model.StudentRequest {
	return model.StudentRequest{
		StudentID: "2021-0001",
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "a@x.com",
		Program:   "CS",
		YearLevel: 2,
	}
}

func TestStudentService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockStudentRepo)
		mockRepo.On("Create", mock.MatchedBy(func(s *model.Student) bool {
			return s.StudentID == "2021-0001" && s.YearLevel == 2
		})).Return(nil).Once()

		studentService := NewStudentService(mockRepo)
		student, err := studentService.Create(context.Background(), validStudentRequest())

		assert.NoError(t, err)
		assert.Equal(t, "Ann", student.FirstName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("year level out of range", func(t *testing.T) {
		mockRepo := new(mockStudentRepo)
		studentService := NewStudentService(mockRepo)

		for _, year := range []int{0, 5, -1} {
			req := validStudentRequest()
			req.YearLevel = year
			_, err := studentService.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidYearLevel)
		}
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(mockStudentRepo)
		expectedError := errors.New("database error")
		mockRepo.On("Create", mock.Anything).Return(expectedError).Once()

		studentService := NewStudentService(mockRepo)
		_, err := studentService.Create(context.Background(), validStudentRequest())

		assert.Equal(t, expectedError, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestStudentService_List(t *testing.T) {
	t.Run("without search term", func(t *testing.T) {
		mockRepo := new(mockStudentRepo)
		mockRepo.On("List").Return([]*model.Student{{ID: 1}}, nil).Once()

		studentService := NewStudentService(mockRepo)
		students, err := studentService.List(context.Background(), "")

		assert.NoError(t, err)
		assert.Len(t, students, 1)
		mockRepo.AssertNotCalled(t, "Search")
		mockRepo.AssertExpectations(t)
	})

	t.Run("with search term", func(t *testing.T) {
		mockRepo := new(mockStudentRepo)
		mockRepo.On("Search", "ann").Return([]*model.Student{{ID: 1}, {ID: 2}}, nil).Once()

		studentService := NewStudentService(mockRepo)
		students, err := studentService.List(context.Background(), "ann")

		assert.NoError(t, err)
		assert.Len(t, students, 2)
		mockRepo.AssertNotCalled(t, "List")
		mockRepo.AssertExpectations(t)
	})
}

func TestStudentService_Get_NotFound(t *testing.T) {
	mockRepo := new(mockStudentRepo)
	mockRepo.On("GetByID", 42).Return(nil, sql.ErrNoRows).Once()

	studentService := NewStudentService(mockRepo)
	_, err := studentService.Get(context.Background(), 42)

	assert.ErrorIs(t, err, ErrStudentNotFound)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_Update(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		mockRepo := new(mockStudentRepo)
		mockRepo.On("Update", mock.Anything).Return(sql.ErrNoRows).Once()

		studentService := NewStudentService(mockRepo)
		_, err := studentService.Update(context.Background(), 42, validStudentRequest())

		assert.ErrorIs(t, err, ErrStudentNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("year level out of range", func(t *testing.T) {
		mockRepo := new(mockStudentRepo)
		studentService := NewStudentService(mockRepo)

		req := validStudentRequest()
		req.YearLevel = 5
		_, err := studentService.Update(context.Background(), 1, req)

		assert.ErrorIs(t, err, ErrInvalidYearLevel)
		mockRepo.AssertNotCalled(t, "Update")
	})
}

func TestStudentService_Delete_NotFound(t *testing.T) {
	mockRepo := new(mockStudentRepo)
	mockRepo.On("Delete", 42).Return(sql.ErrNoRows).Once()

	studentService := NewStudentService(mockRepo)
	err := studentService.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, ErrStudentNotFound)
	mockRepo.AssertExpectations(t)
}
