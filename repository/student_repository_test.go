package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"student-records-api/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var studentRows = []string{"id", "student_id", "first_name", "last_name", "email", "program", "year_level"}

func sampleStudent() *model.Student {
	return &model.Student{
		StudentID: "2021-0001",
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "a@x.com",
		Program:   "CS",
		YearLevel: 2,
	}
}

func TestStudentRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)

	student := sampleStudent()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO students`)).
		WithArgs("2021-0001", "Ann", "Lee", "a@x.com", "CS", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err := repo.Create(context.Background(), student)

	assert.NoError(t, err)
	assert.Equal(t, 7, student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewStudentRepository(db)

		rows := sqlmock.NewRows(studentRows).
			AddRow(1, "2021-0001", "Ann", "Lee", "a@x.com", "CS", 2)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM students WHERE id = $1`)).
			WithArgs(1).
			WillReturnRows(rows)

		student, err := repo.GetByID(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "Ann", student.FirstName)
		assert.Equal(t, 2, student.YearLevel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewStudentRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM students WHERE id = $1`)).
			WithArgs(42).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 42)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestStudentRepository_Search(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows(studentRows).
		AddRow(1, "2021-0001", "Ann", "Lee", "a@x.com", "CS", 2).
		AddRow(3, "2021-0003", "Anna", "Cruz", "anna@x.com", "Math", 4)
	mock.ExpectQuery(`first_name ILIKE \$1 OR last_name ILIKE \$1 OR email ILIKE \$1 OR program ILIKE \$1`).
		WithArgs("%ann%").
		WillReturnRows(rows)

	students, err := repo.Search(context.Background(), "ann")

	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Ann", students[0].FirstName)
	assert.Equal(t, "Anna", students[1].FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows(studentRows).
		AddRow(1, "2021-0001", "Ann", "Lee", "a@x.com", "CS", 2)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM students ORDER BY id`)).
		WillReturnRows(rows)

	students, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewStudentRepository(db)

		student := sampleStudent()
		student.ID = 1
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE students`)).
			WithArgs("2021-0001", "Ann", "Lee", "a@x.com", "CS", 2, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(context.Background(), student))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewStudentRepository(db)

		student := sampleStudent()
		student.ID = 42
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE students`)).
			WithArgs("2021-0001", "Ann", "Lee", "a@x.com", "CS", 2, 42).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), student), sql.ErrNoRows)
	})
}

func TestStudentRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewStudentRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM students WHERE id = $1`)).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 1))
	})

	t.Run("absent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewStudentRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM students WHERE id = $1`)).
			WithArgs(42).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 42), sql.ErrNoRows)
	})
}
