package repository

import (
	"context"
	"database/sql"

	"student-records-api/logger"
	"student-records-api/model"

	"github.com/sirupsen/logrus"
)

// IStudentRepository defines the record-store contract.
type IStudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int) (*model.Student, error)
	List(ctx context.Context) ([]*model.Student, error)
	Search(ctx context.Context, term string) ([]*model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id int) error
}

type StudentRepository struct {
	DB *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

const studentColumns = `id, student_id, first_name, last_name, email, program, year_level`

// Create inserts a new student record and fills in the generated id.
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	log := logger.Log.WithFields(logrus.Fields{
		"student_id": student.StudentID,
		"program":    student.Program,
	})
	log.Info("Executing query to create a new student")

	query := `INSERT INTO students (student_id, first_name, last_name, email, program, year_level)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.DB.QueryRowContext(ctx, query,
		student.StudentID, student.FirstName, student.LastName,
		student.Email, student.Program, student.YearLevel,
	).Scan(&student.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute create student query")
		return err
	}
	return nil
}

// GetByID returns sql.ErrNoRows when the record is absent.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	student := &model.Student{}
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&student.ID, &student.StudentID, &student.FirstName, &student.LastName,
		&student.Email, &student.Program, &student.YearLevel,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("id", id).Error("Failed to execute get student query")
		}
		return nil, err
	}
	return student, nil
}

// List returns all student records in id order.
func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY id`
	return r.queryStudents(ctx, query)
}

// Search matches the term as a case-insensitive substring of first_name,
// last_name, email, or program.
func (r *StudentRepository) Search(ctx context.Context, term string) ([]*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR program ILIKE $1
		ORDER BY id`
	return r.queryStudents(ctx, query, "%"+term+"%")
}

func (r *StudentRepository) queryStudents(ctx context.Context, query string, args ...any) ([]*model.Student, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute student list query")
		return nil, err
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.Email, &s.Program, &s.YearLevel); err != nil {
			logger.Log.WithError(err).Error("Failed to scan student row")
			return nil, err
		}
		students = append(students, &s)
	}
	return students, rows.Err()
}

// Update overwrites every field of an existing record. Returns
// sql.ErrNoRows when the id does not exist.
func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	query := `UPDATE students
		SET student_id = $1, first_name = $2, last_name = $3, email = $4, program = $5, year_level = $6
		WHERE id = $7`
	res, err := r.DB.ExecContext(ctx, query,
		student.StudentID, student.FirstName, student.LastName,
		student.Email, student.Program, student.YearLevel, student.ID,
	)
	if err != nil {
		logger.Log.WithError(err).WithField("id", student.ID).Error("Failed to execute update student query")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a record. Returns sql.ErrNoRows when the id does not exist.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		logger.Log.WithError(err).WithField("id", id).Error("Failed to execute delete student query")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
