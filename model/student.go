package model

// Student is a single student record. Field order matches the canonical
// wire order: id, student_id, first_name, last_name, email, program,
// year_level.
type Student struct {
	ID        int    `json:"id"`
	StudentID string `json:"student_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Program   string `json:"program"`
	YearLevel int    `json:"year_level"`
}
