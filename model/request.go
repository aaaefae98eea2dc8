// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StudentRequest defines the payload for creating or fully updating a
// student record.
type StudentRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Program   string `json:"program" validate:"required"`
	YearLevel int    `json:"year_level" validate:"required,min=1,max=4"`
}
