package repository

import (
	"context"
	"database/sql"

	"student-records-api/model"
)

// IUserRepository defines the credential-store contract.
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new credential row. A username collision is reported
// as ErrDuplicate; the existing row is left untouched.
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query, user.Username, user.Password).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetUserByUsername returns sql.ErrNoRows when the username is unknown.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, username, password, created_at FROM users WHERE username = $1`
	err := r.DB.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}
