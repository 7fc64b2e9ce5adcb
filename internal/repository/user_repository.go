package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ijpettengill/jobly/internal/domain"
	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
	"github.com/ijpettengill/jobly/pkg/util/sqlutil"
)

const userColumnsSQL = `username, first_name, last_name, email, is_admin`

var userColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

// UserRepository defines persistence access for users and their applications.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindAll(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	GetWithPassword(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, username string, fields []sqlutil.Field) (*domain.User, error)
	Remove(ctx context.Context, username string) error
	ListApplications(ctx context.Context, username string) ([]int, error)
	Apply(ctx context.Context, username string, jobID int) error
}

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, password, first_name, last_name, email, is_admin)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + userColumnsSQL

	row := r.db.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		user.IsAdmin,
	)
	if err := scanUserInto(row, user); err != nil {
		return translate(err, "username", map[string]any{"username": user.Username})
	}
	return nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumnsSQL + ` FROM users ORDER BY username`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := scanUserInto(rows, &user); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) Get(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT ` + userColumnsSQL + ` FROM users WHERE username = $1`

	var user domain.User
	if err := scanUserInto(r.db.QueryRow(ctx, query, username), &user); err != nil {
		return nil, translate(err, "user", map[string]any{"username": username})
	}
	return &user, nil
}

func (r *userRepository) GetWithPassword(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT ` + userColumnsSQL + `, password FROM users WHERE username = $1`

	var user domain.User
	if err := r.db.QueryRow(ctx, query, username).Scan(
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.IsAdmin,
		&user.PasswordHash,
	); err != nil {
		return nil, translate(err, "user", map[string]any{"username": username})
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, username string, fields []sqlutil.Field) (*domain.User, error) {
	clause, err := sqlutil.PartialUpdate(fields, userColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE username = $%d RETURNING %s`,
		clause.SetCols, clause.NextIndex(), userColumnsSQL)
	args := append(clause.Values, username)

	var user domain.User
	if err := scanUserInto(r.db.QueryRow(ctx, query, args...), &user); err != nil {
		return nil, translate(err, "user", map[string]any{"username": username})
	}
	return &user, nil
}

func (r *userRepository) Remove(ctx context.Context, username string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("user", map[string]any{"username": username})
	}
	return nil
}

func (r *userRepository) ListApplications(ctx context.Context, username string) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobIDs := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		jobIDs = append(jobIDs, id)
	}
	return jobIDs, rows.Err()
}

func (r *userRepository) Apply(ctx context.Context, username string, jobID int) error {
	const query = `INSERT INTO applications (job_id, username) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, jobID, username)
	return translate(err, "application", map[string]any{"username": username, "jobId": jobID})
}

func scanUserInto(row pgx.Row, user *domain.User) error {
	return row.Scan(
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.IsAdmin,
	)
}
