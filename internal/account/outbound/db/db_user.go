package db

import (
	"context"

	"github.com/tixgo/tixgo/internal/account/entity"
)

const userColumns = `id, email, full_name, role, status, password, created_at, updated_at`

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	var user entity.User
	if err = s.mapError(row.Scan(
		&user.ID, &user.Email, &user.FullName, &user.Role, &user.Status,
		&user.Password, &user.CreatedAt, &user.UpdatedAt,
	)); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	var user entity.User
	if err = s.mapError(row.Scan(
		&user.ID, &user.Email, &user.FullName, &user.Role, &user.Status,
		&user.Password, &user.CreatedAt, &user.UpdatedAt,
	)); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO users (id, email, full_name, role, status, password)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.FullName, user.Role, user.Status, user.Password,
	)

	return s.mapError(err)
}
