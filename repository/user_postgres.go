package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskify/taskify-api/models"
)

type postgresUserRepository struct {
	uow *PostgresUnitOfWork
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.uow.exec().ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, user_name, avatar_url, created_at)
		 VALUES ($1, lower($2), $3, $4, $5, $6)`,
		user.ID, user.Email, user.PasswordHash, user.UserName, user.AvatarURL, user.CreatedAt,
	)
	return err
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email = lower($1)", email)
}

func (r *postgresUserRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	var user models.User
	err := r.uow.exec().QueryRowContext(ctx,
		`SELECT id, email, password_hash, user_name, avatar_url, created_at
		 FROM users WHERE `+where, arg,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.UserName, &user.AvatarURL, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.uow.exec().QueryContext(ctx,
		"SELECT role_name FROM user_roles WHERE user_id = $1 ORDER BY role_name", user.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		user.Roles = append(user.Roles, role)
	}

	return &user, rows.Err()
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	_, err := r.uow.exec().ExecContext(ctx,
		`UPDATE users SET email = lower($1), password_hash = $2, user_name = $3, avatar_url = $4
		 WHERE id = $5`,
		user.Email, user.PasswordHash, user.UserName, user.AvatarURL, user.ID,
	)
	return err
}

func (r *postgresUserRepository) AddRole(ctx context.Context, userID, role string) error {
	_, err := r.uow.exec().ExecContext(ctx,
		"INSERT INTO user_roles (user_id, role_name) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		userID, role,
	)
	return err
}
