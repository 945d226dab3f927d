package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SidhantUppal/roombook/internal/models"
	"github.com/SidhantUppal/roombook/internal/storage"
)

func (r *PostgresRepo) SaveUser(ctx context.Context, firstName, lastName, email string, passHash []byte) (int64, error) {
	const op = "storage.postgres.SaveUser"

	var id int64
	err := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (first_name, last_name, email, pass_hash) VALUES ($1, $2, $3, $4) RETURNING id;`,
		firstName,
		lastName,
		email,
		passHash,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return -1, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}

		return -1, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *PostgresRepo) UserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "storage.postgres.UserByEmail"

	var usr models.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT id, first_name, last_name, email, pass_hash, is_admin FROM users WHERE email = $1`,
		email,
	).Scan(&usr.ID, &usr.FirstName, &usr.LastName, &usr.Email, &usr.PassHash, &usr.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return usr, nil
}

func (r *PostgresRepo) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	const op = "storage.postgres.IsAdmin"

	var isAdmin bool

	err := r.pool.QueryRow(
		ctx,
		`SELECT is_admin FROM users WHERE id = $1`,
		userID,
	).Scan(&isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return isAdmin, nil
}
