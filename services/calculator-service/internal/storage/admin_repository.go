package storage

import (
	"context"

	"github.com/md-rashed-zaman/costcalc/libs/db"
)

type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
}

type AdminRepository struct {
	pool *db.Pool
}

func NewAdminRepository(pool *db.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (Admin, error) {
	var admin Admin
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash
		FROM admins
		WHERE username = $1
	`, username).Scan(&admin.ID, &admin.Username, &admin.PasswordHash)
	if err != nil {
		return Admin{}, notFoundIfNoRows(err)
	}
	return admin, nil
}

// EnsureAdmin creates the account when the username is free and reports whether it did.
// An existing account keeps its password.
func (r *AdminRepository) EnsureAdmin(ctx context.Context, username, passwordHash string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`, username, passwordHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
