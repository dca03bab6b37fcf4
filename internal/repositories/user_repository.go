package repositories

import (
	"context"
	"database/sql"
	"strings"

	"toiletBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userSelect = `SELECT id, name, phone, email, password_hash, role_code, wilaya_id, created_at, updated_at FROM users`

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	var phone sqlNullString
	var wilayaID sql.NullInt64
	var updatedAt sql.NullTime
	if err := row.Scan(&u.ID, &u.Name, &phone, &u.Email, &u.PasswordHash,
		&u.RoleCode, &wilayaID, &u.CreatedAt, &updatedAt); err != nil {
		return u, err
	}
	u.Phone = phone.ptr()
	u.WilayaID = intPtr(wilayaID)
	u.UpdatedAt = timePtr(updatedAt)
	return u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, u models.User) (int, error) {
	query := `INSERT INTO users (name, phone, email, password_hash, role_code, wilaya_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())`
	res, err := r.DB.ExecContext(ctx, query,
		u.Name, nullableStr(u.Phone), u.Email, u.PasswordHash, u.RoleCode, nullableInt(u.WilayaID))
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return 0, models.ErrDuplicateEmail
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return u, models.ErrUserNotFound
	}
	return u, err
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE email = ?`, email))
	if err == sql.ErrNoRows {
		return u, models.ErrUserNotFound
	}
	return u, err
}

func (r *UserRepository) SaveRefreshToken(ctx context.Context, userID int, token string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET refresh_token = ?, updated_at = NOW() WHERE id = ?`, token, userID)
	return err
}

func (r *UserRepository) GetUserByRefreshToken(ctx context.Context, token string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE refresh_token = ?`, token))
	if err == sql.ErrNoRows {
		return u, models.ErrUserNotFound
	}
	return u, err
}
