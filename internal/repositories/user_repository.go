package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"acheiBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, username, email, first_name, last_name, password, profile_picture, is_staff, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.Password, &u.ProfilePicture, &u.IsStaff, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
		INSERT INTO users (username, email, first_name, last_name, password, profile_picture, is_staff)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.FirstName, user.LastName,
		user.Password, user.ProfilePicture, user.IsStaff,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	user.Password = ""
	return user, nil
}

// UpsertByEmail creates or refreshes a user from the SSO profile, keyed by email.
func (r *UserRepository) UpsertByEmail(ctx context.Context, user models.User) (models.User, error) {
	query := `
		INSERT INTO users (username, email, first_name, last_name, password, profile_picture, is_staff)
		VALUES ($1, $2, $3, $4, '', $5, FALSE)
		ON CONFLICT (email) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    profile_picture = COALESCE(EXCLUDED.profile_picture, users.profile_picture),
		    updated_at = NOW()
		RETURNING ` + userColumns
	created, err := scanUser(r.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.FirstName, user.LastName, user.ProfilePicture))
	if err != nil {
		return models.User{}, fmt.Errorf("upsert user: %w", err)
	}
	created.Password = ""
	return created, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	user, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		user.Password = ""
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) CreateSession(ctx context.Context, session models.Session) error {
	query := `
		INSERT INTO sessions (user_id, refresh_token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET refresh_token = EXCLUDED.refresh_token, expires_at = EXCLUDED.expires_at`
	_, err := r.DB.ExecContext(ctx, query, session.UserID, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var session models.Session
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id, refresh_token, expires_at FROM sessions WHERE refresh_token = $1`,
		refreshToken,
	).Scan(&session.UserID, &session.RefreshToken, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, models.ErrNoRecord
		}
		return models.Session{}, err
	}
	return session, nil
}

func (r *UserRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
