package rest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vybbi/vybbi_api/internal/model"
	"golang.org/x/crypto/bcrypt"
)

func (api *API) UpdateUserRepo(ctx context.Context, user model.User) error {
	stmt := `
        UPDATE users
        SET firstname = $2, lastname = $3, updated_at = NOW()
        WHERE id = $1
    `
	_, err := api.Deps.DB.Pool().Exec(ctx, stmt, user.ID, user.FirstName, user.LastName)
	if err != nil {
		return err
	}
	return nil
}

// ChangePasswordRepo only applies to accounts that set a password in the
// first place; code-only and Google accounts have no hash to verify.
func (api *API) ChangePasswordRepo(ctx context.Context, userID, oldPassword, newPassword string) error {
	var hash *string
	err := api.DB.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&hash)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("user not found")
	}
	if err != nil {
		return err
	}
	if hash == nil {
		return fmt.Errorf("account has no password set")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*hash), []byte(oldPassword)); err != nil {
		return fmt.Errorf("current password does not match")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = api.DB.Exec(ctx, `
        UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1
    `, userID, string(newHash))
	return err
}

func (api *API) UpdateLanguageRepo(ctx context.Context, userID, language string) error {
	stmt := `
        UPDATE users
        SET preferred_language = $2, updated_at = NOW()
        WHERE id = $1
    `
	_, err := api.Deps.DB.Pool().Exec(ctx, stmt, userID, language)
	if err != nil {
		return err
	}
	return nil
}

func (api *API) DeleteUserRepo(ctx context.Context, userID string) error {
	stmt := `DELETE FROM users WHERE id = $1`

	_, err := api.Deps.DB.Pool().Exec(ctx, stmt, userID)
	if err != nil {
		return err
	}
	return nil
}
