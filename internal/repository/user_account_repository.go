package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/j03-dev/ankamantatra-bot/internal/entity"
)

var (
	// ErrNotFound means no account exists for the given user id.
	ErrNotFound = errors.New("repository: account not found")
	// ErrConflict means the name or user id is already taken.
	ErrConflict = errors.New("repository: account already exists")
)

const uniqueViolation = "23505"

type UserAccountRepository struct {
	db *sql.DB
}

func NewUserAccountRepository(db *sql.DB) *UserAccountRepository {
	return &UserAccountRepository{db: db}
}

func (r *UserAccountRepository) GetByUserID(ctx context.Context, userID string) (entity.UserAccount, error) {
	var account entity.UserAccount
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, user_id, score, category, created_at
		FROM user_accounts
		WHERE user_id = $1
	`, userID).Scan(
		&account.ID,
		&account.Name,
		&account.UserID,
		&account.Score,
		&account.Category,
		&account.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.UserAccount{}, ErrNotFound
	}
	if err != nil {
		return entity.UserAccount{}, fmt.Errorf("get account %s: %w", userID, err)
	}
	return account, nil
}

func (r *UserAccountRepository) Create(ctx context.Context, name, userID string) (entity.UserAccount, error) {
	account := entity.UserAccount{Name: name, UserID: userID}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO user_accounts (name, user_id, score)
		VALUES ($1, $2, 0)
		RETURNING id, score, created_at
	`, name, userID).Scan(&account.ID, &account.Score, &account.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.UserAccount{}, ErrConflict
		}
		return entity.UserAccount{}, fmt.Errorf("create account %s: %w", userID, err)
	}
	return account, nil
}

// UpdateScore writes the new score in a single statement, so a failed
// write never leaves a half-applied record.
func (r *UserAccountRepository) UpdateScore(ctx context.Context, userID string, score int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_accounts SET score = $1 WHERE user_id = $2
	`, score, userID)
	if err != nil {
		return fmt.Errorf("update score %s: %w", userID, err)
	}
	return checkAffected(result)
}

func (r *UserAccountRepository) UpdateCategory(ctx context.Context, userID, category string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_accounts SET category = $1 WHERE user_id = $2
	`, category, userID)
	if err != nil {
		return fmt.Errorf("update category %s: %w", userID, err)
	}
	return checkAffected(result)
}

func (r *UserAccountRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM user_accounts WHERE user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("delete account %s: %w", userID, err)
	}
	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
