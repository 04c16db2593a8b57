package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"levercalc/internal/domain"
)

// HistoryRepositoryImpl implements the HistoryRepository interface
type HistoryRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *pgxpool.Pool) domain.HistoryRepository {
	return &HistoryRepositoryImpl{db: db}
}

// Save stores a new calculation record
func (r *HistoryRepositoryImpl) Save(ctx context.Context, record *domain.CalculationRecord) error {
	query := `
		INSERT INTO calculations (
			id, user_id, calculator, params, result, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.Calculator,
		record.Params,
		record.Result,
		record.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}

	return nil
}

// GetByUserID retrieves the most recent records for a user, optionally
// filtered to one calculator
func (r *HistoryRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID, calculator string, limit int) ([]*domain.CalculationRecord, error) {
	query := `
		SELECT id, user_id, calculator, params, result, created_at
		FROM calculations
		WHERE user_id = $1 AND ($2 = '' OR calculator = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, userID, calculator, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculations by user ID: %w", err)
	}
	defer rows.Close()

	var records []*domain.CalculationRecord
	for rows.Next() {
		record := &domain.CalculationRecord{}
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Calculator,
			&record.Params,
			&record.Result,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calculations: %w", err)
	}

	return records, nil
}

// GetByID retrieves a record by its ID
func (r *HistoryRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalculationRecord, error) {
	query := `
		SELECT id, user_id, calculator, params, result, created_at
		FROM calculations
		WHERE id = $1
	`

	record := &domain.CalculationRecord{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.UserID,
		&record.Calculator,
		&record.Params,
		&record.Result,
		&record.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get calculation by ID: %w", err)
	}

	return record, nil
}

// Delete removes a record owned by the given user
func (r *HistoryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `
		DELETE FROM calculations
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("calculation %s not found for user", id)
	}

	return nil
}
