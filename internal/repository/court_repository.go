package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/Freeeeeet/courtbooking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CourtRepository struct {
	*base.Repository
}

func NewCourtRepository(pool *pgxpool.Pool) *CourtRepository {
	return &CourtRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт корт; шаблон доступности хранится в jsonb
func (r *CourtRepository) Create(ctx context.Context, court *model.Court) error {
	availability, err := json.Marshal(court.Availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}

	query := `
		INSERT INTO courts (name, hourly_rate_cents, availability)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err = r.Pool().QueryRow(ctx, query,
		court.Name,
		court.HourlyRateCents,
		availability,
	).Scan(&court.ID, &court.CreatedAt, &court.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create court: %w", err)
	}

	return nil
}

// GetByID получает корт по ID
func (r *CourtRepository) GetByID(ctx context.Context, id int64) (*model.Court, error) {
	query := `
		SELECT id, name, hourly_rate_cents, availability, created_at, updated_at
		FROM courts
		WHERE id = $1
	`

	court, err := scanCourt(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get court by id: %w", err)
	}

	return court, nil
}

// List возвращает все корты по имени
func (r *CourtRepository) List(ctx context.Context) ([]*model.Court, error) {
	query := `
		SELECT id, name, hourly_rate_cents, availability, created_at, updated_at
		FROM courts
		ORDER BY name, id
	`

	rows, err := r.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	defer rows.Close()

	var courts []*model.Court
	for rows.Next() {
		court, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan court: %w", err)
		}
		courts = append(courts, court)
	}

	return courts, rows.Err()
}

// Update сохраняет название, ставку и шаблон доступности
func (r *CourtRepository) Update(ctx context.Context, court *model.Court) error {
	availability, err := json.Marshal(court.Availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}

	query := `
		UPDATE courts
		SET name = $2, hourly_rate_cents = $3, availability = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = r.Pool().QueryRow(ctx, query,
		court.ID,
		court.Name,
		court.HourlyRateCents,
		availability,
	).Scan(&court.UpdatedAt)

	if err != nil {
		return fmt.Errorf("update court: %w", err)
	}

	return nil
}

// Delete удаляет корт. Бронирования не трогаются.
func (r *CourtRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM courts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete court: %w", err)
	}
	return nil
}

func scanCourt(row pgx.Row) (*model.Court, error) {
	var court model.Court
	var availability []byte

	err := row.Scan(
		&court.ID,
		&court.Name,
		&court.HourlyRateCents,
		&availability,
		&court.CreatedAt,
		&court.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	court.Availability = model.Availability{}
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &court.Availability); err != nil {
			return nil, fmt.Errorf("unmarshal availability: %w", err)
		}
	}

	return &court, nil
}
