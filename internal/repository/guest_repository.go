package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/Freeeeeet/courtbooking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GuestRepository struct {
	*base.Repository
}

func NewGuestRepository(pool *pgxpool.Pool) *GuestRepository {
	return &GuestRepository{Repository: base.NewRepository(pool)}
}

// insertGuest сохраняет контактные данные гостя в транзакции бронирования
func insertGuest(ctx context.Context, tx pgx.Tx, guest *model.Guest) error {
	query := `
		INSERT INTO guests (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		guest.Name,
		guest.Email,
		guest.Phone,
	).Scan(&guest.ID, &guest.CreatedAt)

	if err != nil {
		return fmt.Errorf("create guest: %w", err)
	}

	return nil
}

// GetByID получает гостя по ID
func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*model.Guest, error) {
	query := `
		SELECT id, name, email, phone, created_at
		FROM guests
		WHERE id = $1
	`

	var guest model.Guest
	err := r.Pool().QueryRow(ctx, query, id).Scan(
		&guest.ID,
		&guest.Name,
		&guest.Email,
		&guest.Phone,
		&guest.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get guest by id: %w", err)
	}

	return &guest, nil
}
