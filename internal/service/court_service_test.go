package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCourtService(t *testing.T) {
	ctx := context.Background()
	repo := newMemCourtRepo()
	svc := NewCourtService(repo, zap.NewNop())
	manager := model.Actor{CanManage: true}

	input := CourtInput{
		Name:            "Центральный",
		HourlyRateCents: 2000,
		Availability: model.Availability{
			time.Monday: {slot(9, 0, 12, 0)},
		},
	}

	_, err := svc.CreateCourt(ctx, input, model.Actor{})
	assert.ErrorIs(t, err, ErrForbidden)

	court, err := svc.CreateCourt(ctx, input, manager)
	require.NoError(t, err)
	assert.NotZero(t, court.ID)

	t.Run("overlapping availability is rejected", func(t *testing.T) {
		_, err := svc.SetAvailability(ctx, court.ID, model.Availability{
			time.Friday: {slot(9, 0, 12, 0), slot(11, 0, 13, 0)},
		}, manager)
		assert.ErrorIs(t, err, ErrInvalidRequest)

		stored, err := svc.GetCourt(ctx, court.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Availability.SlotsFor(time.Monday), 1)
	})

	t.Run("negative rate", func(t *testing.T) {
		bad := input
		bad.HourlyRateCents = -1
		_, err := svc.UpdateCourt(ctx, court.ID, bad, manager)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("set availability", func(t *testing.T) {
		_, err := svc.SetAvailability(ctx, court.ID, model.Availability{}, model.Actor{})
		assert.ErrorIs(t, err, ErrForbidden)

		updated, err := svc.SetAvailability(ctx, court.ID, model.Availability{
			time.Saturday: {slot(8, 0, 20, 0)},
		}, manager)
		require.NoError(t, err)
		assert.Empty(t, updated.Availability.SlotsFor(time.Monday))
		assert.Len(t, updated.Availability.SlotsFor(time.Saturday), 1)
	})

	t.Run("update keeps availability when not given", func(t *testing.T) {
		updated, err := svc.UpdateCourt(ctx, court.ID, CourtInput{Name: "Корт 1", HourlyRateCents: 2500}, manager)
		require.NoError(t, err)
		assert.Equal(t, "Корт 1", updated.Name)
		assert.Len(t, updated.Availability.SlotsFor(time.Saturday), 1)
	})

	courts, err := svc.ListCourts(ctx)
	require.NoError(t, err)
	assert.Len(t, courts, 1)

	assert.ErrorIs(t, svc.DeleteCourt(ctx, court.ID, model.Actor{}), ErrForbidden)
	require.NoError(t, svc.DeleteCourt(ctx, court.ID, manager))
	assert.ErrorIs(t, svc.DeleteCourt(ctx, court.ID, manager), ErrNotFound)

	_, err = svc.GetCourt(ctx, court.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
