package service

import (
	"testing"
	"time"

	"github.com/Freeeeeet/courtbooking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	existing := Window{Start: at(2, 10, 0), End: at(2, 11, 0)}

	tests := []struct {
		name      string
		candidate Window
		want      bool
	}{
		{name: "same window", candidate: existing, want: true},
		{name: "starts inside", candidate: Window{Start: at(2, 10, 30), End: at(2, 11, 30)}, want: true},
		{name: "ends inside", candidate: Window{Start: at(2, 9, 30), End: at(2, 10, 30)}, want: true},
		{name: "contains", candidate: Window{Start: at(2, 9, 0), End: at(2, 12, 0)}, want: true},
		{name: "inside", candidate: Window{Start: at(2, 10, 15), End: at(2, 10, 45)}, want: true},
		{name: "touches end", candidate: Window{Start: at(2, 11, 0), End: at(2, 12, 0)}, want: false},
		{name: "touches start", candidate: Window{Start: at(2, 9, 0), End: at(2, 10, 0)}, want: false},
		{name: "disjoint", candidate: Window{Start: at(2, 13, 0), End: at(2, 14, 0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.candidate, existing))
			assert.Equal(t, tt.want, Overlaps(existing, tt.candidate))
		})
	}
}

func TestFindConflict_SkipsReleasedBookings(t *testing.T) {
	candidate := Window{Start: at(2, 10, 0), End: at(2, 11, 0)}
	existing := []*model.Booking{
		{ID: 1, StartTime: at(2, 10, 0), EndTime: at(2, 11, 0), Status: model.BookingStatusCancelled},
		{ID: 2, StartTime: at(2, 10, 0), EndTime: at(2, 11, 0), Status: model.BookingStatusCompleted},
		{ID: 3, StartTime: at(2, 9, 0), EndTime: at(2, 10, 0), Status: model.BookingStatusConfirmed},
	}
	assert.Nil(t, FindConflict(candidate, existing))

	existing = append(existing, &model.Booking{
		ID: 4, StartTime: at(2, 10, 30), EndTime: at(2, 12, 0), Status: model.BookingStatusPending,
	})
	conflict := FindConflict(candidate, existing)
	require.NotNil(t, conflict)
	assert.Equal(t, int64(4), conflict.ID)
}

func TestToLocalWindow(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// 07:00 UTC = 10:00 MSK
	lw, ok := ToLocalWindow(Window{Start: at(2, 7, 0), End: at(2, 8, 30)}, loc)
	require.True(t, ok)
	assert.Equal(t, time.Monday, lw.Weekday)
	assert.Equal(t, model.NewTimeOfDay(10, 0), lw.Start)
	assert.Equal(t, model.NewTimeOfDay(11, 30), lw.End)

	// 21:00 UTC воскресенья уже понедельник по Москве
	lw, ok = ToLocalWindow(Window{Start: at(1, 21, 0), End: at(1, 22, 0)}, loc)
	require.True(t, ok)
	assert.Equal(t, time.Monday, lw.Weekday)

	lw, ok = ToLocalWindow(Window{Start: at(2, 23, 0), End: at(3, 0, 0)}, time.UTC)
	require.True(t, ok)
	assert.Equal(t, model.TimeOfDay(model.MinutesPerDay), lw.End)

	_, ok = ToLocalWindow(Window{Start: at(2, 23, 0), End: at(3, 0, 30)}, time.UTC)
	assert.False(t, ok)
}

func TestCheckAvailability(t *testing.T) {
	court := &model.Court{
		ID: 1,
		Availability: model.Availability{
			time.Monday: {slot(9, 0, 12, 0), slot(12, 0, 15, 0)},
		},
	}

	assert.NoError(t, CheckAvailability(court, Window{Start: at(2, 9, 0), End: at(2, 12, 0)}, time.UTC))

	// окно на стыке двух слотов не покрыто одним слотом
	err := CheckAvailability(court, Window{Start: at(2, 11, 0), End: at(2, 13, 0)}, time.UTC)
	assert.ErrorIs(t, err, ErrCourtUnavailable)

	err = CheckAvailability(court, Window{Start: at(4, 9, 0), End: at(4, 10, 0)}, time.UTC)
	var unavailable *CourtUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, time.Wednesday, unavailable.Weekday)
	assert.Contains(t, err.Error(), "Wednesday")
}

func TestFreeWindows(t *testing.T) {
	slots := []model.TimeSlot{slot(9, 0, 12, 0), slot(14, 0, 18, 0)}
	busy := []*model.Booking{
		{StartTime: at(2, 9, 0), EndTime: at(2, 10, 0), Status: model.BookingStatusPending},
		{StartTime: at(2, 11, 0), EndTime: at(2, 11, 30), Status: model.BookingStatusConfirmed},
		{StartTime: at(2, 14, 0), EndTime: at(2, 18, 0), Status: model.BookingStatusCancelled},
		{StartTime: at(2, 15, 0), EndTime: at(2, 16, 0), Status: model.BookingStatusConfirmed},
	}

	free := FreeWindows(slots, at(2, 0, 0), time.UTC, busy, at(1, 0, 0))
	assert.Equal(t, []Window{
		{Start: at(2, 10, 0), End: at(2, 11, 0)},
		{Start: at(2, 11, 30), End: at(2, 12, 0)},
		{Start: at(2, 14, 0), End: at(2, 15, 0)},
		{Start: at(2, 16, 0), End: at(2, 18, 0)},
	}, free)

	// всё, что раньше notBefore, не свободно
	free = FreeWindows(slots, at(2, 0, 0), time.UTC, busy, at(2, 16, 30))
	assert.Equal(t, []Window{{Start: at(2, 16, 30), End: at(2, 18, 0)}}, free)

	assert.Empty(t, FreeWindows(nil, at(2, 0, 0), time.UTC, busy, at(1, 0, 0)))
}
