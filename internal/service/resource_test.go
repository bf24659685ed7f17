package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResourceService(f *fixture, now time.Time) *ResourceService {
	svc := NewResourceService(f.store, f.store, f.store)
	svc.now = func() time.Time { return now }
	return svc
}

func TestResourceServiceStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewResourceService(f.store, f.store, f.store)

	t.Run("no bookings means available", func(t *testing.T) {
		status, err := svc.Status(ctx, f.lab.ID, at(10, 0))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAvailable, status)
	})

	f.addBooking(t, f.lab.ID, at(10, 0), at(11, 0), domain.BookingConfirmed)

	t.Run("covering booking means ongoing", func(t *testing.T) {
		status, err := svc.Status(ctx, f.lab.ID, at(10, 30))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOngoing, status)
	})

	t.Run("ongoing at the start instant", func(t *testing.T) {
		status, err := svc.Status(ctx, f.lab.ID, at(10, 0))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOngoing, status)
	})

	t.Run("not ongoing at the end instant", func(t *testing.T) {
		status, err := svc.Status(ctx, f.lab.ID, at(11, 0))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAvailable, status)
	})

	t.Run("future booking means booked", func(t *testing.T) {
		status, err := svc.Status(ctx, f.lab.ID, at(9, 0))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusBooked, status)
	})

	t.Run("past booking means available", func(t *testing.T) {
		status, err := svc.Status(ctx, f.lab.ID, at(12, 0))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAvailable, status)
	})

	t.Run("pending bookings never drive status", func(t *testing.T) {
		f.addBooking(t, f.court.ID, at(10, 0), at(11, 0), domain.BookingPending)
		status, err := svc.Status(ctx, f.court.ID, at(10, 30))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAvailable, status)
	})

	t.Run("cancelled bookings never drive status", func(t *testing.T) {
		b := f.addBooking(t, f.court.ID, at(12, 0), at(13, 0), domain.BookingConfirmed)
		_, err := f.store.UpdateBookingStatus(ctx, b.ID, domain.BookingCancelled)
		require.NoError(t, err)
		status, err := svc.Status(ctx, f.court.ID, at(12, 30))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAvailable, status)
	})
}

func TestResourceServiceList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBooking(t, f.lab.ID, at(10, 0), at(11, 0), domain.BookingConfirmed)
	svc := newResourceService(f, at(10, 30))

	t.Run("all resources with department and status", func(t *testing.T) {
		views, err := svc.List(ctx, nil, "")
		require.NoError(t, err)
		require.Len(t, views, 2)

		byName := make(map[string]domain.ResourceView, len(views))
		for _, v := range views {
			require.NotNil(t, v.Department, v.Name)
			assert.Equal(t, "PHYS", v.Department.Code)
			byName[v.Name] = v
		}
		assert.Equal(t, domain.StatusOngoing, byName["Physics Lab A"].Status)
		assert.Equal(t, domain.StatusAvailable, byName["Basketball Court"].Status)
	})

	t.Run("filter by type", func(t *testing.T) {
		views, err := svc.List(ctx, nil, "sports_court")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Basketball Court", views[0].Name)
	})

	t.Run("filter by department", func(t *testing.T) {
		views, err := svc.List(ctx, &f.lab.DepartmentID, "")
		require.NoError(t, err)
		assert.Len(t, views, 2)

		unknown := uuid.New()
		views, err = svc.List(ctx, &unknown, "")
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}

func TestResourceServiceGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newResourceService(f, at(10, 0))

	view, err := svc.Get(ctx, f.lab.ID)
	require.NoError(t, err)
	assert.Equal(t, f.lab.Name, view.Name)
	require.NotNil(t, view.Department)
	assert.Equal(t, domain.StatusAvailable, view.Status)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestResourceServiceCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newResourceService(f, at(9, 0))

	t.Run("defaults working hours", func(t *testing.T) {
		created, err := svc.Create(ctx, domain.ResourceCreate{
			Name: "Seminar Hall B", Type: "seminar_hall",
			DepartmentID: f.lab.DepartmentID.String(),
			Capacity:     40, Location: "Academic Block",
		})
		require.NoError(t, err)
		assert.True(t, created.IsActive)
		assert.True(t, created.HasWorkingHours)
		assert.Equal(t, "09:00", created.WorkingHoursStart)
		assert.Equal(t, "15:00", created.WorkingHoursEnd)
	})

	t.Run("override working hours", func(t *testing.T) {
		exempt := false
		created, err := svc.Create(ctx, domain.ResourceCreate{
			Name: "Tennis Court", Type: "sports_court",
			DepartmentID: f.lab.DepartmentID.String(),
			Capacity:     4, Location: "Sports Complex",
			WorkingHoursStart: "06:00", WorkingHoursEnd: "22:00",
			HasWorkingHours: &exempt,
		})
		require.NoError(t, err)
		assert.False(t, created.HasWorkingHours)
		assert.Equal(t, "06:00", created.WorkingHoursStart)
	})

	t.Run("malformed working hours", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.ResourceCreate{
			Name: "Bad Lab", Type: "lab",
			DepartmentID: f.lab.DepartmentID.String(),
			Capacity:     10, Location: "Nowhere",
			WorkingHoursStart: "25:00",
		})
		assert.Error(t, err)
	})

	t.Run("unknown department", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.ResourceCreate{
			Name: "Orphan Lab", Type: "lab",
			DepartmentID: uuid.NewString(),
			Capacity:     10, Location: "Nowhere",
		})
		assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
	})
}

func TestResourceServiceUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newResourceService(f, at(9, 0))

	t.Run("partial update", func(t *testing.T) {
		capacity := 25
		inactive := false
		updated, err := svc.Update(ctx, f.lab.ID, domain.ResourceUpdate{
			Capacity: &capacity,
			IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, 25, updated.Capacity)
		assert.False(t, updated.IsActive)
		// Untouched fields survive.
		assert.Equal(t, f.lab.Name, updated.Name)
		assert.Equal(t, "09:00", updated.WorkingHoursStart)
	})

	t.Run("malformed hours rejected before hitting store", func(t *testing.T) {
		bad := "9:99"
		_, err := svc.Update(ctx, f.lab.ID, domain.ResourceUpdate{WorkingHoursStart: &bad})
		assert.Error(t, err)
	})

	t.Run("unknown resource", func(t *testing.T) {
		name := "anything"
		_, err := svc.Update(ctx, uuid.New(), domain.ResourceUpdate{Name: &name})
		assert.ErrorIs(t, err, domain.ErrResourceNotFound)
	})
}
