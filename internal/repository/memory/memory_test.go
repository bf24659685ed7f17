package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreMissingRows(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	user, err := store.GetUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, user)

	resource, err := store.GetResource(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, resource)

	booking, err := store.GetBooking(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, booking)

	updated, err := store.UpdateBookingStatus(ctx, uuid.New(), domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Nil(t, updated)

	ok, err := store.CancelBooking(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreValueIsolation(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	r := &domain.Resource{ID: uuid.New(), Name: "Lab", Capacity: 10, IsActive: true}
	require.NoError(t, store.CreateResource(ctx, r))

	got, err := store.GetResource(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Mutating the returned copy must not change stored state.
	got.Capacity = 99
	again, err := store.GetResource(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, again.Capacity)
}

func TestStoreUpdateResource(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	r := &domain.Resource{
		ID: uuid.New(), Name: "Lab", Capacity: 10, IsActive: true,
		WorkingHoursStart: "09:00", WorkingHoursEnd: "15:00", HasWorkingHours: true,
	}
	require.NoError(t, store.CreateResource(ctx, r))

	capacity := 40
	inactive := false
	updated, err := store.UpdateResource(ctx, r.ID, &domain.ResourceUpdate{
		Capacity: &capacity,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 40, updated.Capacity)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Lab", updated.Name)

	// Inactive resources drop out of listings but remain fetchable by id.
	list, err := store.ListResources(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	got, err := store.GetResource(ctx, r.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestStoreBookingQueries(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	resourceID := uuid.New()
	userID := uuid.New()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mk := func(startHour int) *domain.Booking {
		b := &domain.Booking{
			ID: uuid.New(), ResourceID: resourceID, UserID: userID,
			StartTime: day.Add(time.Duration(startHour) * time.Hour),
			EndTime:   day.Add(time.Duration(startHour+1) * time.Hour),
			Status:    domain.BookingPending, Purpose: "x", Attendees: 1,
		}
		require.NoError(t, store.CreateBooking(ctx, b))
		return b
	}
	mk(9)
	mk(11)
	other := &domain.Booking{
		ID: uuid.New(), ResourceID: uuid.New(), UserID: uuid.New(),
		StartTime: day.AddDate(0, 0, 2).Add(9 * time.Hour),
		EndTime:   day.AddDate(0, 0, 2).Add(10 * time.Hour),
		Status:    domain.BookingPending, Purpose: "y", Attendees: 1,
	}
	require.NoError(t, store.CreateBooking(ctx, other))

	byResource, err := store.ListBookingsByResource(ctx, resourceID)
	require.NoError(t, err)
	assert.Len(t, byResource, 2)

	byUser, err := store.ListBookingsByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	inRange, err := store.ListBookingsByDateRange(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	all, err := store.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSeed(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx))

	depts, err := store.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, depts, 6)

	resources, err := store.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, resources, 7)
	for _, r := range resources {
		if r.Type == "sports_court" {
			assert.False(t, r.HasWorkingHours, r.Name)
		} else {
			assert.True(t, r.HasWorkingHours, r.Name)
			assert.Equal(t, "09:00", r.WorkingHoursStart, r.Name)
			assert.Equal(t, "15:00", r.WorkingHoursEnd, r.Name)
		}
	}

	demo, err := store.GetUserByUsername(ctx, "sarah.chen")
	require.NoError(t, err)
	require.NotNil(t, demo)
	assert.Equal(t, domain.RoleFaculty, demo.Role)
	assert.NotEmpty(t, demo.PasswordHash)
}

func TestCopyInto(t *testing.T) {
	ctx := context.Background()
	src := NewStore()
	require.NoError(t, src.Seed(ctx))

	dst := NewStore()
	require.NoError(t, CopyInto(ctx, src, dst))

	depts, err := dst.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, depts, 6)

	resources, err := dst.ListResources(ctx)
	require.NoError(t, err)
	assert.Len(t, resources, 7)

	demo, err := dst.GetUserByUsername(ctx, "sarah.chen")
	require.NoError(t, err)
	assert.NotNil(t, demo)
}
