package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/khiasu/UniManagePro/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 10, hour, min, 0, 0, time.UTC)
}

type fixture struct {
	store    *memory.Store
	user     *domain.User
	lab      *domain.Resource
	court    *domain.Resource
	bookings *BookingService
}

// newFixture builds a store with a working-hours lab (09:00-15:00), a 24/7
// sports court and one user.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	dept := &domain.Department{ID: uuid.New(), Name: "Physics", Code: "PHYS"}
	require.NoError(t, store.CreateDepartment(ctx, dept))

	user := &domain.User{
		ID: uuid.New(), Username: "sarah.chen", Email: "sarah.chen@university.edu",
		FirstName: "Sarah", LastName: "Chen", Role: domain.RoleFaculty,
	}
	require.NoError(t, store.CreateUser(ctx, user))

	lab := &domain.Resource{
		ID: uuid.New(), Name: "Physics Lab A", Type: "physics_lab",
		DepartmentID: dept.ID, Capacity: 20, Location: "Physics Building",
		IsActive: true, HasWorkingHours: true,
		WorkingHoursStart: "09:00", WorkingHoursEnd: "15:00",
	}
	require.NoError(t, store.CreateResource(ctx, lab))

	court := &domain.Resource{
		ID: uuid.New(), Name: "Basketball Court", Type: "sports_court",
		DepartmentID: dept.ID, Capacity: 100, Location: "Sports Complex",
		IsActive: true, HasWorkingHours: false,
		WorkingHoursStart: "00:00", WorkingHoursEnd: "23:59",
	}
	require.NoError(t, store.CreateResource(ctx, court))

	return &fixture{
		store:    store,
		user:     user,
		lab:      lab,
		court:    court,
		bookings: NewBookingService(store, store),
	}
}

func (f *fixture) addBooking(t *testing.T, resourceID uuid.UUID, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		ID: uuid.New(), ResourceID: resourceID, UserID: f.user.ID,
		StartTime: start, EndTime: end, Status: status,
		Purpose: "lecture", Attendees: 10, CreatedAt: start.Add(-24 * time.Hour),
	}
	require.NoError(t, f.store.CreateBooking(context.Background(), b))
	return b
}

func TestBookingServiceValidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBooking(t, f.lab.ID, at(10, 0), at(11, 0), domain.BookingConfirmed)

	t.Run("overlapping interval is rejected with conflicts", func(t *testing.T) {
		err := f.bookings.Validate(ctx, f.lab.ID, at(10, 30), at(11, 30))
		var be *domain.BookingError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, domain.CodeTimeConflict, be.Code)
		require.Len(t, be.Conflicts, 1)
		assert.Equal(t, at(10, 0), be.Conflicts[0].StartTime)
	})

	t.Run("touching boundary is rejected", func(t *testing.T) {
		err := f.bookings.Validate(ctx, f.lab.ID, at(11, 0), at(12, 0))
		var be *domain.BookingError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, domain.CodeTimeConflict, be.Code)
	})

	t.Run("before working hours is rejected", func(t *testing.T) {
		err := f.bookings.Validate(ctx, f.lab.ID, at(8, 0), at(9, 0))
		var be *domain.BookingError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, domain.CodeOutsideWorkingHours, be.Code)
		assert.Empty(t, be.Conflicts)
	})

	t.Run("past closing time is rejected", func(t *testing.T) {
		err := f.bookings.Validate(ctx, f.lab.ID, at(14, 0), at(15, 30))
		var be *domain.BookingError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, domain.CodeOutsideWorkingHours, be.Code)
	})

	t.Run("free slot inside hours passes", func(t *testing.T) {
		assert.NoError(t, f.bookings.Validate(ctx, f.lab.ID, at(12, 0), at(13, 0)))
	})

	t.Run("working hours checked before conflicts", func(t *testing.T) {
		// Interval both outside hours and overlapping; hours win.
		f.addBooking(t, f.lab.ID, at(7, 0), at(8, 30), domain.BookingConfirmed)
		err := f.bookings.Validate(ctx, f.lab.ID, at(7, 30), at(8, 0))
		var be *domain.BookingError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, domain.CodeOutsideWorkingHours, be.Code)
	})

	t.Run("cancelled bookings do not conflict", func(t *testing.T) {
		f.addBooking(t, f.lab.ID, at(13, 0), at(14, 0), domain.BookingCancelled)
		assert.NoError(t, f.bookings.Validate(ctx, f.lab.ID, at(13, 0), at(14, 0)))
	})

	t.Run("pending bookings do conflict", func(t *testing.T) {
		f.addBooking(t, f.lab.ID, at(11, 30), at(12, 0), domain.BookingPending)
		err := f.bookings.Validate(ctx, f.lab.ID, at(11, 30), at(11, 45))
		var be *domain.BookingError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, domain.CodeTimeConflict, be.Code)
	})

	t.Run("exempt resource ignores working hours", func(t *testing.T) {
		assert.NoError(t, f.bookings.Validate(ctx, f.court.ID, at(5, 0), at(6, 0)))
		assert.NoError(t, f.bookings.Validate(ctx, f.court.ID, at(22, 0), at(23, 30)))
	})

	t.Run("unknown resource", func(t *testing.T) {
		err := f.bookings.Validate(ctx, uuid.New(), at(10, 0), at(11, 0))
		assert.ErrorIs(t, err, domain.ErrResourceNotFound)
	})
}

func TestBookingServiceCreate(t *testing.T) {
	ctx := context.Background()

	input := func(f *fixture, start, end time.Time) domain.BookingCreate {
		return domain.BookingCreate{
			ResourceID: f.lab.ID.String(),
			UserID:     f.user.ID.String(),
			StartTime:  start,
			EndTime:    end,
			Purpose:    "seminar",
			Attendees:  10,
		}
	}

	t.Run("creates pending booking", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.bookings.Create(ctx, input(f, at(10, 0), at(11, 0)))
		require.NoError(t, err)
		assert.Equal(t, domain.BookingPending, created.Status)
		assert.Equal(t, f.lab.ID, created.ResourceID)

		stored, err := f.store.GetBooking(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, created.ID, stored.ID)
	})

	t.Run("rejects inverted interval", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.bookings.Create(ctx, input(f, at(11, 0), at(10, 0)))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("rejects zero-length interval", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.bookings.Create(ctx, input(f, at(10, 0), at(10, 0)))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("rejects attendees over capacity", func(t *testing.T) {
		f := newFixture(t)
		in := input(f, at(10, 0), at(11, 0))
		in.Attendees = f.lab.Capacity + 1
		_, err := f.bookings.Create(ctx, in)
		assert.ErrorIs(t, err, ErrAttendeesExceedCapacity)
	})

	t.Run("rejected booking leaves no trace", func(t *testing.T) {
		f := newFixture(t)
		f.addBooking(t, f.lab.ID, at(10, 0), at(11, 0), domain.BookingConfirmed)

		_, err := f.bookings.Create(ctx, input(f, at(10, 30), at(11, 30)))
		var be *domain.BookingError
		require.ErrorAs(t, err, &be)

		all, err := f.store.ListBookingsByResource(ctx, f.lab.ID)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("racing overlapping requests admit exactly one", func(t *testing.T) {
		f := newFixture(t)

		const n = 8
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.bookings.Create(ctx, input(f, at(10, 0), at(11, 0)))
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			var be *domain.BookingError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, domain.CodeTimeConflict, be.Code)
		}
		assert.Equal(t, 1, succeeded)
	})
}

func TestBookingServiceList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBooking(t, f.lab.ID, at(10, 0), at(11, 0), domain.BookingConfirmed)
	f.addBooking(t, f.court.ID, at(12, 0), at(13, 0), domain.BookingPending)

	t.Run("by user enriches with resource", func(t *testing.T) {
		views, err := f.bookings.List(ctx, &f.user.ID, nil, nil)
		require.NoError(t, err)
		require.Len(t, views, 2)
		for _, v := range views {
			require.NotNil(t, v.Resource)
			assert.Equal(t, v.ResourceID, v.Resource.ID)
		}
	})

	t.Run("by resource", func(t *testing.T) {
		views, err := f.bookings.List(ctx, nil, &f.lab.ID, nil)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, f.lab.ID, views[0].ResourceID)
	})

	t.Run("by date", func(t *testing.T) {
		day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		views, err := f.bookings.List(ctx, nil, nil, &day)
		require.NoError(t, err)
		assert.Len(t, views, 2)

		other := day.AddDate(0, 0, 5)
		views, err = f.bookings.List(ctx, nil, nil, &other)
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}

func TestBookingServiceAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBooking(t, f.lab.ID, at(10, 0), at(11, 0), domain.BookingConfirmed)
	cancelled := f.addBooking(t, f.lab.ID, at(12, 0), at(13, 0), domain.BookingCancelled)

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	out, err := f.bookings.Availability(ctx, f.lab.ID, day)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotEqual(t, cancelled.ID, out[0].ID)

	out, err = f.bookings.Availability(ctx, f.lab.ID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBookingServiceStatusAndCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.addBooking(t, f.lab.ID, at(10, 0), at(11, 0), domain.BookingPending)

	t.Run("update status", func(t *testing.T) {
		updated, err := f.bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, updated.Status)
	})

	t.Run("update unknown booking", func(t *testing.T) {
		_, err := f.bookings.UpdateStatus(ctx, uuid.New(), domain.BookingConfirmed)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})

	t.Run("cancel frees the slot", func(t *testing.T) {
		require.NoError(t, f.bookings.Cancel(ctx, b.ID))
		assert.NoError(t, f.bookings.Validate(ctx, f.lab.ID, at(10, 0), at(11, 0)))
	})

	t.Run("cancel unknown booking", func(t *testing.T) {
		assert.ErrorIs(t, f.bookings.Cancel(ctx, uuid.New()), domain.ErrBookingNotFound)
	})
}
