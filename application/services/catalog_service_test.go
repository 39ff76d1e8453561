package services

import (
	"context"
	"testing"
	"time"

	pkgerrors "coursehub-backend/pkg/errors"
	"coursehub-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixture wires every workflow service against one shared in-memory store
type fixture struct {
	store        *memStore
	catalog      *CatalogService
	registration *RegistrationService
	allotment    *AllotmentService
	cancellation *CancellationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	regs := &memRegistrations{store: store}
	writes := &memWriteSetFactory{store: store}
	logger := zap.NewNop()

	return &fixture{
		store:        store,
		catalog:      NewCatalogService(store, regs, logger),
		registration: NewRegistrationService(store, regs, writes, logger),
		allotment:    NewAllotmentService(store, regs, writes, logger),
		cancellation: NewCancellationService(store, regs, writes, logger),
	}
}

func futureDateString() string {
	return time.Now().AddDate(0, 0, 30).Format(utils.DateLayout)
}

func (f *fixture) mustCreateOffering(t *testing.T, name, instructor string, minSeats, maxSeats int) string {
	t.Helper()
	course, err := f.catalog.CreateOffering(context.Background(), CreateOfferingInput{
		Name:       name,
		Instructor: instructor,
		StartDate:  futureDateString(),
		MinSeats:   minSeats,
		MaxSeats:   maxSeats,
	})
	require.NoError(t, err)
	return course.ID().String()
}

func TestCatalogService_CreateOffering(t *testing.T) {
	t.Run("derives the offering id from name and instructor", func(t *testing.T) {
		f := newFixture(t)

		course, err := f.catalog.CreateOffering(context.Background(), CreateOfferingInput{
			Name:       "Java",
			Instructor: "James",
			StartDate:  futureDateString(),
			MinSeats:   1,
			MaxSeats:   2,
		})
		require.NoError(t, err)

		assert.Equal(t, "OFFERING-JAVA-JAMES", course.ID().String())
		assert.Equal(t, 0, course.CurrentCount())
		assert.False(t, course.IsAllotted())
	})

	t.Run("duplicate derived id conflicts", func(t *testing.T) {
		f := newFixture(t)
		f.mustCreateOffering(t, "Java", "James", 1, 2)

		_, err := f.catalog.CreateOffering(context.Background(), CreateOfferingInput{
			Name:       "java",
			Instructor: "JAMES",
			StartDate:  futureDateString(),
			MinSeats:   1,
			MaxSeats:   5,
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsConflict(err))
	})

	t.Run("rejects a malformed start date", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.catalog.CreateOffering(context.Background(), CreateOfferingInput{
			Name:       "Java",
			Instructor: "James",
			StartDate:  "15-06-2027",
			MinSeats:   1,
			MaxSeats:   2,
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects min seats above max seats", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.catalog.CreateOffering(context.Background(), CreateOfferingInput{
			Name:       "Java",
			Instructor: "James",
			StartDate:  futureDateString(),
			MinSeats:   3,
			MaxSeats:   2,
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestCatalogService_GetOffering(t *testing.T) {
	f := newFixture(t)
	courseID := f.mustCreateOffering(t, "Java", "James", 1, 2)

	t.Run("returns an existing offering", func(t *testing.T) {
		course, err := f.catalog.GetOffering(context.Background(), courseID)
		require.NoError(t, err)
		assert.Equal(t, courseID, course.ID().String())
	})

	t.Run("unknown offering is not found", func(t *testing.T) {
		_, err := f.catalog.GetOffering(context.Background(), "OFFERING-GO-ROB")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestCatalogService_ListRegistrations(t *testing.T) {
	t.Run("unknown course is not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.catalog.ListRegistrations(context.Background(), "OFFERING-GO-ROB")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("empty course lists no registrations", func(t *testing.T) {
		f := newFixture(t)
		courseID := f.mustCreateOffering(t, "Java", "James", 1, 2)

		regs, err := f.catalog.ListRegistrations(context.Background(), courseID)
		require.NoError(t, err)
		assert.Empty(t, regs)
	})

	t.Run("registrations come back sorted by id", func(t *testing.T) {
		f := newFixture(t)
		courseID := f.mustCreateOffering(t, "Java", "James", 1, 3)

		for _, emp := range []struct{ name, email string }{
			{"Woo", "woo@gmail.com"},
			{"Andy", "andy@gmail.com"},
			{"Jhon", "jhon@gmail.com"},
		} {
			_, err := f.registration.Register(context.Background(), courseID, emp.name, emp.email)
			require.NoError(t, err)
		}

		regs, err := f.catalog.ListRegistrations(context.Background(), courseID)
		require.NoError(t, err)
		require.Len(t, regs, 3)
		assert.Equal(t, "ANDY-OFFERING-JAVA-JAMES", regs[0].ID().String())
		assert.Equal(t, "JHON-OFFERING-JAVA-JAMES", regs[1].ID().String())
		assert.Equal(t, "WOO-OFFERING-JAVA-JAMES", regs[2].ID().String())
	})
}
