package entities

import (
	"testing"
	"time"

	"coursehub-backend/domain/core/valueobjects"
	pkgerrors "coursehub-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistration(t *testing.T) {
	courseID := valueobjects.DeriveCourseID("Java", "James")

	t.Run("valid registration starts accepted", func(t *testing.T) {
		reg, err := NewRegistration("Andy", "andy@gmail.com", courseID)
		require.NoError(t, err)

		assert.Equal(t, "ANDY-OFFERING-JAVA-JAMES", reg.ID().String())
		assert.Equal(t, RegistrationStatusAccepted, reg.Status())
		assert.False(t, reg.IsTerminal())
	})

	t.Run("trims name and email", func(t *testing.T) {
		reg, err := NewRegistration(" Andy ", " andy@gmail.com ", courseID)
		require.NoError(t, err)
		assert.Equal(t, "Andy", reg.EmployeeName())
		assert.Equal(t, "andy@gmail.com", reg.Email())
	})

	tests := []struct {
		name     string
		employee string
		email    string
	}{
		{"empty employee name", "", "andy@gmail.com"},
		{"empty email", "Andy", ""},
		{"email without at sign", "Andy", "andy.gmail.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistration(tt.employee, tt.email, courseID)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}

	t.Run("zero course id", func(t *testing.T) {
		_, err := NewRegistration("Andy", "andy@gmail.com", valueobjects.CourseID{})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestRegistration_Finalize(t *testing.T) {
	courseID := valueobjects.DeriveCourseID("Java", "James")

	newAccepted := func(t *testing.T) *Registration {
		t.Helper()
		reg, err := NewRegistration("Andy", "andy@gmail.com", courseID)
		require.NoError(t, err)
		return reg
	}

	t.Run("confirmed course confirms the registration", func(t *testing.T) {
		reg := newAccepted(t)
		require.NoError(t, reg.Finalize(CourseStatusConfirmed))
		assert.Equal(t, RegistrationStatusConfirmed, reg.Status())
		assert.True(t, reg.IsTerminal())
	})

	t.Run("canceled course cancels the registration", func(t *testing.T) {
		reg := newAccepted(t)
		require.NoError(t, reg.Finalize(CourseStatusCanceled))
		assert.Equal(t, RegistrationStatusCourseCanceled, reg.Status())
	})

	t.Run("terminal registrations refuse a second transition", func(t *testing.T) {
		reg := newAccepted(t)
		require.NoError(t, reg.Finalize(CourseStatusConfirmed))

		err := reg.Finalize(CourseStatusCanceled)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsConflict(err))
		assert.Equal(t, RegistrationStatusConfirmed, reg.Status())
	})

	t.Run("active is not an allotment outcome", func(t *testing.T) {
		reg := newAccepted(t)
		require.Error(t, reg.Finalize(CourseStatusActive))
	})
}

func TestReconstructRegistration(t *testing.T) {
	courseID := valueobjects.DeriveCourseID("Java", "James")
	rid := valueobjects.DeriveRegistrationID("Andy", courseID)

	t.Run("preserves stored state", func(t *testing.T) {
		reg, err := ReconstructRegistration(rid, "Andy", "andy@gmail.com", courseID, RegistrationStatusConfirmed, time.Now())
		require.NoError(t, err)
		assert.Equal(t, RegistrationStatusConfirmed, reg.Status())
	})

	t.Run("defaults a missing status to accepted", func(t *testing.T) {
		reg, err := ReconstructRegistration(rid, "Andy", "andy@gmail.com", courseID, "", time.Now())
		require.NoError(t, err)
		assert.Equal(t, RegistrationStatusAccepted, reg.Status())
	})
}
