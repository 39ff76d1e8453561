package valueobjects

import (
	"testing"

	pkgerrors "coursehub-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveRegistrationID(t *testing.T) {
	courseID := DeriveCourseID("Java", "James")

	tests := []struct {
		name     string
		employee string
		expected string
	}{
		{
			name:     "uppercases the employee segment",
			employee: "Andy",
			expected: "ANDY-OFFERING-JAVA-JAMES",
		},
		{
			name:     "trims surrounding whitespace",
			employee: " Woo ",
			expected: "WOO-OFFERING-JAVA-JAMES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := DeriveRegistrationID(tt.employee, courseID)
			assert.Equal(t, tt.expected, id.String())
		})
	}
}

func TestRegistrationID_CourseID(t *testing.T) {
	t.Run("recovers the owning course", func(t *testing.T) {
		courseID := DeriveCourseID("Java", "James")
		rid := DeriveRegistrationID("Andy", courseID)

		recovered, err := rid.CourseID()
		require.NoError(t, err)
		assert.True(t, courseID.Equals(recovered))
	})

	t.Run("recovery survives a string round trip", func(t *testing.T) {
		rid, err := NewRegistrationIDFromString("ANDY-OFFERING-JAVA-JAMES")
		require.NoError(t, err)

		recovered, err := rid.CourseID()
		require.NoError(t, err)
		assert.Equal(t, "OFFERING-JAVA-JAMES", recovered.String())
	})
}

func TestNewRegistrationIDFromString(t *testing.T) {
	t.Run("rejects empty", func(t *testing.T) {
		_, err := NewRegistrationIDFromString("")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects an id with no embedded course", func(t *testing.T) {
		_, err := NewRegistrationIDFromString("ANDY")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects an id whose remainder is not a course id", func(t *testing.T) {
		_, err := NewRegistrationIDFromString("ANDY-JAVA-JAMES")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}
