package dynamodb

import (
	"testing"

	"coursehub-backend/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyLayout(t *testing.T) {
	courseID := valueobjects.DeriveCourseID("Java", "James")
	regID := valueobjects.DeriveRegistrationID("Andy", courseID)

	t.Run("course metadata row", func(t *testing.T) {
		assert.Equal(t, "COURSE#OFFERING-JAVA-JAMES", coursePK(courseID))
		assert.Equal(t, "METADATA", metadataSortKey)
	})

	t.Run("by-course registration row", func(t *testing.T) {
		assert.Equal(t, "COURSE#OFFERING-JAVA-JAMES", coursePK(courseID))
		assert.Equal(t, "REG#ANDY-OFFERING-JAVA-JAMES", registrationSK(regID))
	})

	t.Run("by-employee registration row", func(t *testing.T) {
		assert.Equal(t, "EMPLOYEE#ANDY@GMAIL.COM", employeePK("andy@gmail.com"))
		assert.Equal(t, "COURSE#OFFERING-JAVA-JAMES", employeeSK(courseID))
	})

	t.Run("email key is case and whitespace insensitive", func(t *testing.T) {
		assert.Equal(t, employeePK("andy@gmail.com"), employeePK(" Andy@Gmail.Com "))
	})

	t.Run("registration sort keys order by registration id", func(t *testing.T) {
		andy := registrationSK(valueobjects.DeriveRegistrationID("Andy", courseID))
		woo := registrationSK(valueobjects.DeriveRegistrationID("Woo", courseID))
		require.Less(t, andy, woo, "query results must come back employee-ordered")
	})
}
