package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomEmployee(t *testing.T) {
	for i := 0; i < 100; i++ {
		employee := GenerateRandomEmployee()

		assert.NotEmpty(t, employee.FirstName)
		assert.NotEmpty(t, employee.LastName)
		assert.Zero(t, employee.ID, "id is assigned by the store, not the generator")

		if employee.BirthDate != nil {
			assert.NotNil(t, employee.HireDate)
			assert.True(t, employee.HireDate.After(*employee.BirthDate))
		}
		if employee.Title != nil {
			assert.NotEmpty(t, *employee.Title)
		}
	}
}
