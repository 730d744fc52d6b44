package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullName(t *testing.T) {
	assert.Equal(t, "Anna Maria Ivanova", fullName("Anna", "Maria", "Ivanova"))
	assert.Equal(t, "Anna Ivanova", fullName("Anna", "", "Ivanova"))
	assert.Equal(t, "Anna", fullName("Anna", "", ""))
}

func TestComputeAge(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday already passed this year", time.Date(1994, time.June, 12, 0, 0, 0, 0, time.UTC), 32},
		{"birthday later this year", time.Date(1994, time.December, 1, 0, 0, 0, 0, time.UTC), 31},
		{"birthday today", time.Date(1994, time.August, 28, 0, 0, 0, 0, time.UTC), 32},
		{"birthday tomorrow", time.Date(1994, time.August, 29, 0, 0, 0, 0, time.UTC), 31},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, computeAge(tc.dob, now))
		})
	}
}

func TestBuildEmployee(t *testing.T) {
	req := validReq()

	e := buildEmployee(req.EmployeeID, req, testNow)

	assert.Equal(t, "AB1-CD2-EF3-GH4", e.EmployeeID)
	assert.Equal(t, "Anna Maria Ivanova", e.Name)
	assert.Equal(t, "anna@example.com", e.Email)
	assert.Equal(t, "Engineering", e.Department)
	assert.Nil(t, e.OtherDepartment, "specification is cleared unless department is Other")
	assert.Equal(t, "1994-06-12", e.DOB)
	assert.Equal(t, 32, e.Age, "stored age is derived from dob, not taken from the payload")
	assert.Equal(t, "Female", e.Gender)
}

func TestBuildEmployee_OtherDepartment(t *testing.T) {
	req := validReq()
	req.Department = DepartmentOther
	req.OtherDepartment = "  Research "

	e := buildEmployee(req.EmployeeID, req, testNow)

	require.NotNil(t, e.OtherDepartment)
	assert.Equal(t, "Research", *e.OtherDepartment)
}

func TestBuildEmployee_AgeIgnoresSubmittedValue(t *testing.T) {
	req := validReq()
	req.Age = intPtr(79) // disagrees with dob

	e := buildEmployee(req.EmployeeID, req, testNow)

	assert.Equal(t, 32, e.Age)
}
