package api

import (
	"strings"
	"time"

	"employee-registry/internal/dto"
)

// buildEmployee turns a validated payload into the stored record shape:
// name parts collapse into one full name, the department specification is
// resolved to null unless Other is selected, and age is derived from dob so
// the stored pair can never disagree.
func buildEmployee(employeeID string, req employeeReq, now time.Time) dto.Employee {
	var other *string
	if req.Department == DepartmentOther {
		v := strings.TrimSpace(req.OtherDepartment)
		other = &v
	}

	dob, _ := time.Parse(dateLayout, strings.TrimSpace(req.DOB))

	return dto.Employee{
		EmployeeID:      employeeID,
		Name:            fullName(req.FirstName, req.MiddleName, req.LastName),
		Email:           strings.TrimSpace(req.Email),
		Phone:           req.Phone,
		Department:      req.Department,
		OtherDepartment: other,
		DateOfJoining:   strings.TrimSpace(req.DateOfJoining),
		Role:            req.Role,
		DOB:             strings.TrimSpace(req.DOB),
		Age:             computeAge(dob, now),
		Gender:          req.Gender,
	}
}

// fullName joins the non-empty name parts with single spaces.
func fullName(first, middle, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, middle, last} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, " ")
}

// computeAge is calendar-accurate: year difference, decremented while the
// birthday has not yet occurred this year.
func computeAge(dob, now time.Time) int {
	age := now.Year() - dob.Year()

	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}

	return age
}
