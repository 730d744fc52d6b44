package dto

// Employee — a persisted employee record as it appears on the wire.
// The three name parts submitted on create/update are collapsed into Name at
// write time and are not retained individually.
type Employee struct {
	EmployeeID      string  `json:"employeeId" example:"AB1-CD2-EF3-GH4"` // Employee ID (xxx-xxx-xxx-xxx)
	Name            string  `json:"name" example:"Anna Maria Ivanova"`    // Full name, denormalised
	Email           string  `json:"email" example:"anna@example.com"`     // Unique e-mail
	Phone           string  `json:"phone" example:"+1 555 0100"`          // Phone number
	Department      string  `json:"department" example:"Engineering"`     // HR | Engineering | Sales | Other
	OtherDepartment *string `json:"otherDepartment" example:"Research"`   // Set only when Department is Other
	DateOfJoining   string  `json:"dateOfJoining" example:"2021-03-15"`   // YYYY-MM-DD
	Role            string  `json:"role" example:"QA Engineer"`           // Free text
	DOB             string  `json:"dob" example:"1994-06-12"`             // YYYY-MM-DD
	Age             int     `json:"age" example:"31"`                     // Derived from DOB at write time
	Gender          string  `json:"gender" example:"Female"`              // Male | Female | Other
}
