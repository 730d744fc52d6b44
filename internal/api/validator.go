package api

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// approxYear matches the original submission-time age window: bounds are
// computed as N*365 days before now, not calendar years.
const approxYear = 365 * 24 * time.Hour

const (
	DepartmentOther = "Other"

	minNameLen  = 4
	minPhoneLen = 7
	minAge      = 18
	maxAge      = 80
)

var (
	regexAlpha      = regexp.MustCompile(`^[A-Za-z]+$`)
	regexAlphaSpace = regexp.MustCompile(`^[A-Za-z ]+$`)
	regexPhone      = regexp.MustCompile(`^[+#\d\s]+$`)
	regexEmployeeID = regexp.MustCompile(`^[A-Za-z0-9]{3}-[A-Za-z0-9]{3}-[A-Za-z0-9]{3}-[A-Za-z0-9]{3}$`)
	regexEmail      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	regexDate       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var allowedDepartments = map[string]struct{}{
	"HR": {}, "Engineering": {}, "Sales": {}, DepartmentOther: {},
}

var allowedGenders = map[string]struct{}{
	"Male": {}, "Female": {}, "Other": {},
}

// employeeReq is the write payload: name parts are still separate here, age is
// a pointer so a missing field is distinguishable from zero.
type employeeReq struct {
	FirstName       string `json:"firstName"`
	MiddleName      string `json:"middleName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	EmployeeID      string `json:"employeeId"`
	Department      string `json:"department"`
	OtherDepartment string `json:"otherDepartment"`
	DateOfJoining   string `json:"dateOfJoining"`
	Role            string `json:"role"`
	DOB             string `json:"dob"`
	Age             *int   `json:"age"`
	Gender          string `json:"gender"`
}

// fieldOrder fixes the order violations are reported in; the first entry with
// an error becomes the single-line message of a 400 response.
var fieldOrder = []string{
	"firstName",
	"middleName",
	"lastName",
	"email",
	"phone",
	"dob",
	"age",
	"gender",
	"employeeId",
	"department",
	"otherDepartment",
	"dateOfJoining",
	"role",
}

// employeeRules is the authoritative validation schema, one rule per wire
// field. Clients do not carry their own copy; they call the validate endpoint.
var employeeRules = map[string]func(employeeReq, time.Time) string{
	"firstName":       checkFirstName,
	"middleName":      checkMiddleName,
	"lastName":        checkLastName,
	"email":           checkEmail,
	"phone":           checkPhone,
	"dob":             checkDOB,
	"age":             checkAge,
	"gender":          checkGender,
	"employeeId":      checkEmployeeID,
	"department":      checkDepartment,
	"otherDepartment": checkOtherDepartment,
	"dateOfJoining":   checkDateOfJoining,
	"role":            checkRole,
}

// validateEmployee checks the full payload and collects every violation
// instead of stopping at the first one.
func validateEmployee(req employeeReq, now time.Time) map[string]string {
	errs := make(map[string]string)

	for _, field := range fieldOrder {
		if msg := employeeRules[field](req, now); msg != "" {
			errs[field] = msg
		}
	}

	return errs
}

// validateEmployeeField checks one field in isolation. An empty message means
// the field is valid; an unknown field name is reported as such.
func validateEmployeeField(req employeeReq, field string, now time.Time) string {
	if !knownField(field) {
		return fmt.Sprintf("unknown field '%s'", field)
	}

	return employeeRules[field](req, now)
}

func knownField(field string) bool {
	_, found := employeeRules[field]
	return found
}

func firstViolation(errs map[string]string) string {
	for _, field := range fieldOrder {
		if msg, found := errs[field]; found {
			return msg
		}
	}

	return ""
}

func checkFirstName(req employeeReq, _ time.Time) string {
	v := req.FirstName
	if v == "" {
		return "First Name is required."
	}
	if !regexAlpha.MatchString(v) {
		return "First Name should only contain alphabets."
	}
	if len(v) < minNameLen {
		return "First Name should be at least 4 characters long."
	}

	return ""
}

func checkMiddleName(req employeeReq, _ time.Time) string {
	if req.MiddleName == "" {
		return ""
	}
	if !regexAlpha.MatchString(req.MiddleName) {
		return "Middle Name should only contain alphabets."
	}

	return ""
}

func checkLastName(req employeeReq, _ time.Time) string {
	v := req.LastName
	if v == "" {
		return "Last Name is required."
	}
	if !regexAlphaSpace.MatchString(v) {
		return "Last Name should only contain alphabets."
	}
	if len(v) < minNameLen {
		return "Last Name should be at least 4 characters long."
	}

	return ""
}

func checkEmail(req employeeReq, _ time.Time) string {
	v := strings.TrimSpace(req.Email)
	if v == "" {
		return "Email is required."
	}
	if !regexEmail.MatchString(v) {
		return "Email must be a valid email address."
	}

	return ""
}

func checkPhone(req employeeReq, _ time.Time) string {
	v := req.Phone
	if v == "" {
		return "Phone number is required."
	}
	if !regexPhone.MatchString(v) {
		return "Phone number should only contain digits."
	}
	if len(v) < minPhoneLen {
		return "Phone number should be at least 7 digits long."
	}

	return ""
}

func checkDOB(req employeeReq, now time.Time) string {
	v := strings.TrimSpace(req.DOB)
	if v == "" {
		return "Date of Birth is required."
	}

	dob, parseErr := parseDate(v)
	if parseErr != "" {
		return fmt.Sprintf("Date of Birth %s", parseErr)
	}

	if !dob.Before(now.Add(-minAge * approxYear)) {
		return "Date of Birth must make the employee at least 18 years old."
	}
	if !dob.After(now.Add(-maxAge * approxYear)) {
		return "Date of Birth must make the employee not older than 80 years."
	}

	// The 365-day window leaves a few days of leap slack around each bound,
	// but the stored age is derived calendar-accurately. Cross-check the
	// derived value so an accepted dob can never yield an age outside 18-80.
	if age := computeAge(dob, now); age < minAge {
		return "Date of Birth must make the employee at least 18 years old."
	} else if age > maxAge {
		return "Date of Birth must make the employee not older than 80 years."
	}

	return ""
}

func checkAge(req employeeReq, _ time.Time) string {
	if req.Age == nil {
		return "Age is required."
	}
	if *req.Age < minAge {
		return "Age must be at least 18."
	}
	if *req.Age > maxAge {
		return "Age must not exceed 80."
	}

	return ""
}

func checkGender(req employeeReq, _ time.Time) string {
	if req.Gender == "" {
		return "Gender is required."
	}
	if _, found := allowedGenders[req.Gender]; !found {
		return "Gender must be Male, Female or Other."
	}

	return ""
}

func checkEmployeeID(req employeeReq, _ time.Time) string {
	v := strings.TrimSpace(req.EmployeeID)
	if v == "" {
		return "Employee ID is required."
	}
	if !regexEmployeeID.MatchString(v) {
		return "Employee ID must be in the format xxx-xxx-xxx-xxx and only contain alphabets, digits, and dashes."
	}

	return ""
}

func checkDepartment(req employeeReq, _ time.Time) string {
	if req.Department == "" {
		return "Department is required."
	}
	if _, found := allowedDepartments[req.Department]; !found {
		return "Department must be one of HR, Engineering, Sales or Other."
	}

	return ""
}

// checkOtherDepartment is the cross-field rule: a specification is mandatory
// exactly when the generic Other department is selected.
func checkOtherDepartment(req employeeReq, _ time.Time) string {
	if req.Department != DepartmentOther {
		return ""
	}
	if strings.TrimSpace(req.OtherDepartment) == "" {
		return "Other Department is required when Department is Other."
	}

	return ""
}

func checkDateOfJoining(req employeeReq, now time.Time) string {
	v := strings.TrimSpace(req.DateOfJoining)
	if v == "" {
		return "Date of Joining is required."
	}

	doj, parseErr := parseDate(v)
	if parseErr != "" {
		return fmt.Sprintf("Date of Joining %s", parseErr)
	}

	if doj.After(now) {
		return "Date of Joining cannot be in the future."
	}
	if !doj.After(now.Add(-maxAge * approxYear)) {
		return "Date of Joining must not be older than 80 years."
	}

	return ""
}

func checkRole(req employeeReq, _ time.Time) string {
	if strings.TrimSpace(req.Role) == "" {
		return "Role is required."
	}

	return ""
}

func parseDate(v string) (time.Time, string) {
	if !regexDate.MatchString(v) {
		return time.Time{}, "must be a valid date in YYYY-MM-DD format."
	}

	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, "must be a valid date in YYYY-MM-DD format."
	}

	return t, ""
}
