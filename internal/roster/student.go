package roster

// Student is one identity record extracted from a roster row.
type Student struct {
	LastName  string
	FirstName string
	Username  string
	StudentID string
	Email     string
}

// Column candidates, tried in order; the first non-empty value wins.
var (
	usernameColumns  = []string{"Username", "username"}
	studentIDColumns = []string{"Student ID", "studentId"}
	lastNameColumns  = []string{"Last Name", "lastName"}
	firstNameColumns = []string{"First Name", "firstName"}
)

// RequiredColumns are the header names a roster must contain.
var RequiredColumns = []string{"Username", "Student ID"}
