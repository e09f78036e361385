// Package timesheet holds the record types shared by storage, web, and
// output, plus the pure validation and worked-duration rules for each kind.
package timesheet

const (
	RoleSupervisor = "supervisor"
	RoleOther      = "other"
)

const (
	ClassificationDirect   = "Direct"
	ClassificationIndirect = "Indirect"
)

// User is a login credential. PasswordHash is a bcrypt hash; the plaintext
// password never reaches storage or logs.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
}

type Person struct {
	ID             int64
	Name           string `validate:"required"`
	Classification string `validate:"oneof=Direct Indirect"`
}

type Team struct {
	ID          int64
	Code        string `validate:"required"`
	Description string `validate:"required"`
}

type Project struct {
	ID          int64
	Number      int    `validate:"gte=10000,lte=99999"`
	Client      string `validate:"required"`
	Description string `validate:"required"`
}

// Hour is one logged work interval. Person/Team/Project are weak integer
// references resolved to labels only at display and export time.
type Hour struct {
	ID          int64
	Date        string
	PersonID    int64
	TeamID      int64
	ProjectID   int64
	Entry       string
	Exit        string
	WorkedHours float64
}
