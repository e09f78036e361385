package timesheet

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports one rejected input field. It is safe to show to
// the user verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var validate = validator.New()

// NewPerson validates raw form values and returns a Person ready to insert.
func NewPerson(name, classification string) (Person, error) {
	person := Person{
		Name:           strings.TrimSpace(name),
		Classification: strings.TrimSpace(classification),
	}
	if err := checkStruct(person); err != nil {
		return Person{}, err
	}
	return person, nil
}

func NewTeam(code, description string) (Team, error) {
	team := Team{
		Code:        strings.TrimSpace(code),
		Description: strings.TrimSpace(description),
	}
	if err := checkStruct(team); err != nil {
		return Team{}, err
	}
	return team, nil
}

// NewProject validates raw form values. Number uniqueness is the store's
// concern; only the 5-digit range is checked here.
func NewProject(number, client, description string) (Project, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil {
		return Project{}, &ValidationError{Field: "number", Reason: "must be an integer"}
	}

	project := Project{
		Number:      parsed,
		Client:      strings.TrimSpace(client),
		Description: strings.TrimSpace(description),
	}
	if err := checkStruct(project); err != nil {
		return Project{}, err
	}
	return project, nil
}

// NewHour validates raw form values and derives the worked duration. Exit
// must be strictly after entry on the same calendar date; an equal or
// earlier exit is rejected, never wrapped to the next day.
func NewHour(date, personID, teamID, projectID, entry, exit string) (Hour, error) {
	day, err := parseDate(date)
	if err != nil {
		return Hour{}, &ValidationError{Field: "date", Reason: "must be a date in YYYY-MM-DD format"}
	}

	person, err := parseReference(personID)
	if err != nil {
		return Hour{}, &ValidationError{Field: "person", Reason: "must be an integer id"}
	}
	team, err := parseReference(teamID)
	if err != nil {
		return Hour{}, &ValidationError{Field: "team", Reason: "must be an integer id"}
	}
	project, err := parseReference(projectID)
	if err != nil {
		return Hour{}, &ValidationError{Field: "project", Reason: "must be an integer id"}
	}

	entryMins, err := parseClockMinutes(entry)
	if err != nil {
		return Hour{}, &ValidationError{Field: "entry", Reason: "must be a time in HH:MM format"}
	}
	exitMins, err := parseClockMinutes(exit)
	if err != nil {
		return Hour{}, &ValidationError{Field: "exit", Reason: "must be a time in HH:MM format"}
	}
	if exitMins <= entryMins {
		return Hour{}, &ValidationError{Field: "exit", Reason: "exit must be after entry"}
	}

	return Hour{
		Date:        day,
		PersonID:    person,
		TeamID:      team,
		ProjectID:   project,
		Entry:       fmt.Sprintf("%02d:%02d", entryMins/60, entryMins%60),
		Exit:        fmt.Sprintf("%02d:%02d", exitMins/60, exitMins%60),
		WorkedHours: WorkedHours(entryMins, exitMins),
	}, nil
}

// WorkedHours converts an entry/exit minute pair into fractional hours,
// rounded to two decimal places. No break deduction.
func WorkedHours(entryMins, exitMins int) float64 {
	return math.Round(float64(exitMins-entryMins)/60*100) / 100
}

func checkStruct(value any) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate record: %w", err)
	}
	first := fieldErrs[0]
	return &ValidationError{
		Field:  strings.ToLower(first.Field()),
		Reason: reasonForTag(first.Tag()),
	}
}

func reasonForTag(tag string) string {
	switch tag {
	case "required":
		return "must not be empty"
	case "oneof":
		return "must be Direct or Indirect"
	case "gte", "lte":
		return "must be a 5-digit number between 10000 and 99999"
	default:
		return "is invalid"
	}
}

func parseDate(value string) (string, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	return parsed.Format("2006-01-02"), nil
}

func parseClockMinutes(value string) (int, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func parseReference(value string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("reference id must be > 0")
	}
	return parsed, nil
}
