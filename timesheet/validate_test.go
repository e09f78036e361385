package timesheet

import (
	"errors"
	"testing"
)

func TestNewHour_ComputesWorkedHours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		entry string
		exit  string
		want  float64
	}{
		{name: "full day", entry: "08:00", exit: "17:00", want: 9.00},
		{name: "half hour", entry: "09:00", exit: "12:30", want: 3.50},
		{name: "shift with minutes", entry: "08:00", exit: "16:30", want: 8.50},
		{name: "one minute", entry: "08:00", exit: "08:01", want: 0.02},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			hour, err := NewHour("2024-03-01", "1", "1", "1", tc.entry, tc.exit)
			if err != nil {
				t.Fatalf("new hour: %v", err)
			}
			if hour.WorkedHours != tc.want {
				t.Fatalf("expected %.2f worked hours, got %.2f", tc.want, hour.WorkedHours)
			}
		})
	}
}

func TestNewHour_RejectsExitNotAfterEntry(t *testing.T) {
	t.Parallel()

	for _, exit := range []string{"08:00", "07:59"} {
		_, err := NewHour("2024-03-01", "1", "1", "1", "08:00", exit)

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error for exit %s, got %v", exit, err)
		}
		if vErr.Field != "exit" || vErr.Reason != "exit must be after entry" {
			t.Fatalf("unexpected validation error: %v", vErr)
		}
	}
}

func TestNewHour_RejectsMalformedInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		date      string
		personID  string
		entry     string
		wantField string
	}{
		{name: "bad date", date: "01/03/2024", personID: "1", entry: "08:00", wantField: "date"},
		{name: "bad person id", date: "2024-03-01", personID: "ana", entry: "08:00", wantField: "person"},
		{name: "bad entry time", date: "2024-03-01", personID: "1", entry: "8 am", wantField: "entry"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewHour(tc.date, tc.personID, "1", "1", tc.entry, "17:00")

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if vErr.Field != tc.wantField {
				t.Fatalf("expected field %q, got %q", tc.wantField, vErr.Field)
			}
		})
	}
}

func TestNewPerson_TrimsAndChecksClassification(t *testing.T) {
	t.Parallel()

	person, err := NewPerson("  Ana  ", "Direct")
	if err != nil {
		t.Fatalf("new person: %v", err)
	}
	if person.Name != "Ana" {
		t.Fatalf("expected trimmed name, got %q", person.Name)
	}

	if _, err := NewPerson("   ", "Direct"); err == nil {
		t.Fatal("expected blank name to be rejected")
	}
	_, err = NewPerson("Ana", "Contractor")
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "classification" {
		t.Fatalf("expected classification validation error, got %v", err)
	}
}

func TestNewTeam_RequiresCodeAndDescription(t *testing.T) {
	t.Parallel()

	if _, err := NewTeam("", "Line 1"); err == nil {
		t.Fatal("expected blank code to be rejected")
	}
	if _, err := NewTeam("T1", " "); err == nil {
		t.Fatal("expected blank description to be rejected")
	}

	team, err := NewTeam(" T1 ", " Line 1 ")
	if err != nil {
		t.Fatalf("new team: %v", err)
	}
	if team.Code != "T1" || team.Description != "Line 1" {
		t.Fatalf("unexpected team fields: %+v", team)
	}
}

func TestNewProject_EnforcesFiveDigitNumber(t *testing.T) {
	t.Parallel()

	for _, number := range []string{"9999", "100000", "0", "-12345", "abc"} {
		_, err := NewProject(number, "Acme", "Widgets")
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "number" {
			t.Fatalf("expected number validation error for %q, got %v", number, err)
		}
	}

	project, err := NewProject("12345", "Acme", "Widgets")
	if err != nil {
		t.Fatalf("new project: %v", err)
	}
	if project.Number != 12345 {
		t.Fatalf("expected number 12345, got %d", project.Number)
	}
}
