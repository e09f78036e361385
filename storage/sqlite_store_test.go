package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"hourdesk/timesheet"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "hourdesk_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_ProjectNumberIsUnique(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	if _, err := store.InsertProject(timesheet.Project{Number: 12345, Client: "Acme", Description: "Widgets"}); err != nil {
		t.Fatalf("insert project: %v", err)
	}

	_, err := store.InsertProject(timesheet.Project{Number: 12345, Client: "Other", Description: "Gadgets"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	projects, err := store.ListProjects()
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project after conflict, got %d", len(projects))
	}
	if projects[0].Client != "Acme" {
		t.Fatalf("expected first insert to win, got %+v", projects[0])
	}
}

func TestSQLiteStore_UsernameIsUnique(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	if _, err := store.InsertUser(timesheet.User{Username: "admin", PasswordHash: "x", Role: timesheet.RoleSupervisor}); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	_, err := store.InsertUser(timesheet.User{Username: "admin", PasswordHash: "y", Role: timesheet.RoleOther})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	user, found, err := store.GetUserByUsername("admin")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !found {
		t.Fatal("expected user to exist")
	}
	if user.PasswordHash != "x" || user.Role != timesheet.RoleSupervisor {
		t.Fatalf("expected first insert to win, got %+v", user)
	}
}

func TestSQLiteStore_InsertHourRejectsUnknownReferences(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	personID, err := store.InsertPerson(timesheet.Person{Name: "Ana", Classification: timesheet.ClassificationDirect})
	if err != nil {
		t.Fatalf("insert person: %v", err)
	}
	teamID, err := store.InsertTeam(timesheet.Team{Code: "T1", Description: "Line 1"})
	if err != nil {
		t.Fatalf("insert team: %v", err)
	}

	_, err = store.InsertHour(timesheet.Hour{
		Date:        "2024-03-01",
		PersonID:    personID,
		TeamID:      teamID,
		ProjectID:   999,
		Entry:       "08:00",
		Exit:        "16:30",
		WorkedHours: 8.5,
	})
	if !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}

	hours, err := store.ListHours()
	if err != nil {
		t.Fatalf("list hours: %v", err)
	}
	if len(hours) != 0 {
		t.Fatalf("expected rejected hour to leave store unchanged, got %d rows", len(hours))
	}
}

func TestSQLiteStore_ListHoursSortsByDateThenInsertion(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	personID, err := store.InsertPerson(timesheet.Person{Name: "Ana", Classification: timesheet.ClassificationDirect})
	if err != nil {
		t.Fatalf("insert person: %v", err)
	}
	teamID, err := store.InsertTeam(timesheet.Team{Code: "T1", Description: "Line 1"})
	if err != nil {
		t.Fatalf("insert team: %v", err)
	}
	projectID, err := store.InsertProject(timesheet.Project{Number: 12345, Client: "Acme", Description: "Widgets"})
	if err != nil {
		t.Fatalf("insert project: %v", err)
	}

	base := timesheet.Hour{PersonID: personID, TeamID: teamID, ProjectID: projectID}
	inserts := []timesheet.Hour{
		{Date: "2024-01-02", Entry: "08:00", Exit: "17:00", WorkedHours: 9.00},
		{Date: "2024-01-01", Entry: "09:00", Exit: "12:30", WorkedHours: 3.50},
		{Date: "2024-01-01", Entry: "13:00", Exit: "14:00", WorkedHours: 1.00},
	}
	for _, hour := range inserts {
		hour.PersonID = base.PersonID
		hour.TeamID = base.TeamID
		hour.ProjectID = base.ProjectID
		if _, err := store.InsertHour(hour); err != nil {
			t.Fatalf("insert hour %s: %v", hour.Date, err)
		}
	}

	hours, err := store.ListHours()
	if err != nil {
		t.Fatalf("list hours: %v", err)
	}
	if len(hours) != 3 {
		t.Fatalf("expected 3 hours, got %d", len(hours))
	}

	wantOrder := []string{"09:00", "13:00", "08:00"}
	for i, entry := range wantOrder {
		if hours[i].Entry != entry {
			t.Fatalf("row %d: expected entry %s, got %s", i, entry, hours[i].Entry)
		}
	}
	if hours[0].Date != "2024-01-01" || hours[2].Date != "2024-01-02" {
		t.Fatalf("expected date-ascending order, got %+v", hours)
	}
}
