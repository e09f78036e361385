package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"hourdesk/timesheet"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

// ErrConflict is returned when an insert would violate a uniqueness
// constraint (users.username, projects.number). The constraint lives in the
// schema, so the check and the insert are one atomic statement.
var ErrConflict = errors.New("record already exists")

// ErrUnknownReference is returned when an hour entry points at a person,
// team, or project id that does not exist.
var ErrUnknownReference = errors.New("referenced record does not exist")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS people (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	classification TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS teams (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT NOT NULL,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	number INTEGER NOT NULL UNIQUE,
	client TEXT NOT NULL,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS hours (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	person_id INTEGER NOT NULL,
	team_id INTEGER NOT NULL,
	project_id INTEGER NOT NULL,
	entry TEXT NOT NULL,
	exit TEXT NOT NULL,
	worked_hours REAL NOT NULL,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertUser stores a credential. The password must already be hashed by the
// caller; this layer never sees plaintext.
func (s *SQLiteStore) InsertUser(user timesheet.User) (int64, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO users (username, password_hash, role) VALUES (?, ?, ?);`,
		user.Username,
		user.PasswordHash,
		user.Role,
	)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return insertedID(res, "user")
}

func (s *SQLiteStore) GetUserByUsername(username string) (timesheet.User, bool, error) {
	var user timesheet.User
	err := s.db.QueryRow(
		`SELECT id, username, password_hash, role FROM users WHERE username = ?;`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return timesheet.User{}, false, nil
		}
		return timesheet.User{}, false, fmt.Errorf("query user %q: %w", username, err)
	}
	return user, true, nil
}

func (s *SQLiteStore) CountUsers() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) InsertPerson(person timesheet.Person) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO people (name, classification) VALUES (?, ?);`,
		person.Name,
		person.Classification,
	)
	if err != nil {
		return 0, fmt.Errorf("insert person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted person id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) ListPeople() ([]timesheet.Person, error) {
	rows, err := s.db.Query(`SELECT id, name, classification FROM people ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}
	defer rows.Close()

	people := make([]timesheet.Person, 0, 32)
	for rows.Next() {
		var person timesheet.Person
		if err := rows.Scan(&person.ID, &person.Name, &person.Classification); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return people, nil
}

func (s *SQLiteStore) InsertTeam(team timesheet.Team) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO teams (code, description) VALUES (?, ?);`,
		team.Code,
		team.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("insert team: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted team id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) ListTeams() ([]timesheet.Team, error) {
	rows, err := s.db.Query(`SELECT id, code, description FROM teams ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]timesheet.Team, 0, 32)
	for rows.Next() {
		var team timesheet.Team
		if err := rows.Scan(&team.ID, &team.Code, &team.Description); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

// InsertProject relies on the UNIQUE(number) constraint: two concurrent
// inserts with the same number cannot both report success.
func (s *SQLiteStore) InsertProject(project timesheet.Project) (int64, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO projects (number, client, description) VALUES (?, ?, ?);`,
		project.Number,
		project.Client,
		project.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	return insertedID(res, "project")
}

func (s *SQLiteStore) ListProjects() ([]timesheet.Project, error) {
	rows, err := s.db.Query(`SELECT id, number, client, description FROM projects ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]timesheet.Project, 0, 32)
	for rows.Next() {
		var project timesheet.Project
		if err := rows.Scan(&project.ID, &project.Number, &project.Client, &project.Description); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// InsertHour verifies the three references and inserts inside one
// transaction, so a bad reference leaves the store unchanged.
func (s *SQLiteStore) InsertHour(hour timesheet.Hour) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	checks := []struct {
		table string
		field string
		id    int64
	}{
		{table: "people", field: "person", id: hour.PersonID},
		{table: "teams", field: "team", id: hour.TeamID},
		{table: "projects", field: "project", id: hour.ProjectID},
	}
	for _, check := range checks {
		var exists int
		err := tx.QueryRow(`SELECT COUNT(*) FROM `+check.table+` WHERE id = ?;`, check.id).Scan(&exists)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("check %s reference: %w", check.field, err)
		}
		if exists == 0 {
			_ = tx.Rollback()
			return 0, fmt.Errorf("%w: unknown %s id %d", ErrUnknownReference, check.field, check.id)
		}
	}

	res, err := tx.Exec(
		`INSERT INTO hours (date, person_id, team_id, project_id, entry, exit, worked_hours)
VALUES (?, ?, ?, ?, ?, ?, ?);`,
		hour.Date,
		hour.PersonID,
		hour.TeamID,
		hour.ProjectID,
		hour.Entry,
		hour.Exit,
		hour.WorkedHours,
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert hour: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("read inserted hour id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return id, nil
}

// ListHours returns all entries sorted by date ascending, then insertion
// order. This is the order both the dashboard table and the export use.
func (s *SQLiteStore) ListHours() ([]timesheet.Hour, error) {
	const query = `
SELECT id, date, person_id, team_id, project_id, entry, exit, worked_hours
FROM hours
ORDER BY date, id;
`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query hours: %w", err)
	}
	defer rows.Close()

	hours := make([]timesheet.Hour, 0, 256)
	for rows.Next() {
		var hour timesheet.Hour
		if err := rows.Scan(
			&hour.ID,
			&hour.Date,
			&hour.PersonID,
			&hour.TeamID,
			&hour.ProjectID,
			&hour.Entry,
			&hour.Exit,
			&hour.WorkedHours,
		); err != nil {
			return nil, fmt.Errorf("scan hour: %w", err)
		}
		hours = append(hours, hour)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hours: %w", err)
	}
	return hours, nil
}

func insertedID(res sql.Result, kind string) (int64, error) {
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read inserted row count: %w", err)
	}
	if rows == 0 {
		return 0, ErrConflict
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted %s id: %w", kind, err)
	}
	return id, nil
}
