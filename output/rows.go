// Package output renders hour entries into export files. References are
// resolved to human-readable labels here; raw ids never leave the system.
package output

import (
	"strconv"

	"hourdesk/timesheet"
)

// Row is one exported hour entry with all references resolved.
type Row struct {
	Date        string
	Person      string
	Team        string
	Project     string
	Entry       string
	Exit        string
	WorkedHours float64
}

// Headers is the fixed export header row.
var Headers = []string{"Date", "Person", "Team", "Project", "Entry", "Exit", "WorkedHours"}

// BuildRows resolves each hour's references to person name, team code, and
// project number. Input order is preserved; callers pass hours already
// sorted by date then insertion order. A dangling reference falls back to
// the raw id with a # prefix rather than dropping the row.
func BuildRows(
	hours []timesheet.Hour,
	people []timesheet.Person,
	teams []timesheet.Team,
	projects []timesheet.Project,
) []Row {
	personNames := make(map[int64]string, len(people))
	for _, person := range people {
		personNames[person.ID] = person.Name
	}
	teamCodes := make(map[int64]string, len(teams))
	for _, team := range teams {
		teamCodes[team.ID] = team.Code
	}
	projectNumbers := make(map[int64]string, len(projects))
	for _, project := range projects {
		projectNumbers[project.ID] = strconv.Itoa(project.Number)
	}

	rows := make([]Row, 0, len(hours))
	for _, hour := range hours {
		rows = append(rows, Row{
			Date:        hour.Date,
			Person:      labelFor(personNames, hour.PersonID),
			Team:        labelFor(teamCodes, hour.TeamID),
			Project:     labelFor(projectNumbers, hour.ProjectID),
			Entry:       hour.Entry,
			Exit:        hour.Exit,
			WorkedHours: hour.WorkedHours,
		})
	}
	return rows
}

func labelFor(labels map[int64]string, id int64) string {
	if label, ok := labels[id]; ok {
		return label
	}
	return "#" + strconv.FormatInt(id, 10)
}
