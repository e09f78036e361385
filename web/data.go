package web

import (
	"hourdesk/output"
	"hourdesk/timesheet"
)

type loginView struct {
	Title string
	Error string
}

type dashboardView struct {
	Title      string
	Username   string
	Flash      string
	People     []timesheet.Person
	Teams      []timesheet.Team
	Projects   []timesheet.Project
	Hours      []output.Row
	TotalHours float64
}

// BuildDashboardView assembles everything one dashboard render needs. Hour
// rows reuse the export resolution, so the table and the CSV always agree
// on labels and ordering.
func BuildDashboardView(
	username, flash string,
	people []timesheet.Person,
	teams []timesheet.Team,
	projects []timesheet.Project,
	hours []timesheet.Hour,
) dashboardView {
	rows := output.BuildRows(hours, people, teams, projects)

	total := 0.0
	for _, row := range rows {
		total += row.WorkedHours
	}

	return dashboardView{
		Title:      "hourdesk - dashboard",
		Username:   username,
		Flash:      flash,
		People:     people,
		Teams:      teams,
		Projects:   projects,
		Hours:      rows,
		TotalHours: total,
	}
}
