package domain

import "strings"

// MultiValueSeparator joins multi-select answers inside a single cell.
// None of the form's option labels may contain it.
const MultiValueSeparator = "|"

// CreatedAtLayout is the UTC timestamp format stamped on every record.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

// Column describes one persisted column: the record key and its header title.
type Column struct {
	Key   string
	Title string
}

// Columns is the fixed, ordered column layout of a Record.
var Columns = []Column{
	{Key: "firstName", Title: "First Name"},
	{Key: "lastName", Title: "Last Name"},
	{Key: "email", Title: "Email"},
	{Key: "phone", Title: "Phone"},
	{Key: "age", Title: "Age"},
	{Key: "gender", Title: "Gender"},
	{Key: "personality", Title: "Personality"},
	{Key: "hasCar", Title: "Has Car"},
	{Key: "canDriveDate", Title: "Can Drive Date"},
	{Key: "dateType", Title: "Date Type"},
	{Key: "dateGroup", Title: "Date Group"},
	{Key: "locations", Title: "Locations"},
	{Key: "desiredTraits", Title: "Desired Traits"},
	{Key: "notes", Title: "Notes"},
	{Key: "otherActivity", Title: "Other Activity"},
	{Key: "createdAt", Title: "Created At"},
}

// Record is the flat, normalized row persisted for one submission.
type Record struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Age           string
	Gender        string
	Personality   string
	HasCar        string
	CanDriveDate  string
	DateType      string
	DateGroup     string
	Locations     string
	DesiredTraits string
	Notes         string
	OtherActivity string
	CreatedAt     string
}

// Header returns the column titles in persisted order.
func Header() []string {
	titles := make([]string, len(Columns))
	for i, col := range Columns {
		titles[i] = col.Title
	}
	return titles
}

// Values returns the record cells in the order of Columns.
func (r Record) Values() []string {
	return []string{
		r.FirstName,
		r.LastName,
		r.Email,
		r.Phone,
		r.Age,
		r.Gender,
		r.Personality,
		r.HasCar,
		r.CanDriveDate,
		r.DateType,
		r.DateGroup,
		r.Locations,
		r.DesiredTraits,
		r.Notes,
		r.OtherActivity,
		r.CreatedAt,
	}
}

// JoinMultiValue serializes an ordered answer list into one cell.
func JoinMultiValue(values []string) string {
	return strings.Join(values, MultiValueSeparator)
}

// SplitMultiValue recovers the ordered answer list from a cell. An empty cell yields no answers.
func SplitMultiValue(cell string) []string {
	if cell == "" {
		return []string{}
	}
	return strings.Split(cell, MultiValueSeparator)
}
