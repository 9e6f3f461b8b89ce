package domain

import "time"

// Normalize flattens a submission into a Record stamped with now (as UTC).
// It is total: every leaf shape, including all-absent sections, yields a record.
func Normalize(sub Submission, now time.Time) Record {
	basic, prefs := sub.Basic, sub.Prefs
	return Record{
		FirstName:     basic.Text("firstName"),
		LastName:      basic.Text("lastName"),
		Email:         basic.Text("email"),
		Phone:         basic.Text("phone"),
		Age:           basic.Text("age"),
		Gender:        basic.Text("gender"),
		Personality:   basic.Multi("personality"),
		HasCar:        basic.Flag("hasCar"),
		CanDriveDate:  basic.Flag("canDriveDate"),
		DateType:      prefs.Multi("dateType"),
		DateGroup:     prefs.Text("dateGroup"),
		Locations:     prefs.Multi("locations"),
		DesiredTraits: prefs.Multi("desiredTraits"),
		Notes:         prefs.Text("typeDesc"),
		OtherActivity: prefs.Text("otherActivity"),
		CreatedAt:     now.UTC().Format(CreatedAtLayout),
	}
}
