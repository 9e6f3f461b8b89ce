package mongo

import (
	"time"

	"github.com/sngm3741/match-intake/api/internal/intake/domain"
)

// SubmissionDocument は MongoDB 上での応募レコードのスキーマ。CSV の列と同じキーを持つ。
type SubmissionDocument struct {
	ID            string    `bson:"_id"`
	FirstName     string    `bson:"firstName"`
	LastName      string    `bson:"lastName"`
	Email         string    `bson:"email"`
	Phone         string    `bson:"phone"`
	Age           string    `bson:"age"`
	Gender        string    `bson:"gender"`
	Personality   string    `bson:"personality"`
	HasCar        string    `bson:"hasCar"`
	CanDriveDate  string    `bson:"canDriveDate"`
	DateType      string    `bson:"dateType"`
	DateGroup     string    `bson:"dateGroup"`
	Locations     string    `bson:"locations"`
	DesiredTraits string    `bson:"desiredTraits"`
	Notes         string    `bson:"notes"`
	OtherActivity string    `bson:"otherActivity"`
	CreatedAt     string    `bson:"createdAt"`
	StoredAt      time.Time `bson:"storedAt"`
}

func buildSubmissionDocument(id string, record domain.Record, storedAt time.Time) SubmissionDocument {
	return SubmissionDocument{
		ID:            id,
		FirstName:     record.FirstName,
		LastName:      record.LastName,
		Email:         record.Email,
		Phone:         record.Phone,
		Age:           record.Age,
		Gender:        record.Gender,
		Personality:   record.Personality,
		HasCar:        record.HasCar,
		CanDriveDate:  record.CanDriveDate,
		DateType:      record.DateType,
		DateGroup:     record.DateGroup,
		Locations:     record.Locations,
		DesiredTraits: record.DesiredTraits,
		Notes:         record.Notes,
		OtherActivity: record.OtherActivity,
		CreatedAt:     record.CreatedAt,
		StoredAt:      storedAt.UTC(),
	}
}
