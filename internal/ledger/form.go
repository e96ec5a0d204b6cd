package ledger

import (
	"strconv"

	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/forms"
)

type Form struct {
	StudentID string `form:"student_id" json:"student_id" validate:"required,number"`
	Date      string `form:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Status    string `form:"status" json:"status" validate:"required,oneof=Present Absent"`
}

// Request validates the form. The selected student must be known to students.
func (f Form) Request(students StudentLookup) (*api.AttendanceRequest, error) {
	if err := forms.Validate(f); err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(f.StudentID)
	if err != nil {
		return nil, &forms.InvalidError{Fields: []string{"student_id"}}
	}
	if _, found := students.Lookup(id); !found {
		return nil, &forms.InvalidError{Fields: []string{"student_id"}}
	}

	date, err := api.ParseDate(f.Date)
	if err != nil {
		return nil, &forms.InvalidError{Fields: []string{"date"}}
	}

	return &api.AttendanceRequest{
		StudentID: id,
		Date:      date,
		Status:    api.Status(f.Status),
	}, nil
}
