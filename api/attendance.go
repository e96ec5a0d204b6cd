package api

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

type Status string

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

func (s Status) IsPresent() bool {
	return s == StatusPresent
}

// AttendanceRequest is the body of a create call. Date presence is checked by
// the handler since it is a struct.
type AttendanceRequest struct {
	StudentID int    `json:"student_id" binding:"required"`
	Date      Date   `json:"date"`
	Status    Status `json:"status" binding:"required,oneof=Present Absent"`
}

type AttendanceRecord struct {
	ID          int    `json:"id"`
	StudentID   int    `json:"student_id"`
	StudentName string `json:"student_name"`
	Date        Date   `json:"date"`
	Status      Status `json:"status"`
}
