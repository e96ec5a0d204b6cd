package models

import "time"

const (
	AttendanceStatusPresent = "Present"
	AttendanceStatusAbsent  = "Absent"
)

type AttendanceStatus = string

type Attendance struct {
	ID          int              `gorm:"primaryKey"`
	Date        time.Time        `gorm:"type:date;index"`
	StudentName string           `gorm:"index"`
	StudentID   int              `gorm:"index"`
	Status      AttendanceStatus `gorm:"index"`
}
