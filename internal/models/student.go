package models

type Student struct {
	ID         int    `gorm:"primaryKey"`
	Name       string `gorm:"index"`
	Age        int
	Grade      string
	School     string
	LivingArea string
	Phone      string

	Attendances []Attendance `gorm:"constraint:OnDelete:CASCADE"`
}
