package backend

import (
	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/models"
)

// studentBody is what create and update bind. Age is a pointer so that a
// missing age is rejected while zero is accepted.
type studentBody struct {
	Name       string `json:"name" binding:"required"`
	Age        *int   `json:"age" binding:"required,min=0"`
	Grade      string `json:"grade" binding:"required"`
	School     string `json:"school" binding:"required"`
	LivingArea string `json:"living_area" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

func (b *studentBody) request() *api.StudentRequest {
	return &api.StudentRequest{
		Name:       b.Name,
		Age:        *b.Age,
		Grade:      b.Grade,
		School:     b.School,
		LivingArea: b.LivingArea,
		Phone:      b.Phone,
	}
}

func studentFromModel(s *models.Student) api.Student {
	return api.Student{
		ID: s.ID,
		StudentRequest: api.StudentRequest{
			Name:       s.Name,
			Age:        s.Age,
			Grade:      s.Grade,
			School:     s.School,
			LivingArea: s.LivingArea,
			Phone:      s.Phone,
		},
	}
}

func studentToModel(id int, req *api.StudentRequest) *models.Student {
	return &models.Student{
		ID:         id,
		Name:       req.Name,
		Age:        req.Age,
		Grade:      req.Grade,
		School:     req.School,
		LivingArea: req.LivingArea,
		Phone:      req.Phone,
	}
}

func attendanceFromModel(a *models.Attendance) api.AttendanceRecord {
	return api.AttendanceRecord{
		ID:          a.ID,
		StudentID:   a.StudentID,
		StudentName: a.StudentName,
		Date:        api.Date{Time: a.Date},
		Status:      api.Status(a.Status),
	}
}
