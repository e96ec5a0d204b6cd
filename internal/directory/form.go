package directory

import (
	"strconv"

	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/forms"
)

// Form holds the raw values of the six student inputs.
type Form struct {
	Name       string `form:"name" json:"name" validate:"required"`
	Age        string `form:"age" json:"age" validate:"required,number"`
	Grade      string `form:"grade" json:"grade" validate:"required"`
	School     string `form:"school" json:"school" validate:"required"`
	LivingArea string `form:"living_area" json:"living_area" validate:"required"`
	Phone      string `form:"phone" json:"phone" validate:"required"`
}

func (f Form) Empty() bool {
	return f == Form{}
}

// Request validates the form and converts it into a backend request.
func (f Form) Request() (*api.StudentRequest, error) {
	if err := forms.Validate(f); err != nil {
		return nil, err
	}

	age, err := strconv.Atoi(f.Age)
	if err != nil {
		return nil, &forms.InvalidError{Fields: []string{"age"}}
	}

	return &api.StudentRequest{
		Name:       f.Name,
		Age:        age,
		Grade:      f.Grade,
		School:     f.School,
		LivingArea: f.LivingArea,
		Phone:      f.Phone,
	}, nil
}

func FormFromStudent(s *api.Student) Form {
	return Form{
		Name:       s.Name,
		Age:        strconv.Itoa(s.Age),
		Grade:      s.Grade,
		School:     s.School,
		LivingArea: s.LivingArea,
		Phone:      s.Phone,
	}
}
