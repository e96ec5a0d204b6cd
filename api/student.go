package api

// StudentRequest is the body of create and update calls. The backend assigns
// identifiers, so it has no id.
type StudentRequest struct {
	Name       string `json:"name" yaml:"name"`
	Age        int    `json:"age" yaml:"age"`
	Grade      string `json:"grade" yaml:"grade"`
	School     string `json:"school" yaml:"school"`
	LivingArea string `json:"living_area" yaml:"living_area"`
	Phone      string `json:"phone" yaml:"phone"`
}

type Student struct {
	ID int `json:"id"`
	StudentRequest
}
