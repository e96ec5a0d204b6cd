package api

// ErrorResponse is the body of every non-2xx backend response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HelloResponse struct {
	Hello string `json:"Hello"`
}
