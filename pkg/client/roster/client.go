package roster

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/bigredeye/roster/api"
)

// HTTPError is returned for every non-2xx backend response.
type HTTPError struct {
	StatusCode int
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	client *resty.Client
}

// NewClient returns a client that sends every request exactly once.
func NewClient(endpoint string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{client}
}

func (c *Client) do(ctx context.Context, req *resty.Request, method, url string) error {
	detail := &api.ErrorResponse{}
	res, err := req.
		SetContext(ctx).
		SetError(detail).
		Execute(method, url)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, url)
	}

	if res.IsError() {
		return &HTTPError{StatusCode: res.StatusCode(), Detail: detail.Detail}
	}
	return nil
}

func (c *Client) ListStudents(ctx context.Context) ([]api.Student, error) {
	res := make([]api.Student, 0)
	err := c.do(ctx, c.client.R().SetResult(&res), resty.MethodGet, "/students/")
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) CreateStudent(ctx context.Context, student *api.StudentRequest) (*api.Student, error) {
	res := &api.Student{}
	err := c.do(ctx, c.client.R().SetBody(student).SetResult(res), resty.MethodPost, "/students/")
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) UpdateStudent(ctx context.Context, id int, student *api.StudentRequest) (*api.Student, error) {
	res := &api.Student{}
	req := c.client.R().
		SetPathParam("id", strconv.Itoa(id)).
		SetBody(student).
		SetResult(res)
	if err := c.do(ctx, req, resty.MethodPut, "/students/{id}"); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) DeleteStudent(ctx context.Context, id int) error {
	req := c.client.R().SetPathParam("id", strconv.Itoa(id))
	return c.do(ctx, req, resty.MethodDelete, "/students/{id}")
}

func (c *Client) ListAttendance(ctx context.Context) ([]api.AttendanceRecord, error) {
	res := make([]api.AttendanceRecord, 0)
	err := c.do(ctx, c.client.R().SetResult(&res), resty.MethodGet, "/attendance/")
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) ListStudentAttendance(ctx context.Context, studentID int) ([]api.AttendanceRecord, error) {
	res := make([]api.AttendanceRecord, 0)
	req := c.client.R().
		SetPathParam("student_id", strconv.Itoa(studentID)).
		SetResult(&res)
	if err := c.do(ctx, req, resty.MethodGet, "/attendance/{student_id}"); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) CreateAttendance(ctx context.Context, record *api.AttendanceRequest) (*api.AttendanceRecord, error) {
	res := &api.AttendanceRecord{}
	err := c.do(ctx, c.client.R().SetBody(record).SetResult(res), resty.MethodPost, "/attendance/")
	if err != nil {
		return nil, err
	}
	return res, nil
}
