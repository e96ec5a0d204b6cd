package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/config"
	"github.com/bigredeye/roster/internal/database"
)

type recordingNotifier struct {
	records []api.AttendanceRecord
}

func (n *recordingNotifier) NotifyAbsence(ctx context.Context, record *api.AttendanceRecord) error {
	n.records = append(n.records, *record)
	return nil
}

func newTestServer(notifier AbsenceNotifier) *Server {
	conf := &config.Config{}
	conf.Api.AllowOrigins = []string{"*"}
	return NewServer(conf, zap.NewNop(), database.NewMemory(), notifier)
}

func do(t *testing.T, s *Server, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("Failed to decode %s %s response %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code
}

var ana = api.StudentRequest{
	Name:       "Ana",
	Age:        10,
	Grade:      "5",
	School:     "Grace",
	LivingArea: "North",
	Phone:      "555-1111",
}

func TestStudentLifecycle(t *testing.T) {
	s := newTestServer(nil)

	var created api.Student
	if code := do(t, s, http.MethodPost, "/students/", ana, &created); code != http.StatusOK {
		t.Fatalf("Create failed with %d", code)
	}
	if created.ID == 0 {
		t.Fatal("Backend must assign an id")
	}

	var students []api.Student
	do(t, s, http.MethodGet, "/students/", nil, &students)
	if diff := cmp.Diff([]api.Student{{ID: created.ID, StudentRequest: ana}}, students); diff != "" {
		t.Fatalf("Unexpected students (-want +got):\n%s", diff)
	}

	changed := ana
	changed.School = "Hope"
	var updated api.Student
	if code := do(t, s, http.MethodPut, "/students/1", changed, &updated); code != http.StatusOK {
		t.Fatalf("Update failed with %d", code)
	}
	if updated.ID != created.ID || updated.School != "Hope" {
		t.Fatalf("Unexpected update result %+v", updated)
	}

	if code := do(t, s, http.MethodDelete, "/students/1", nil, nil); code != http.StatusOK {
		t.Fatalf("Delete failed with %d", code)
	}
	do(t, s, http.MethodGet, "/students/", nil, &students)
	if len(students) != 0 {
		t.Fatalf("Expected no students, got %+v", students)
	}
}

func TestUnknownStudent(t *testing.T) {
	s := newTestServer(nil)

	if code := do(t, s, http.MethodPut, "/students/3", ana, nil); code != http.StatusNotFound {
		t.Fatalf("Expected 404 on update, got %d", code)
	}
	if code := do(t, s, http.MethodDelete, "/students/3", nil, nil); code != http.StatusNotFound {
		t.Fatalf("Expected 404 on delete, got %d", code)
	}
	if code := do(t, s, http.MethodGet, "/attendance/3", nil, nil); code != http.StatusNotFound {
		t.Fatalf("Expected 404 on student attendance, got %d", code)
	}
	if code := do(t, s, http.MethodDelete, "/students/abc", nil, nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422 on malformed id, got %d", code)
	}

	req := map[string]interface{}{"student_id": 3, "date": "2024-05-01", "status": "Absent"}
	if code := do(t, s, http.MethodPost, "/attendance/", req, nil); code != http.StatusNotFound {
		t.Fatalf("Expected 404 on attendance for unknown student, got %d", code)
	}
}

func TestAttendanceValidation(t *testing.T) {
	s := newTestServer(nil)
	do(t, s, http.MethodPost, "/students/", ana, nil)

	bad := []map[string]interface{}{
		{"student_id": 1, "date": "2024-05-01", "status": "Late"},
		{"student_id": 1, "date": "", "status": "Present"},
		{"student_id": 1, "date": "05/01/2024", "status": "Present"},
		{"date": "2024-05-01", "status": "Present"},
		{"student_id": 1, "status": "Present"},
		{"student_id": 1, "date": "2024-05-01"},
		{},
	}
	for _, req := range bad {
		if code := do(t, s, http.MethodPost, "/attendance/", req, nil); code != http.StatusUnprocessableEntity {
			t.Fatalf("Expected 422 for %v, got %d", req, code)
		}
	}
}

func TestIncompleteStudentRejected(t *testing.T) {
	s := newTestServer(nil)
	do(t, s, http.MethodPost, "/students/", ana, nil)

	bad := []map[string]interface{}{
		{},
		{"name": "Ana", "age": 10, "grade": "5", "school": "Grace", "living_area": "North"},
		{"name": "Ana", "grade": "5", "school": "Grace", "living_area": "North", "phone": "555-1111"},
		{"name": "Ana", "age": -1, "grade": "5", "school": "Grace", "living_area": "North", "phone": "555-1111"},
		{"name": "", "age": 10, "grade": "5", "school": "Grace", "living_area": "North", "phone": "555-1111"},
	}
	for _, body := range bad {
		if code := do(t, s, http.MethodPost, "/students/", body, nil); code != http.StatusUnprocessableEntity {
			t.Fatalf("Expected 422 on create with %v, got %d", body, code)
		}
		if code := do(t, s, http.MethodPut, "/students/1", body, nil); code != http.StatusUnprocessableEntity {
			t.Fatalf("Expected 422 on update with %v, got %d", body, code)
		}
	}

	var students []api.Student
	do(t, s, http.MethodGet, "/students/", nil, &students)
	if diff := cmp.Diff([]api.Student{{ID: 1, StudentRequest: ana}}, students); diff != "" {
		t.Fatalf("Rejected bodies must not change students (-want +got):\n%s", diff)
	}
}

func TestZeroAgeAccepted(t *testing.T) {
	s := newTestServer(nil)

	infant := ana
	infant.Age = 0
	var created api.Student
	if code := do(t, s, http.MethodPost, "/students/", infant, &created); code != http.StatusOK {
		t.Fatalf("Expected age 0 to be accepted, got %d", code)
	}
	if created.Age != 0 || created.Name != "Ana" {
		t.Fatalf("Unexpected student %+v", created)
	}
}

func TestAbsenceIsDenormalizedAndNotified(t *testing.T) {
	notifier := &recordingNotifier{}
	s := newTestServer(notifier)
	do(t, s, http.MethodPost, "/students/", ana, nil)

	for _, status := range []string{"Present", "Absent"} {
		req := map[string]interface{}{"student_id": 1, "date": "2024-05-01", "status": status}
		if code := do(t, s, http.MethodPost, "/attendance/", req, nil); code != http.StatusOK {
			t.Fatalf("Create attendance failed with %d", code)
		}
	}

	var records []api.AttendanceRecord
	do(t, s, http.MethodGet, "/attendance/", nil, &records)
	if len(records) != 2 {
		t.Fatalf("Expected two records, got %+v", records)
	}
	for _, record := range records {
		if record.StudentName != "Ana" {
			t.Fatalf("Backend must fill student name, got %+v", record)
		}
	}

	if len(notifier.records) != 1 || notifier.records[0].Status != api.StatusAbsent {
		t.Fatalf("Expected one absence notification, got %+v", notifier.records)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "roster_absences_total 1") {
		t.Fatalf("Absence counter missing from metrics:\n%s", w.Body.String())
	}
}

func TestDeleteCascadesAttendance(t *testing.T) {
	s := newTestServer(nil)
	do(t, s, http.MethodPost, "/students/", ana, nil)
	do(t, s, http.MethodPost, "/attendance/", map[string]interface{}{"student_id": 1, "date": "2024-05-01", "status": "Present"}, nil)

	do(t, s, http.MethodDelete, "/students/1", nil, nil)

	var records []api.AttendanceRecord
	do(t, s, http.MethodGet, "/attendance/", nil, &records)
	if len(records) != 0 {
		t.Fatalf("Expected attendance to be removed with the student, got %+v", records)
	}
}
