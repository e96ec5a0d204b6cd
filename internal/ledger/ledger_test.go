package ledger

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/backend"
	"github.com/bigredeye/roster/internal/config"
	"github.com/bigredeye/roster/internal/database"
	"github.com/bigredeye/roster/internal/directory"
	"github.com/bigredeye/roster/internal/forms"
	"github.com/bigredeye/roster/pkg/client/roster"
)

type students map[int]api.Student

func (s students) Lookup(id int) (api.Student, bool) {
	student, found := s[id]
	return student, found
}

type fakeClient struct {
	records []api.AttendanceRecord
	fail    error
	creates int
	lists   int
}

func (c *fakeClient) ListAttendance(ctx context.Context) ([]api.AttendanceRecord, error) {
	c.lists++
	return append([]api.AttendanceRecord(nil), c.records...), nil
}

func (c *fakeClient) CreateAttendance(ctx context.Context, req *api.AttendanceRequest) (*api.AttendanceRecord, error) {
	c.creates++
	if c.fail != nil {
		return nil, c.fail
	}
	record := api.AttendanceRecord{
		ID:        len(c.records) + 1,
		StudentID: req.StudentID,
		Date:      req.Date,
		Status:    req.Status,
	}
	c.records = append(c.records, record)
	return &record, nil
}

var known = students{3: {ID: 3, StudentRequest: api.StudentRequest{Name: "Ana"}}}

func TestAddRejectsIncompleteForm(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}
	l := New(client, known, zap.NewNop())

	bad := []Form{
		{Date: "2024-05-01", Status: "Absent"},
		{StudentID: "3", Status: "Absent"},
		{StudentID: "3", Date: "2024-05-01"},
		{StudentID: "3", Date: "2024-05-01", Status: "Late"},
		{StudentID: "3", Date: "01.05.2024", Status: "Present"},
		{StudentID: "9", Date: "2024-05-01", Status: "Present"},
	}
	for _, form := range bad {
		if err := l.Add(ctx, form); !errors.Is(err, forms.ErrInvalid) {
			t.Fatalf("Expected validation error for %+v, got %v", form, err)
		}
	}
	if client.creates+client.lists != 0 {
		t.Fatal("Invalid forms must not reach the backend")
	}
}

func TestAddKeepsFormAndRefetches(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{}
	l := New(client, known, zap.NewNop())

	form := Form{StudentID: "3", Date: "2024-05-01", Status: "Absent"}
	if err := l.Add(ctx, form); err != nil {
		t.Fatal("Add failed:", err)
	}

	view := l.View()
	if diff := cmp.Diff(form, view.Form); diff != "" {
		t.Fatalf("Form must keep its values (-want +got):\n%s", diff)
	}
	if len(view.Rows) != 1 || client.lists != 1 {
		t.Fatalf("Expected one re-fetched row, got %+v", view.Rows)
	}

	row := view.Rows[0]
	if row.Name != "Ana" {
		t.Fatalf("Name must fall back to the directory, got %q", row.Name)
	}
	if row.Date.String() != "2024-05-01" || row.StatusClass() != ClassAbsent {
		t.Fatalf("Unexpected row %+v", row)
	}
}

func TestAddReturnsBackendError(t *testing.T) {
	client := &fakeClient{fail: errors.New("connection reset")}
	l := New(client, known, zap.NewNop())

	if err := l.Add(context.Background(), Form{StudentID: "3", Date: "2024-05-01", Status: "Present"}); err == nil {
		t.Fatal("Expected backend error")
	}
}

func TestStatusClassesDiffer(t *testing.T) {
	present := Row{AttendanceRecord: api.AttendanceRecord{Status: api.StatusPresent}}
	absent := Row{AttendanceRecord: api.AttendanceRecord{Status: api.StatusAbsent}}
	if present.StatusClass() == absent.StatusClass() {
		t.Fatal("Present and Absent must render differently")
	}
}

func TestAbsenceAgainstBackend(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(backend.NewServer(&config.Config{}, zap.NewNop(), database.NewMemory(), nil).Handler())
	defer srv.Close()
	client := roster.NewClient(srv.URL, 5*time.Second)

	dir := directory.New(client, zap.NewNop())
	for _, name := range []string{"Ana", "Ben", "Cleo"} {
		form := directory.Form{Name: name, Age: "10", Grade: "5", School: "Grace", LivingArea: "North", Phone: "555-1111"}
		if err := dir.Submit(ctx, form); err != nil {
			t.Fatal(err)
		}
	}

	l := New(client, dir, zap.NewNop())
	if err := l.Add(ctx, Form{StudentID: "3", Date: "2024-05-01", Status: "Absent"}); err != nil {
		t.Fatal("Add failed:", err)
	}
	if err := l.Add(ctx, Form{StudentID: "1", Date: "2024-05-01", Status: "Present"}); err != nil {
		t.Fatal("Add failed:", err)
	}

	rows := l.View().Rows
	if len(rows) != 2 {
		t.Fatalf("Expected two rows, got %+v", rows)
	}
	var absent, present *Row
	for i := range rows {
		switch rows[i].StudentID {
		case 3:
			absent = &rows[i]
		case 1:
			present = &rows[i]
		}
	}
	if absent == nil || absent.Status != api.StatusAbsent || absent.Name != "Cleo" {
		t.Fatalf("Expected Cleo absent, got %+v", rows)
	}
	if present == nil || present.StatusClass() == absent.StatusClass() {
		t.Fatal("Absent row must be styled apart from Present")
	}
}
