package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/api"
	lf "github.com/bigredeye/roster/internal/logfield"
)

type Client interface {
	ListAttendance(ctx context.Context) ([]api.AttendanceRecord, error)
	CreateAttendance(ctx context.Context, record *api.AttendanceRequest) (*api.AttendanceRecord, error)
}

// StudentLookup resolves student ids against the directory's current list.
type StudentLookup interface {
	Lookup(id int) (api.Student, bool)
}

const (
	ClassPresent = "status-present"
	ClassAbsent  = "status-absent"
)

type Row struct {
	api.AttendanceRecord
	Name string
}

func (r Row) StatusClass() string {
	if r.Status.IsPresent() {
		return ClassPresent
	}
	return ClassAbsent
}

type View struct {
	Form Form
	Rows []Row
}

type Ledger struct {
	client   Client
	students StudentLookup
	log      *zap.Logger

	generation atomic.Uint64

	mu      sync.Mutex
	applied uint64
	form    Form
	records []api.AttendanceRecord
}

func New(client Client, students StudentLookup, log *zap.Logger) *Ledger {
	return &Ledger{
		client:   client,
		students: students,
		log:      log.With(lf.Module("ledger")),
	}
}

// Refresh replaces the local records with the backend collection. Failures
// keep the previous records.
func (l *Ledger) Refresh(ctx context.Context) error {
	gen := l.generation.Inc()

	records, err := l.client.ListAttendance(ctx)
	if err != nil {
		l.log.Error("Failed to fetch attendance", zap.Error(err))
		return errors.Wrap(err, "Failed to fetch attendance")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen < l.applied {
		l.log.Debug("Dropping stale attendance list", lf.Generation(gen))
		return nil
	}
	l.applied = gen
	l.records = records
	l.log.Debug("Fetched attendance", lf.Count(len(records)), lf.Generation(gen))
	return nil
}

// Add records attendance for a student from the directory. The form keeps its
// values after submission.
func (l *Ledger) Add(ctx context.Context, form Form) error {
	req, err := form.Request(l.students)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.form = form
	l.mu.Unlock()

	record, err := l.client.CreateAttendance(ctx, req)
	if err != nil {
		l.log.Error("Failed to add attendance", lf.StudentID(req.StudentID), lf.Date(req.Date.Time), zap.Error(err))
		err = errors.Wrap(err, "Failed to add attendance")
	} else {
		l.log.Info("Added attendance", lf.AttendanceID(record.ID), lf.StudentID(record.StudentID))
	}

	_ = l.Refresh(ctx)
	return err
}

func (l *Ledger) Form() Form {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.form
}

func (l *Ledger) name(record *api.AttendanceRecord) string {
	if record.StudentName != "" {
		return record.StudentName
	}
	if student, found := l.students.Lookup(record.StudentID); found {
		return student.Name
	}
	return fmt.Sprintf("#%d", record.StudentID)
}

func (l *Ledger) View() View {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows := make([]Row, 0, len(l.records))
	for i := range l.records {
		rows = append(rows, Row{
			AttendanceRecord: l.records[i],
			Name:             l.name(&l.records[i]),
		})
	}
	return View{Form: l.form, Rows: rows}
}
