package directory

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/bigredeye/roster/api"
	lf "github.com/bigredeye/roster/internal/logfield"
)

type Client interface {
	ListStudents(ctx context.Context) ([]api.Student, error)
	CreateStudent(ctx context.Context, student *api.StudentRequest) (*api.Student, error)
	UpdateStudent(ctx context.Context, id int, student *api.StudentRequest) (*api.Student, error)
	DeleteStudent(ctx context.Context, id int) error
}

// State is the form side of the directory: field values and edit mode.
type State struct {
	Form    Form `json:"form"`
	Editing bool `json:"editing"`
	EditID  int  `json:"edit_id,omitempty"`
}

type View struct {
	State
	Students []api.Student
}

// Directory keeps a re-fetched copy of the student collection together with
// the add/edit form. Network calls run outside the lock.
type Directory struct {
	client Client
	log    *zap.Logger

	generation atomic.Uint64

	mu       sync.Mutex
	applied  uint64
	state    State
	students []api.Student
}

func New(client Client, log *zap.Logger) *Directory {
	return &Directory{
		client: client,
		log:    log.With(lf.Module("directory")),
	}
}

// Refresh replaces the local list with the backend collection. On failure the
// previous list stays in place. A response that arrives after a newer one has
// been applied is dropped.
func (d *Directory) Refresh(ctx context.Context) error {
	gen := d.generation.Inc()

	students, err := d.client.ListStudents(ctx)
	if err != nil {
		d.log.Error("Failed to fetch students", zap.Error(err))
		return errors.Wrap(err, "Failed to fetch students")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if gen < d.applied {
		d.log.Debug("Dropping stale student list", lf.Generation(gen))
		return nil
	}
	d.applied = gen
	d.students = students
	d.log.Debug("Fetched students", lf.Count(len(students)), lf.Generation(gen))
	return nil
}

// Submit creates a student, or updates the one being edited. An invalid form
// is rejected before any request. Otherwise the form is cleared and the list
// re-fetched whatever the backend answered; the backend error is returned.
func (d *Directory) Submit(ctx context.Context, form Form) error {
	req, err := form.Request()
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.state.Form = form
	editing, id := d.state.Editing, d.state.EditID
	d.mu.Unlock()

	var opErr error
	if editing {
		_, opErr = d.client.UpdateStudent(ctx, id, req)
		if opErr != nil {
			d.log.Error("Failed to update student", lf.StudentID(id), zap.Error(opErr))
			opErr = errors.Wrap(opErr, "Failed to update student")
		} else {
			d.log.Info("Updated student", lf.StudentID(id))
			d.mu.Lock()
			if d.state.EditID == id {
				d.state.Editing = false
				d.state.EditID = 0
			}
			d.mu.Unlock()
		}
	} else {
		var created *api.Student
		created, opErr = d.client.CreateStudent(ctx, req)
		if opErr != nil {
			d.log.Error("Failed to add student", lf.StudentName(req.Name), zap.Error(opErr))
			opErr = errors.Wrap(opErr, "Failed to add student")
		} else {
			d.log.Info("Added student", lf.StudentID(created.ID))
		}
	}

	d.mu.Lock()
	d.state.Form = Form{}
	d.mu.Unlock()

	_ = d.Refresh(ctx)
	return opErr
}

// BeginEdit switches the form to edit mode for student and pre-fills it.
func (d *Directory) BeginEdit(student api.Student) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = State{
		Form:    FormFromStudent(&student),
		Editing: true,
		EditID:  student.ID,
	}
}

// BeginEditByID looks the student up in the current list first.
func (d *Directory) BeginEditByID(id int) bool {
	student, found := d.Lookup(id)
	if !found {
		d.log.Warn("Cannot edit unknown student", lf.StudentID(id))
		return false
	}
	d.BeginEdit(student)
	return true
}

func (d *Directory) CancelEdit() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = State{}
}

// Delete removes the student and re-fetches the list. A failed delete is
// returned without re-fetching.
func (d *Directory) Delete(ctx context.Context, id int) error {
	if err := d.client.DeleteStudent(ctx, id); err != nil {
		d.log.Error("Failed to delete student", lf.StudentID(id), zap.Error(err))
		return errors.Wrap(err, "Failed to delete student")
	}
	d.log.Info("Deleted student", lf.StudentID(id))

	return d.Refresh(ctx)
}

func (d *Directory) Lookup(id int) (api.Student, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := slices.IndexFunc(d.students, func(s api.Student) bool {
		return s.ID == id
	})
	if idx < 0 {
		return api.Student{}, false
	}
	return d.students[idx], true
}

func (d *Directory) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state
}

func (d *Directory) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	return View{
		State:    d.state,
		Students: slices.Clone(d.students),
	}
}
