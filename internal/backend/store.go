package backend

import (
	"context"

	"github.com/bigredeye/roster/internal/database"
	"github.com/bigredeye/roster/internal/models"
)

// Store is the persistence the REST backend needs. Missing ids are reported
// as database.ErrNotFound.
type Store interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	AddStudent(ctx context.Context, student *models.Student) error
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int) (*models.Student, error)

	ListAttendance(ctx context.Context) ([]models.Attendance, error)
	ListStudentAttendance(ctx context.Context, studentID int) ([]models.Attendance, error)
	AddAttendance(ctx context.Context, record *models.Attendance) error
	FindStudent(ctx context.Context, id int) (*models.Student, error)
}

var _ Store = (*database.DataBase)(nil)
var _ Store = (*database.Memory)(nil)
