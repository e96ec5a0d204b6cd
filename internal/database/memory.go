package database

import (
	"context"
	"sort"
	"sync"

	"github.com/bigredeye/roster/internal/models"
)

// Memory keeps students and attendance in process. It follows the same
// contract as DataBase and is used for development and tests.
type Memory struct {
	mu sync.Mutex

	students   map[int]models.Student
	attendance map[int]models.Attendance

	nextStudentID    int
	nextAttendanceID int
}

func NewMemory() *Memory {
	return &Memory{
		students:         make(map[int]models.Student),
		attendance:       make(map[int]models.Attendance),
		nextStudentID:    1,
		nextAttendanceID: 1,
	}
}

func (m *Memory) ListStudents(ctx context.Context) ([]models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	students := make([]models.Student, 0, len(m.students))
	for _, student := range m.students {
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool {
		return students[i].ID < students[j].ID
	})
	return students, nil
}

func (m *Memory) FindStudent(ctx context.Context, id int) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	student, found := m.students[id]
	if !found {
		return nil, ErrNotFound
	}
	return &student, nil
}

func (m *Memory) AddStudent(ctx context.Context, student *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	student.ID = m.nextStudentID
	m.nextStudentID++
	m.students[student.ID] = *student
	return nil
}

func (m *Memory) UpdateStudent(ctx context.Context, student *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, found := m.students[student.ID]; !found {
		return ErrNotFound
	}
	m.students[student.ID] = *student

	for id, record := range m.attendance {
		if record.StudentID == student.ID {
			record.StudentName = student.Name
			m.attendance[id] = record
		}
	}
	return nil
}

func (m *Memory) DeleteStudent(ctx context.Context, id int) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	student, found := m.students[id]
	if !found {
		return nil, ErrNotFound
	}
	delete(m.students, id)

	for recordID, record := range m.attendance {
		if record.StudentID == id {
			delete(m.attendance, recordID)
		}
	}
	return &student, nil
}

func (m *Memory) sortedAttendance(keep func(*models.Attendance) bool) []models.Attendance {
	records := make([]models.Attendance, 0)
	for _, record := range m.attendance {
		if keep(&record) {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].ID < records[j].ID
	})
	return records
}

func (m *Memory) ListAttendance(ctx context.Context) ([]models.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sortedAttendance(func(*models.Attendance) bool { return true }), nil
}

func (m *Memory) ListStudentAttendance(ctx context.Context, studentID int) ([]models.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sortedAttendance(func(a *models.Attendance) bool { return a.StudentID == studentID }), nil
}

func (m *Memory) AddAttendance(ctx context.Context, record *models.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	student, found := m.students[record.StudentID]
	if !found {
		return ErrNotFound
	}

	record.ID = m.nextAttendanceID
	record.StudentName = student.Name
	m.nextAttendanceID++
	m.attendance[record.ID] = *record
	return nil
}
