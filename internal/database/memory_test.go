package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bigredeye/roster/internal/models"
)

func TestMemoryCascadesStudentDeletion(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	ana := &models.Student{Name: "Ana", Age: 10}
	bob := &models.Student{Name: "Bob", Age: 11}
	for _, s := range []*models.Student{ana, bob} {
		if err := m.AddStudent(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range []int{ana.ID, bob.ID, ana.ID} {
		err := m.AddAttendance(ctx, &models.Attendance{StudentID: id, Date: day, Status: models.AttendanceStatusPresent})
		if err != nil {
			t.Fatal(err)
		}
	}

	if _, err := m.DeleteStudent(ctx, ana.ID); err != nil {
		t.Fatal(err)
	}

	records, _ := m.ListAttendance(ctx)
	if len(records) != 1 || records[0].StudentID != bob.ID {
		t.Fatalf("Expected only Bob's record to survive, got %+v", records)
	}
}

func TestMemoryRenamePropagatesToAttendance(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	student := &models.Student{Name: "Ana"}
	_ = m.AddStudent(ctx, student)
	_ = m.AddAttendance(ctx, &models.Attendance{StudentID: student.ID, Status: models.AttendanceStatusAbsent})

	student.Name = "Anna"
	if err := m.UpdateStudent(ctx, student); err != nil {
		t.Fatal(err)
	}

	records, _ := m.ListStudentAttendance(ctx, student.ID)
	if len(records) != 1 || records[0].StudentName != "Anna" {
		t.Fatalf("Expected renamed record, got %+v", records)
	}
}

func TestMemoryUnknownStudent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.AddAttendance(ctx, &models.Attendance{StudentID: 42}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err := m.UpdateStudent(ctx, &models.Student{ID: 42}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if _, err := m.DeleteStudent(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
