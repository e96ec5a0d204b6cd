package main

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/internal/backend"
	"github.com/bigredeye/roster/internal/config"
	"github.com/bigredeye/roster/internal/database"
	"github.com/bigredeye/roster/internal/forms"
	"github.com/bigredeye/roster/pkg/client/roster"
)

func newBackendClient(t *testing.T) *roster.Client {
	t.Helper()
	srv := httptest.NewServer(backend.NewServer(&config.Config{}, zap.NewNop(), database.NewMemory(), nil).Handler())
	t.Cleanup(srv.Close)
	return roster.NewClient(srv.URL, 5*time.Second)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const students = `
- name: Ana
  age: 10
  grade: "5"
  school: Grace
  living_area: North
  phone: 555-1111
- name: Ben
  age: 11
  grade: "6"
  school: Grace
  living_area: South
  phone: 555-2222
- name: Cleo
  age: 0
  grade: K
  school: Hope
  living_area: East
  phone: 555-3333
`

func TestImportCreatesEveryStudent(t *testing.T) {
	ctx := context.Background()
	c := newBackendClient(t)

	n, err := importStudents(ctx, c, writeFile(t, students))
	if err != nil {
		t.Fatal("Import failed:", err)
	}
	if n != 3 {
		t.Fatalf("Expected three imported students, got %d", n)
	}

	list, err := c.ListStudents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(list))
	for _, student := range list {
		names = append(names, student.Name)
	}
	sort.Strings(names)
	if diff := cmp.Diff([]string{"Ana", "Ben", "Cleo"}, names); diff != "" {
		t.Fatalf("Unexpected students (-want +got):\n%s", diff)
	}
}

func TestImportRejectsIncompleteEntryBeforeSending(t *testing.T) {
	ctx := context.Background()
	c := newBackendClient(t)

	content := students + `
- name: Dan
  age: 12
  grade: "7"
  living_area: West
`
	_, err := importStudents(ctx, c, writeFile(t, content))
	if !errors.Is(err, forms.ErrInvalid) {
		t.Fatalf("Expected validation error, got %v", err)
	}

	var invalid *forms.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidError, got %T", err)
	}
	if diff := cmp.Diff([]string{"school", "phone"}, invalid.Fields); diff != "" {
		t.Fatalf("Unexpected fields (-want +got):\n%s", diff)
	}

	list, err := c.ListStudents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("Nothing must be created from a rejected file, got %+v", list)
	}
}

func TestImportRejectsNegativeAge(t *testing.T) {
	content := "- {name: Ana, age: -3, grade: \"5\", school: Grace, living_area: North, phone: 555-1111}\n"
	if _, err := parseStudents([]byte(content)); !errors.Is(err, forms.ErrInvalid) {
		t.Fatalf("Expected validation error for negative age, got %v", err)
	}
}

func TestImportRejectsUnknownKeys(t *testing.T) {
	content := "- {name: Ana, age: 3, grade: \"5\", school: Grace, living_area: North, phone: 555-1111, email: a@b.c}\n"
	if _, err := parseStudents([]byte(content)); err == nil {
		t.Fatal("Expected error for unknown key")
	}
}
