package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v2"

	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/directory"
	"github.com/bigredeye/roster/pkg/client/roster"
)

const importParallelism = 4

func makeImportStudentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create students listed in a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := importStudents(cmd.Context(), client, args[0])
			return err
		},
	}
}

// parseStudents decodes the file and checks every entry the way the student
// form does. One bad entry rejects the whole file.
func parseStudents(data []byte) ([]*api.StudentRequest, error) {
	var entries []api.StudentRequest
	if err := yaml.UnmarshalStrict(data, &entries); err != nil {
		return nil, errors.Wrap(err, "Failed to parse students file")
	}

	students := make([]*api.StudentRequest, 0, len(entries))
	for i := range entries {
		form := directory.FormFromStudent(&api.Student{StudentRequest: entries[i]})
		req, err := form.Request()
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid student #%d", i+1)
		}
		students = append(students, req)
	}
	return students, nil
}

func importStudents(ctx context.Context, c *roster.Client, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrap(err, "Failed to read students file")
	}

	students, err := parseStudents(data)
	if err != nil {
		return 0, err
	}

	sem := semaphore.NewWeighted(importParallelism)
	g, ctx := errgroup.WithContext(ctx)
	for _, student := range students {
		student := student
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)

			created, err := c.CreateStudent(ctx, student)
			if err != nil {
				return errors.Wrapf(err, "Failed to create student %q", student.Name)
			}
			log.Info("Imported student", zap.Int("id", created.ID), zap.String("name", created.Name))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	log.Info("Import finished", zap.Int("count", len(students)))
	return len(students), nil
}
