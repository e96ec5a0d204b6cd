package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/directory"
)

func printStudents(students []api.Student) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAGE\tGRADE\tSCHOOL\tLIVING AREA\tPHONE")
	for _, s := range students {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Age, s.Grade, s.School, s.LivingArea, s.Phone)
	}
	return w.Flush()
}

func makeListStudentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List students",
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := client.ListStudents(cmd.Context())
			if err != nil {
				return err
			}
			return printStudents(students)
		},
	}
}

func addStudentFlags(cmd *cobra.Command, form *directory.Form) {
	cmd.Flags().StringVar(&form.Name, "name", "", "Student name")
	cmd.Flags().StringVar(&form.Age, "age", "", "Student age")
	cmd.Flags().StringVar(&form.Grade, "grade", "", "Grade")
	cmd.Flags().StringVar(&form.School, "school", "", "School")
	cmd.Flags().StringVar(&form.LivingArea, "living-area", "", "Living area")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number")
}

func makeAddStudentCommand() *cobra.Command {
	var form directory.Form
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a student",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := form.Request()
			if err != nil {
				return err
			}
			student, err := client.CreateStudent(cmd.Context(), req)
			if err != nil {
				return err
			}
			log.Info("Added student", zap.Int("id", student.ID), zap.String("name", student.Name))
			return nil
		},
	}
	addStudentFlags(cmd, &form)

	return cmd
}

func makeUpdateStudentCommand() *cobra.Command {
	var form directory.Form
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Overwrite every field of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			req, err := form.Request()
			if err != nil {
				return err
			}
			if _, err = client.UpdateStudent(cmd.Context(), id, req); err != nil {
				return err
			}
			log.Info("Updated student", zap.Int("id", id))
			return nil
		},
	}
	addStudentFlags(cmd, &form)

	return cmd
}

func makeDeleteStudentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a student with its attendance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if err := client.DeleteStudent(cmd.Context(), id); err != nil {
				return err
			}
			log.Info("Deleted student", zap.Int("id", id))
			return nil
		},
	}
}
