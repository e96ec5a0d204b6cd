package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/ledger"
)

type studentIndex map[int]api.Student

func (idx studentIndex) Lookup(id int) (api.Student, bool) {
	student, found := idx[id]
	return student, found
}

func printAttendance(records []api.AttendanceRecord) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTUDENT\tSTATUS")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Date, r.StudentName, r.Status)
	}
	return w.Flush()
}

func makeListAttendanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all attendance records",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := client.ListAttendance(cmd.Context())
			if err != nil {
				return err
			}
			return printAttendance(records)
		},
	}
}

func makeStudentAttendanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "student ID",
		Short: "List attendance records of one student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			records, err := client.ListStudentAttendance(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printAttendance(records)
		},
	}
}

func makeAddAttendanceCommand() *cobra.Command {
	var form ledger.Form
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record attendance",
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := client.ListStudents(cmd.Context())
			if err != nil {
				return err
			}
			idx := make(studentIndex, len(students))
			for _, student := range students {
				idx[student.ID] = student
			}

			req, err := form.Request(idx)
			if err != nil {
				return err
			}
			record, err := client.CreateAttendance(cmd.Context(), req)
			if err != nil {
				return err
			}
			log.Info("Recorded attendance",
				zap.Int("id", record.ID),
				zap.String("student", record.StudentName),
				zap.Stringer("date", record.Date),
				zap.String("status", string(record.Status)),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.StudentID, "student", "", "Student id")
	cmd.Flags().StringVar(&form.Date, "date", "", "Date, YYYY-MM-DD")
	cmd.Flags().StringVar(&form.Status, "status", "", "Present or Absent")

	return cmd
}
