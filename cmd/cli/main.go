package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bigredeye/roster/internal/config"
	lf "github.com/bigredeye/roster/internal/logfield"
	"github.com/bigredeye/roster/pkg/client/roster"
)

var log *zap.Logger

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func unwrap[T any](value T, err error) T {
	check(err)
	return value
}

var (
	configPath string
	endpoint   string
	client     *roster.Client

	rootCmd = &cobra.Command{
		Use:   "roster",
		Short: "Roster backend client",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.ParseConfig(configPath)
			if err != nil {
				return err
			}
			if endpoint == "" {
				endpoint = conf.Backend.BaseURL
			}
			log.Debug("Using backend", lf.Endpoint(endpoint))
			client = roster.NewClient(endpoint, conf.Backend.Timeout)
			return nil
		},
	}

	studentsCmd = &cobra.Command{
		Use:   "students",
		Short: "Manage students",
	}

	attendanceCmd = &cobra.Command{
		Use:   "attendance",
		Short: "Manage attendance records",
	}
)

func initLogging() {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.EncoderConfig.ConsoleSeparator = " "
	logConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.StampMilli)
	log = unwrap(logConfig.Build())
}

func initCommands() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Backend base url (defaults to Backend.BaseURL)")

	studentsCmd.AddCommand(makeListStudentsCommand())
	studentsCmd.AddCommand(makeAddStudentCommand())
	studentsCmd.AddCommand(makeUpdateStudentCommand())
	studentsCmd.AddCommand(makeDeleteStudentCommand())
	studentsCmd.AddCommand(makeImportStudentsCommand())

	attendanceCmd.AddCommand(makeListAttendanceCommand())
	attendanceCmd.AddCommand(makeAddAttendanceCommand())
	attendanceCmd.AddCommand(makeStudentAttendanceCommand())

	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(attendanceCmd)
}

func init() {
	initLogging()
	initCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %s\n", err.Error())
		os.Exit(1)
	}
}
