package lf

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldModule       = "module"
	FieldStudentID    = "student_id"
	FieldStudentName  = "student_name"
	FieldAttendanceID = "attendance_id"
	FieldWorkspace    = "workspace"
	FieldGeneration   = "generation"
	FieldCount        = "count"
	FieldEndpoint     = "endpoint"
	FieldDate         = "date"
)

func Module(module string) zap.Field {
	return zap.String(FieldModule, module)
}

func StudentID(id int) zap.Field {
	return zap.Int(FieldStudentID, id)
}

func StudentName(name string) zap.Field {
	return zap.String(FieldStudentName, name)
}

func AttendanceID(id int) zap.Field {
	return zap.Int(FieldAttendanceID, id)
}

func Workspace(id string) zap.Field {
	return zap.String(FieldWorkspace, id)
}

func Generation(gen uint64) zap.Field {
	return zap.Uint64(FieldGeneration, gen)
}

func Count(n int) zap.Field {
	return zap.Int(FieldCount, n)
}

func Endpoint(url string) zap.Field {
	return zap.String(FieldEndpoint, url)
}

func Date(t time.Time) zap.Field {
	return zap.String(FieldDate, t.Format("2006-01-02"))
}
