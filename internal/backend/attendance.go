package backend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/database"
	lf "github.com/bigredeye/roster/internal/logfield"
	"github.com/bigredeye/roster/internal/models"
)

type attendanceService struct {
	service
}

func setupAttendanceService(s *Server, r *gin.Engine) {
	svc := attendanceService{service{s, s.logger.With(lf.Module("attendance"))}}

	r.GET("/attendance/", svc.list)
	r.POST("/attendance/", svc.create)
	r.GET("/attendance/:student_id", svc.listStudent)
}

func recordsFromModels(records []models.Attendance) []api.AttendanceRecord {
	res := make([]api.AttendanceRecord, 0, len(records))
	for i := range records {
		res = append(res, attendanceFromModel(&records[i]))
	}
	return res
}

func (s attendanceService) list(c *gin.Context) {
	records, err := s.server.store.ListAttendance(c)
	if err != nil {
		s.log.Error("Failed to list attendance", zap.Error(err))
		abortWithDetail(c, http.StatusInternalServerError, "Failed to list attendance")
		return
	}
	c.JSON(http.StatusOK, recordsFromModels(records))
}

func (s attendanceService) listStudent(c *gin.Context) {
	id, ok := parseID(c, "student_id")
	if !ok {
		return
	}

	if _, err := s.server.store.FindStudent(c, id); errors.Is(err, database.ErrNotFound) {
		abortWithDetail(c, http.StatusNotFound, studentNotFound)
		return
	} else if err != nil {
		s.log.Error("Failed to find student", lf.StudentID(id), zap.Error(err))
		abortWithDetail(c, http.StatusInternalServerError, "Failed to find student")
		return
	}

	records, err := s.server.store.ListStudentAttendance(c, id)
	if err != nil {
		s.log.Error("Failed to list student attendance", lf.StudentID(id), zap.Error(err))
		abortWithDetail(c, http.StatusInternalServerError, "Failed to list attendance")
		return
	}
	c.JSON(http.StatusOK, recordsFromModels(records))
}

func (s attendanceService) create(c *gin.Context) {
	req := api.AttendanceRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Date.IsZero() {
		abortWithDetail(c, http.StatusUnprocessableEntity, "date is required")
		return
	}
	if !req.Status.Valid() {
		abortWithDetail(c, http.StatusUnprocessableEntity, "status must be one of Present, Absent")
		return
	}

	record := &models.Attendance{
		Date:      req.Date.Time,
		StudentID: req.StudentID,
		Status:    string(req.Status),
	}
	err := s.server.store.AddAttendance(c, record)
	s.server.metrics.observe("attendance", "create", err)
	if errors.Is(err, database.ErrNotFound) {
		abortWithDetail(c, http.StatusNotFound, studentNotFound)
		return
	} else if err != nil {
		s.log.Error("Failed to add attendance", lf.StudentID(req.StudentID), zap.Error(err))
		abortWithDetail(c, http.StatusInternalServerError, "Failed to add attendance")
		return
	}

	res := attendanceFromModel(record)
	s.log.Info("Added attendance",
		lf.AttendanceID(res.ID),
		lf.StudentID(res.StudentID),
		lf.Date(res.Date.Time),
		zap.String("status", string(res.Status)),
	)

	if !res.Status.IsPresent() {
		s.server.metrics.absences.Inc()
		if s.server.notifier != nil {
			if err := s.server.notifier.NotifyAbsence(c, &res); err != nil {
				s.log.Warn("Failed to notify about absence", lf.AttendanceID(res.ID), zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, res)
}
