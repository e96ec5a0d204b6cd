package backend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/database"
	lf "github.com/bigredeye/roster/internal/logfield"
)

const studentNotFound = "Student not found"

type studentService struct {
	service
}

func setupStudentService(s *Server, r *gin.Engine) {
	svc := studentService{service{s, s.logger.With(lf.Module("students"))}}

	r.GET("/students/", svc.list)
	r.POST("/students/", svc.create)
	r.PUT("/students/:id", svc.update)
	r.DELETE("/students/:id", svc.delete)
}

func parseID(c *gin.Context, param string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, "Invalid "+param)
		return 0, false
	}
	return id, true
}

func (s studentService) list(c *gin.Context) {
	students, err := s.server.store.ListStudents(c)
	if err != nil {
		s.log.Error("Failed to list students", zap.Error(err))
		abortWithDetail(c, http.StatusInternalServerError, "Failed to list students")
		return
	}

	res := make([]api.Student, 0, len(students))
	for i := range students {
		res = append(res, studentFromModel(&students[i]))
	}
	c.JSON(http.StatusOK, res)
}

func (s studentService) create(c *gin.Context) {
	body := studentBody{}
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	student := studentToModel(0, body.request())
	err := s.server.store.AddStudent(c, student)
	s.server.metrics.observe("student", "create", err)
	if err != nil {
		s.log.Error("Failed to add student", zap.Error(err))
		abortWithDetail(c, http.StatusInternalServerError, "Failed to add student")
		return
	}

	s.log.Info("Added student", lf.StudentID(student.ID), lf.StudentName(student.Name))
	c.JSON(http.StatusOK, studentFromModel(student))
}

func (s studentService) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	body := studentBody{}
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	student := studentToModel(id, body.request())
	err := s.server.store.UpdateStudent(c, student)
	s.server.metrics.observe("student", "update", err)
	if errors.Is(err, database.ErrNotFound) {
		abortWithDetail(c, http.StatusNotFound, studentNotFound)
		return
	} else if err != nil {
		s.log.Error("Failed to update student", lf.StudentID(id), zap.Error(err))
		abortWithDetail(c, http.StatusInternalServerError, "Failed to update student")
		return
	}

	s.log.Info("Updated student", lf.StudentID(id))
	c.JSON(http.StatusOK, studentFromModel(student))
}

func (s studentService) delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	student, err := s.server.store.DeleteStudent(c, id)
	s.server.metrics.observe("student", "delete", err)
	if errors.Is(err, database.ErrNotFound) {
		abortWithDetail(c, http.StatusNotFound, studentNotFound)
		return
	} else if err != nil {
		s.log.Error("Failed to delete student", lf.StudentID(id), zap.Error(err))
		abortWithDetail(c, http.StatusInternalServerError, "Failed to delete student")
		return
	}

	s.log.Info("Deleted student", lf.StudentID(id))
	c.JSON(http.StatusOK, studentFromModel(student))
}
