package web

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/internal/directory"
	lf "github.com/bigredeye/roster/internal/logfield"
)

type studentService struct {
	webService
}

func setupStudentService(server *server, r *gin.Engine) {
	s := studentService{webService{server, server.config, server.logger.With(lf.Module("students"))}}

	g := r.Group("/students", server.withWorkspace, server.requireMounted)
	g.POST("", s.submit)
	g.POST("/:id/edit", s.edit)
	g.POST("/:id/delete", s.delete)

	r.POST("/edit/cancel", server.withWorkspace, server.requireMounted, s.cancel)
}

func (s studentService) submit(c *gin.Context) {
	ws := currentWorkspace(c)

	form := directory.Form{}
	if err := c.ShouldBind(&form); err != nil {
		s.log.Warn("Failed to bind student form", zap.Error(err))
		s.notify(c, "Malformed student form")
		s.backHome(c)
		return
	}

	action := "Failed to add student"
	if ws.directory.State().Editing {
		action = "Failed to update student"
	}
	if err := ws.directory.Submit(c.Request.Context(), form); err != nil {
		s.notify(c, describe(action, err))
	}
	s.backHome(c)
}

func (s studentService) edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if !currentWorkspace(c).directory.BeginEditByID(id) {
		s.notify(c, "Student not found")
	}
	s.backHome(c)
}

func (s studentService) cancel(c *gin.Context) {
	currentWorkspace(c).directory.CancelEdit()
	s.backHome(c)
}

func (s studentService) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := currentWorkspace(c).directory.Delete(c.Request.Context(), id); err != nil {
		s.notify(c, describe("Failed to delete student", err))
	}
	s.backHome(c)
}
