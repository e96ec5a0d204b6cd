package web

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/internal/ledger"
	lf "github.com/bigredeye/roster/internal/logfield"
)

type attendanceService struct {
	webService
}

func setupAttendanceService(server *server, r *gin.Engine) {
	s := attendanceService{webService{server, server.config, server.logger.With(lf.Module("attendance"))}}

	r.POST("/attendance", server.withWorkspace, server.requireMounted, s.add)
}

func (s attendanceService) add(c *gin.Context) {
	form := ledger.Form{}
	if err := c.ShouldBind(&form); err != nil {
		s.log.Warn("Failed to bind attendance form", zap.Error(err))
		s.notify(c, "Malformed attendance form")
		s.backHome(c)
		return
	}

	if err := currentWorkspace(c).ledger.Add(c.Request.Context(), form); err != nil {
		s.notify(c, describe("Failed to add attendance", err))
	}
	s.backHome(c)
}
