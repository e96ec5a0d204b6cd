package web

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/internal/config"
)

type webService struct {
	server *server
	config *config.Config
	log    *zap.Logger
}

// notify keeps a one-line message for the next page render.
func (s webService) notify(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	if err := session.Save(); err != nil {
		s.log.Error("Failed to save session", zap.Error(err))
	}
}

func (s webService) backHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "malformed id %q", c.Param("id"))
		return 0, false
	}
	return id, true
}
