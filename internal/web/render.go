package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/internal/forms"
	"github.com/bigredeye/roster/pkg/client/roster"
)

// describe turns an operation error into a one-line notice.
func describe(action string, err error) string {
	var invalid *forms.InvalidError
	if errors.As(err, &invalid) {
		return fmt.Sprintf("%s: please fill in %s", action, strings.Join(invalid.Fields, ", "))
	}
	var httpErr *roster.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("%s: %s", action, httpErr.Detail)
	}
	return fmt.Sprintf("%s: backend is unavailable", action)
}

func (s *server) RenderHomePage(c *gin.Context) {
	ws := currentWorkspace(c)

	session := sessions.Default(c)
	notices := session.Flashes()
	if len(notices) > 0 {
		if err := session.Save(); err != nil {
			s.logger.Error("Failed to save session", zap.Error(err))
		}
	}

	if err := ws.mount(c.Request.Context()); err != nil {
		notices = append(notices, describe("Failed to load records", err))
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Title":     "Student Attendance",
		"Directory": ws.directory.View(),
		"Ledger":    ws.ledger.View(),
		"Notices":   notices,
	})
}
