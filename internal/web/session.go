package web

import (
	"encoding/hex"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	lf "github.com/bigredeye/roster/internal/logfield"
)

const (
	sessionName  = "roster"
	workspaceKey = "workspace"
)

func cookieKey(hexKey string) ([]byte, error) {
	if hexKey == "" {
		key := securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, errors.New("Failed to generate cookie key")
		}
		return key, nil
	}
	return hex.DecodeString(hexKey)
}

func setupSessions(s *server, r *gin.Engine) error {
	cookies := s.config.Server.Cookies
	if cookies.AuthenticationKey == "" || cookies.EncryptionKey == "" {
		s.logger.Warn("Cookie keys are not configured, sessions will not survive a restart")
	}

	authKey, err := cookieKey(cookies.AuthenticationKey)
	if err != nil {
		return errors.Wrap(err, "Failed to decode hex authenticationKey")
	}
	encryptKey, err := cookieKey(cookies.EncryptionKey)
	if err != nil {
		return errors.Wrap(err, "Failed to decode hex encryptionKey")
	}

	store := cookie.NewStore(authKey, encryptKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(s.config.Workspaces.TTL.Seconds()),
		Secure:   cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	return nil
}

// withWorkspace binds the browser session to its workspace, creating both on
// the first visit.
func (s *server) withWorkspace(c *gin.Context) {
	session := sessions.Default(c)
	id, _ := session.Get(workspaceKey).(string)
	if id == "" {
		id = uuid.New().String()
		session.Set(workspaceKey, id)
		if err := session.Save(); err != nil {
			s.logger.Error("Failed to save session", zap.Error(err))
		}
		s.logger.Info("New session", lf.Workspace(id))
	}

	ws, err := s.workspace(id)
	if err != nil {
		s.logger.Error("Failed to load workspace", lf.Workspace(id), zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Set(workspaceKey, ws)
	c.Next()
}

func currentWorkspace(c *gin.Context) *workspace {
	return c.MustGet(workspaceKey).(*workspace)
}
