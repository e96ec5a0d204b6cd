package web

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bigredeye/roster/internal/directory"
	"github.com/bigredeye/roster/internal/ledger"
	lf "github.com/bigredeye/roster/internal/logfield"
)

// workspace is the client-side state of one browser session.
type workspace struct {
	id        string
	directory *directory.Directory
	ledger    *ledger.Ledger

	mounted atomic.Bool
}

func (s *server) newWorkspace(id string) *workspace {
	log := s.logger.With(lf.Workspace(id))
	dir := directory.New(s.client, log)
	return &workspace{
		id:        id,
		directory: dir,
		ledger:    ledger.New(s.client, dir, log),
	}
}

// mount fetches both collections concurrently. A failed fetch does not stop
// the other one.
func (w *workspace) mount(ctx context.Context) error {
	w.mounted.Store(true)

	var g errgroup.Group
	g.Go(func() error {
		return w.directory.Refresh(ctx)
	})
	g.Go(func() error {
		return w.ledger.Refresh(ctx)
	})
	return g.Wait()
}

func (s *server) workspace(id string) (*workspace, error) {
	ttl := s.config.Workspaces.TTL
	item, err := s.workspaces.Fetch(id, ttl, func() (interface{}, error) {
		return s.newWorkspace(id), nil
	})
	if err != nil {
		return nil, err
	}
	item.Extend(ttl)
	return item.Value().(*workspace), nil
}

// requireMounted fetches the lists of a workspace that has not been rendered
// yet, so that form actions see the current students.
func (s *server) requireMounted(c *gin.Context) {
	ws := currentWorkspace(c)
	if !ws.mounted.Load() {
		if err := ws.mount(c.Request.Context()); err != nil {
			s.logger.Warn("Workspace mounted with errors", lf.Workspace(ws.id), zap.Error(err))
		}
	}
	c.Next()
}
