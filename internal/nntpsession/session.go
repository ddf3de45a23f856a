package nntpsession

import (
	"bufio"
	"net"

	"github.com/go-while/go-papercut/internal/auth"
	"github.com/go-while/go-papercut/internal/storage"
)

// Config carries everything a Session needs that is shared across every
// connection: the backend router, the auth store, and the handful of
// server-wide settings the original reads straight out of its settings
// module.
type Config struct {
	Hostname    string
	Router      *storage.Router
	Auth        auth.Backend
	AuthEnabled bool
	ReadOnly    bool
}

// session is the per-connection protocol state: the selected group and
// article pointer, the authenticated username, and whatever partial
// article a POST is currently accumulating. One session is created
// per accepted connection and discarded when it closes; nothing here is
// shared across connections.
type session struct {
	cfg  Config
	conn net.Conn
	in   *bufio.Reader
	out  *bufio.Writer

	remote string

	hasGroup   bool
	group      string
	groupBack  storage.Backend
	hasArticle bool
	article    int64

	authUsername string

	sendingArticle bool
	articleLines   []string

	blankLineStreak int
	quit            bool
}

func newSession(cfg Config, conn net.Conn) *session {
	return &session{
		cfg:    cfg,
		conn:   conn,
		in:     bufio.NewReader(conn),
		out:    bufio.NewWriter(conn),
		remote: conn.RemoteAddr().String(),
	}
}

// resolveGroup looks up group's backend via the router, remembering it so
// repeated commands against the already-selected group don't re-resolve
// the hierarchy on every call.
func (s *session) resolveGroup(group string) storage.Backend {
	if s.hasGroup && s.group == group && s.groupBack != nil {
		return s.groupBack
	}
	return s.cfg.Router.Resolve(group)
}

// selectGroup sets the current group pointer and clears the article
// pointer the way GROUP and LISTGROUP do.
func (s *session) selectGroup(group string, backend storage.Backend) {
	s.hasGroup = true
	s.group = group
	s.groupBack = backend
	s.hasArticle = false
	s.article = 0
}
