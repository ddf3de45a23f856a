package nntpsession

import (
	"net"

	"github.com/go-while/go-papercut/internal/nntplog"
)

// Server accepts TCP connections and serves one session per connection,
// the way the teacher's nntp-server.go runs its accept loop: a single
// net.Listener, one goroutine per accepted connection, no connection pool
// or worker queue in front of it.
type Server struct {
	cfg Config
	ln  net.Listener
}

// NewServer binds addr and returns a Server ready for Serve.
func NewServer(addr string, cfg Config) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, ln: ln}, nil
}

// Addr returns the listener's bound address, useful when addr was
// "host:0" and the OS picked the port.
func (srv *Server) Addr() net.Addr {
	return srv.ln.Addr()
}

// Serve accepts connections until the listener is closed, spawning one
// goroutine per connection. Accept errors that report a timeout are
// retried; any other accept error, including the one returned after
// Close, ends Serve and is returned to the caller.
func (srv *Server) Serve() error {
	for {
		conn, err := srv.ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return err
		}
		remote := conn.RemoteAddr().String()
		nntplog.Line(remote, "connection accepted")
		go func() {
			defer conn.Close()
			s := newSession(srv.cfg, conn)
			s.serve()
			nntplog.Line(remote, "connection closed")
		}()
	}
}

// Close stops accepting new connections.
func (srv *Server) Close() error {
	return srv.ln.Close()
}
