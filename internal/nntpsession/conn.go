package nntpsession

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-while/go-papercut/internal/nntplog"
)

// maxBlankLines is how many consecutive empty lines from a client we
// tolerate before dropping the connection, matching the source's
// broken_oe_checker counter (some old Outlook Express builds spammed bare
// newlines).
const maxBlankLines = 10

// idleTimeout is how long serve waits for a client to send a line before
// closing the connection, matching the source's socket timeout of 180
// seconds.
const idleTimeout = 180 * time.Second

// serve runs the read-dispatch-write loop for one connection until the
// client disconnects, sends QUIT, trips the blank-line guard, or goes
// idle for longer than idleTimeout.
func (s *session) serve() {
	defer s.out.Flush()

	if s.cfg.ReadOnly {
		s.writeLine(fmt.Sprintf("201 %s Papercut %s server ready (no posting allowed)", s.cfg.Hostname, ServerVersion))
	} else {
		s.writeLine(fmt.Sprintf("200 %s Papercut %s server ready (posting allowed)", s.cfg.Hostname, ServerVersion))
	}
	s.out.Flush()

	for !s.quit {
		s.conn.SetReadDeadline(time.Now().Add(idleTimeout))
		line, err := s.in.ReadString('\n')
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				nntplog.Line(s.remote, "Connection timed out from %s", s.remote)
			}
			return
		}

		if s.sendingArticle {
			if line == ".\r\n" || line == ".\n" {
				s.sendingArticle = false
				s.finishPost()
				s.out.Flush()
				continue
			}
			s.articleLines = append(s.articleLines, strings.TrimRight(line, "\r\n"))
			continue
		}

		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			s.blankLineStreak++
			if s.blankLineStreak >= maxBlankLines {
				return
			}
			continue
		}
		s.blankLineStreak = 0

		nntplog.Command(s.remote, trimmed)
		s.dispatch(trimmed)
		s.out.Flush()
	}
}

// writeLine writes one CRLF-terminated reply line.
func (s *session) writeLine(line string) {
	s.out.WriteString(line)
	s.out.WriteString("\r\n")
}

// writeMultiline writes status as the first line, then every line in
// body dot-stuffed (a leading '.' doubled), followed by the terminating
// "." line, matching the textproto dot-writer convention the teacher uses
// for multi-line replies.
func (s *session) writeMultiline(status string, body []string) {
	s.writeLine(status)
	for _, line := range body {
		if strings.HasPrefix(line, ".") {
			s.out.WriteString(".")
		}
		s.out.WriteString(line)
		s.out.WriteString("\r\n")
	}
	s.out.WriteString(".\r\n")
}
