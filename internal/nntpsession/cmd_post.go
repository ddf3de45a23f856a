package nntpsession

import (
	"strings"

	"github.com/go-while/go-papercut/internal/nntplog"
)

// cmdPost implements the first half of POST: refuse outright on a
// read-only server or an unauthenticated session, otherwise start
// accumulating the article body line by line until the terminating dot,
// matching do_POST's use of the shared sending_article flag.
func (s *session) cmdPost(tokens []string) {
	if s.cfg.ReadOnly {
		s.writeLine(statusReadOnly)
		return
	}
	if s.cfg.AuthEnabled && s.authUsername == "" {
		s.writeLine(statusAuthRequired)
		return
	}
	s.sendingArticle = true
	s.articleLines = s.articleLines[:0]
	s.writeLine(statusSendArticle)
}

// finishPost is invoked once the client sends the lone "." that ends the
// article. It extracts the Newsgroups header, resolves the backend for
// it, and hands the raw article off to Backend.Post. A backend error or a
// panic during posting is logged and answered with 441.
func (s *session) finishPost() {
	lines := s.articleLines
	s.articleLines = nil
	defer func() {
		if r := recover(); r != nil {
			nntplog.Line(s.remote, "posting failed: %v", r)
			s.writeLine(errPostingFailed)
		}
	}()

	group := headerValue(lines, "Newsgroups")
	backend := s.cfg.Router.Resolve(group)
	if backend == nil || group == "" || !backend.GroupExists(group) {
		s.writeLine(errPostingFailed)
		return
	}

	raw := strings.Join(lines, "\r\n") + "\r\n"
	if err := backend.Post(group, []byte(raw), s.remote, s.authUsername); err != nil {
		nntplog.Line(s.remote, "posting failed: %v", err)
		s.writeLine(errPostingFailed)
		return
	}
	s.writeLine(statusPostOK)
}

// cmdIhave implements IHAVE <message-id>. This server has no inbound feed
// peering (see SPEC_FULL.md Non-goals), so every syntactically valid
// request is refused with "article not wanted", matching the source
// exactly.
func (s *session) cmdIhave(tokens []string) {
	if len(tokens) != 2 || !strings.Contains(tokens[1], "<") {
		s.writeLine(errCmdSyntaxError)
		return
	}
	s.writeLine(errNoIhaveHere)
}

// headerValue does a case-insensitive scan for the first "Name: value"
// header line matching name, stopping at the first blank line.
func headerValue(lines []string, name string) string {
	prefix := strings.ToLower(name) + ":"
	for _, line := range lines {
		if line == "" {
			break
		}
		if strings.HasPrefix(strings.ToLower(line), prefix) {
			return strings.TrimSpace(line[len(prefix):])
		}
	}
	return ""
}
