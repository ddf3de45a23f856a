package nntpsession

import (
	"strings"
	"time"

	"github.com/go-while/go-papercut/internal/storage"
)

// cmdNewGroups implements NEWGROUPS date time [GMT] [<distributions>].
// The mail directory backend never tracks group creation history (see
// maildir.Backend.NewGroups), so in practice this always replies with an
// empty list; the parsing and dispatch are kept faithful regardless so a
// future history-aware backend can plug straight in.
func (s *session) cmdNewGroups(tokens []string) {
	if len(tokens) < 3 || len(tokens) > 5 {
		s.writeLine(errCmdSyntaxError)
		return
	}
	gmt := len(tokens) > 3 && upper(tokens[3]) == "GMT"
	since, ok := parseNewsTimestamp(tokens[1], tokens[2], gmt, time.Now())
	if !ok {
		s.writeLine(errCmdSyntaxError)
		return
	}
	groups := s.cfg.Router.NewGroups(since)
	s.writeMultiline(statusNewGroups, groups)
}

// cmdNewNews implements NEWNEWS newsgroups date time [GMT]
// [<distribution>]. When the newsgroups argument names one exact,
// existing group (no wildmat metacharacters) the search is scoped to
// that group's backend; otherwise every backend is consulted.
func (s *session) cmdNewNews(tokens []string) {
	if len(tokens) < 4 || len(tokens) > 6 {
		s.writeLine(errCmdSyntaxError)
		return
	}

	pattern := tokens[1]
	var groupBackend storage.Backend
	if !strings.ContainsAny(pattern, "*,") {
		groupBackend = s.cfg.Router.BackendForExistingGroup(pattern)
		if groupBackend == nil {
			s.writeLine(errNoSuchGroup)
			return
		}
	}

	gmt := len(tokens) > 4 && upper(tokens[4]) == "GMT"
	since, ok := parseNewsTimestamp(tokens[2], tokens[3], gmt, time.Now())
	if !ok {
		s.writeLine(errCmdSyntaxError)
		return
	}

	news := s.cfg.Router.NewNews(groupBackend, pattern, since)
	s.writeMultiline(statusNewNews, news)
}
