package nntpsession

import (
	"fmt"
	"strconv"
	"strings"
)

// cmdXover implements XOVER/OVER [range]. range is either a bare number,
// "start-end", or "start-" (start to the group's current high-water
// mark); omitted entirely it falls back to the current article pointer,
// exactly as do_XOVER does.
func (s *session) cmdXover(tokens []string) {
	if !s.hasGroup {
		s.writeLine(errNoGroupSelected)
		return
	}

	var start, end int64
	switch {
	case len(tokens) == 1:
		if !s.hasArticle {
			s.writeLine(errNoArticleSelected)
			return
		}
		start, end = s.article, s.article
	case !strings.Contains(tokens[1], "-"):
		n, err := strconv.ParseInt(tokens[1], 10, 64)
		if err != nil {
			s.writeLine(errCmdSyntaxError)
			return
		}
		start, end = n, n
	default:
		parts := strings.SplitN(tokens[1], "-", 2)
		s0, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			s.writeLine(errCmdSyntaxError)
			return
		}
		start = s0
		if parts[1] == "" {
			stats, err := s.groupBack.Stats(s.group)
			if err != nil {
				s.writeLine(errNoSuchGroup)
				return
			}
			end = stats.High
		} else {
			e, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				s.writeLine(errCmdSyntaxError)
				return
			}
			end = e
		}
	}

	rows, err := s.groupBack.Overview(s.group, start, end)
	if err != nil {
		s.writeLine(errNotCapable)
		return
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		xref := fmt.Sprintf("Xref: %s %s:%d", s.cfg.Hostname, s.group, r.Number)
		lines[i] = fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s",
			r.Number, r.Subject, r.From, r.Date, r.MessageID, r.References, r.Bytes, r.Lines, xref)
	}
	s.writeMultiline(statusXover, lines)
}
