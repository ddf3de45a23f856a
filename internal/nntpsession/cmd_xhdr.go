package nntpsession

import (
	"fmt"
	"strconv"
	"strings"
)

// xhdrFields is the allow-list of header names XHDR/HDR/XROVER will serve,
// matching the maildir backend's Header() switch. Anything outside this
// set is a 501, the same way the source's do_XHDR rejects any field other
// than SUBJECT/FROM, broadened here to every field the backend actually
// carries.
var xhdrFields = map[string]bool{
	"SUBJECT":    true,
	"FROM":       true,
	"REFERENCES": true,
	"DATE":       true,
	"MESSAGE-ID": true,
	"XREF":       true,
	"BYTES":      true,
	"LINES":      true,
}

// cmdXhdr implements XHDR, HDR and XROVER (the latter two are aliases:
// HDR is the modern name for XHDR, XROVER is XHDR pinned to the
// References field). forcedField overrides tokens[1] when non-empty.
func (s *session) cmdXhdr(tokens []string, forcedField string) {
	if !s.hasGroup {
		s.writeLine(errNoGroupSelected)
		return
	}

	var field string
	var rangeToken string
	switch {
	case forcedField != "":
		field = forcedField
		if len(tokens) >= 2 {
			rangeToken = tokens[1]
		}
	case len(tokens) < 2 || len(tokens) > 3:
		s.writeLine(errCmdSyntaxError)
		return
	default:
		field = tokens[1]
		if len(tokens) == 3 {
			rangeToken = tokens[2]
		}
	}

	if !xhdrFields[upper(field)] {
		s.writeLine(errCmdSyntaxError)
		return
	}

	var start, end int64
	if rangeToken == "" {
		if !s.hasArticle {
			s.writeLine(errNoArticleSelected)
			return
		}
		start, end = s.article, s.article
	} else if strings.Contains(rangeToken, "<") {
		_, _, number, err := s.cfg.Router.ResolveMessageID(rangeToken)
		if err != nil {
			s.writeLine(errNoSuchArticle)
			return
		}
		start, end = number, number
	} else if strings.Contains(rangeToken, "-") {
		parts := strings.SplitN(rangeToken, "-", 2)
		s0, perr := strconv.ParseInt(parts[0], 10, 64)
		if perr != nil {
			s.writeLine(errCmdSyntaxError)
			return
		}
		start = s0
		if parts[1] == "" {
			stats, serr := s.groupBack.Stats(s.group)
			if serr != nil {
				s.writeLine(errNoSuchGroup)
				return
			}
			end = stats.High
		} else {
			e, eerr := strconv.ParseInt(parts[1], 10, 64)
			if eerr != nil {
				s.writeLine(errCmdSyntaxError)
				return
			}
			end = e
		}
	} else {
		n, perr := strconv.ParseInt(rangeToken, 10, 64)
		if perr != nil {
			s.writeLine(errCmdSyntaxError)
			return
		}
		start, end = n, n
	}

	lines, err := s.groupBack.Header(s.group, field, start, end)
	if err != nil {
		s.writeLine(errNotCapable)
		return
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%d %s", l.Number, l.Value)
	}
	s.writeMultiline(statusXhdr, out)
}

// cmdXpat implements XPAT header range|<message-id> pat [pat...]: like
// XHDR but additionally filters rows whose value doesn't match any of the
// given wildmat patterns.
func (s *session) cmdXpat(tokens []string) {
	if len(tokens) < 4 {
		s.writeLine(errCmdSyntaxError)
		return
	}
	if !s.hasGroup {
		s.writeLine(errNoGroupSelected)
		return
	}

	field := tokens[1]
	rangeToken := tokens[2]
	patterns := tokens[3:]

	var start, end int64
	if strings.Contains(rangeToken, "<") {
		_, _, number, err := s.cfg.Router.ResolveMessageID(rangeToken)
		if err != nil {
			s.writeLine(errNoSuchArticle)
			return
		}
		start, end = number, number
	} else if strings.Contains(rangeToken, "-") {
		parts := strings.SplitN(rangeToken, "-", 2)
		s0, perr := strconv.ParseInt(parts[0], 10, 64)
		if perr != nil {
			s.writeLine(errCmdSyntaxError)
			return
		}
		start = s0
		if parts[1] == "" {
			stats, serr := s.groupBack.Stats(s.group)
			if serr != nil {
				s.writeLine(errNoSuchGroup)
				return
			}
			end = stats.High
		} else {
			e, eerr := strconv.ParseInt(parts[1], 10, 64)
			if eerr != nil {
				s.writeLine(errCmdSyntaxError)
				return
			}
			end = e
		}
	} else {
		n, perr := strconv.ParseInt(rangeToken, 10, 64)
		if perr != nil {
			s.writeLine(errCmdSyntaxError)
			return
		}
		start, end = n, n
	}

	lines, err := s.groupBack.Header(s.group, field, start, end)
	if err != nil {
		s.writeLine(errNotCapable)
		return
	}

	var out []string
	for _, l := range lines {
		for _, p := range patterns {
			if matched, _ := matchGlob(p, l.Value); matched {
				out = append(out, fmt.Sprintf("%d %s", l.Number, l.Value))
				break
			}
		}
	}
	s.writeMultiline(statusXpat, out)
}
