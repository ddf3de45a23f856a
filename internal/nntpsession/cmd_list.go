package nntpsession

import (
	"strings"
)

// cmdList implements LIST and its documented sub-keywords. Only the
// sub-keywords the original server actually implements are handled here
// (OVERVIEW.FMT, EXTENSIONS, NEWSGROUPS, and bare LIST), plus ACTIVE
// (see cmdListActive); everything else
// (ACTIVE.TIMES, DISTRIBUTIONS, DISTRIB.PATS, SUBSCRIPTIONS) replies
// "program error, function not performed", matching the source exactly.
func (s *session) cmdList(tokens []string) {
	if len(tokens) == 2 && upper(tokens[1]) == "OVERVIEW.FMT" {
		s.writeMultiline(statusOverviewFmt, []string{strings.Join(overviewFields, ":") + ":"})
		return
	}
	if len(tokens) == 2 && upper(tokens[1]) == "EXTENSIONS" {
		s.writeMultiline(statusExtensions, extensions)
		return
	}
	if len(tokens) == 2 && upper(tokens[1]) == "ACTIVE" {
		s.cmdListActive("")
		return
	}
	if len(tokens) == 3 && upper(tokens[1]) == "ACTIVE" {
		s.cmdListActive(tokens[2])
		return
	}
	if len(tokens) >= 2 && upper(tokens[1]) == "NEWSGROUPS" {
		pattern := ""
		if len(tokens) == 3 {
			pattern = tokens[2]
		}
		lines := s.cfg.Router.ListNewsgroups(pattern)
		s.writeMultiline(statusListNewsgroup, lines)
		return
	}
	if len(tokens) >= 2 {
		s.writeLine(errNotPerformed)
		return
	}

	lines := s.cfg.Router.List()
	s.writeMultiline(statusList, lines)
}

// cmdListActive restores LIST ACTIVE [wildmat], present in the original
// Python source only as a commented-out stub; a trivial glob-style
// wildmat filter is implemented here directly against the group listing.
func (s *session) cmdListActive(pattern string) {
	lines := s.cfg.Router.List()
	if pattern == "" {
		s.writeMultiline(statusList, lines)
		return
	}
	var out []string
	for _, line := range lines {
		name := line
		if i := strings.IndexByte(line, ' '); i >= 0 {
			name = line[:i]
		}
		if matched, _ := matchGlob(pattern, name); matched {
			out = append(out, line)
		}
	}
	s.writeMultiline(statusList, out)
}

// cmdXgtitle implements XGTITLE [wildmat].
func (s *session) cmdXgtitle(tokens []string) {
	if len(tokens) > 2 {
		s.writeLine(errCmdSyntaxError)
		return
	}
	pattern := ""
	if len(tokens) == 2 {
		pattern = tokens[1]
	} else if !s.hasGroup {
		s.writeLine(errNoGroupSelected)
		return
	} else {
		pattern = s.group
	}

	titles := s.cfg.Router.GroupTitles(pattern)
	lines := make([]string, len(titles))
	for i, t := range titles {
		lines[i] = t.Group + " " + t.Description
	}
	s.writeMultiline(statusXgtitle, lines)
}
