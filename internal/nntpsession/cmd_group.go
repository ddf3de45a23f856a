package nntpsession

import (
	"fmt"
)

// cmdGroup implements GROUP ggg: selects the group, resets the article
// pointer, and replies with the (count, low, high) triple.
func (s *session) cmdGroup(tokens []string) {
	if len(tokens) != 2 {
		s.writeLine(errCmdSyntaxError)
		return
	}
	group := tokens[1]
	backend := s.resolveGroup(group)
	if backend == nil || !backend.GroupExists(group) {
		s.writeLine(errNoSuchGroup)
		return
	}
	stats, err := backend.Stats(group)
	if err != nil {
		s.writeLine(errNoSuchGroup)
		return
	}
	s.selectGroup(group, backend)
	s.writeLine(fmt.Sprintf("211 %d %d %d %s group selected", stats.Count, stats.Low, stats.High, group))
}

// cmdListGroup implements LISTGROUP [ggg]: lists every valid article
// number in the (optionally newly selected) group, and sets the article
// pointer to the first one, matching the source's stated behavior.
func (s *session) cmdListGroup(tokens []string) {
	if len(tokens) > 2 {
		s.writeLine(errCmdSyntaxError)
		return
	}

	group := s.group
	backend := s.groupBack
	if len(tokens) == 2 {
		group = tokens[1]
		backend = s.resolveGroup(group)
	} else if !s.hasGroup {
		s.writeLine(errNoGroupSelected)
		return
	}

	if backend == nil || !backend.GroupExists(group) {
		s.writeLine(errNoSuchGroup)
		return
	}

	numbers, err := backend.ListGroup(group)
	if err != nil {
		s.writeLine(errNoSuchGroup)
		return
	}

	if len(tokens) == 2 {
		s.selectGroup(group, backend)
	}
	if len(numbers) > 0 {
		s.article = numbers[0]
		s.hasArticle = true
	} else {
		s.hasArticle = false
	}

	stats, _ := backend.Stats(group)
	lines := make([]string, len(numbers))
	for i, n := range numbers {
		lines[i] = fmt.Sprintf("%d", n)
	}
	s.writeMultiline(fmt.Sprintf("211 %d %d %d %s Article numbers follow (multiline)", stats.Count, stats.Low, stats.High, group), lines)
}
