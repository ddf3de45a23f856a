package nntpsession

import (
	"time"
)

// cmdMode implements MODE READER|STREAM.
func (s *session) cmdMode(tokens []string) {
	if len(tokens) != 2 {
		s.writeLine(errCmdSyntaxError)
		return
	}
	switch upper(tokens[1]) {
	case "READER":
		if s.cfg.ReadOnly {
			s.writeLine(statusNoPostMode)
		} else {
			s.writeLine(statusPostMode)
		}
	case "STREAM":
		s.writeLine(errNoStream)
	default:
		s.writeLine(errCmdSyntaxError)
	}
}

// cmdHelp implements HELP, listing every recognized verb.
func (s *session) cmdHelp(tokens []string) {
	lines := make([]string, len(commands))
	for i, c := range commands {
		lines[i] = "\t" + c
	}
	s.writeMultiline(statusHelpMsg, lines)
}

// cmdDate implements DATE, reporting the current time in UTC. The
// original server reports local time here, a deviation this
// implementation deliberately corrects per SPEC_FULL.md: NNTP's DATE
// extension is specified in terms of UTC, and replying in the server's
// local zone produces a value clients can't safely use without knowing
// that zone.
func (s *session) cmdDate(tokens []string) {
	s.writeLine("111 " + time.Now().UTC().Format("20060102150405"))
}
