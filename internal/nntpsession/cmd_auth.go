package nntpsession

// cmdAuthinfo implements AUTHINFO USER/PASS. When the server has no auth
// backend configured (cfg.AuthEnabled is false), it immediately reports
// success, matching the source's shortcut when nntp_auth is 'no'.
func (s *session) cmdAuthinfo(tokens []string) {
	if len(tokens) != 3 {
		s.writeLine(errCmdSyntaxError)
		return
	}
	if !s.cfg.AuthEnabled {
		s.writeLine(statusAuthAccepted)
		return
	}

	switch upper(tokens[1]) {
	case "USER":
		s.authUsername = tokens[2]
		s.writeLine(statusAuthContinue)
	case "PASS":
		if s.cfg.Auth != nil && s.cfg.Auth.IsValidUser(s.authUsername, tokens[2]) {
			s.writeLine(statusAuthAccepted)
		} else {
			s.writeLine(errAuthNoPermission)
			s.authUsername = ""
		}
	default:
		s.writeLine(errCmdSyntaxError)
	}
}
