// Package nntplog is the single place formatting and masking decisions
// for session log lines live, so every command handler logs through the
// same helper instead of reaching for log.Printf directly.
package nntplog

import (
	"fmt"
	"log"
	"strings"
	"time"
)

const timestampLayout = "Mon Jan 02 15:04:05 2006"

// Line logs one session event in the bracketed-timestamp style used
// throughout the teacher's nntp package: "[Mon Jan 02 15:04:05 2006]
// remote message". Timestamps are always UTC so log lines from different hosts
// line up.
func Line(remote, format string, args ...interface{}) {
	ts := time.Now().UTC().Format(timestampLayout)
	msg := maskSecrets(fmt.Sprintf(format, args...))
	log.Printf("[%s] %s %s", ts, remote, msg)
}

// Command logs a raw client command line, masking the password argument
// of AUTHINFO PASS so credentials never reach the log file.
func Command(remote, line string) {
	Line(remote, "> %s", maskAuthinfoPass(line))
}

// Fatalf logs and terminates the process, matching the teacher's use of
// log.Fatalf for unrecoverable startup errors.
func Fatalf(format string, args ...interface{}) {
	log.Fatalf(format, args...)
}

// maskAuthinfoPass replaces the password token of an "AUTHINFO PASS
// <secret>" command line with asterisks before it is ever formatted into
// a log line.
func maskAuthinfoPass(line string) string {
	fields := strings.Fields(line)
	if len(fields) >= 3 &&
		strings.EqualFold(fields[0], "AUTHINFO") &&
		strings.EqualFold(fields[1], "PASS") {
		fields[2] = "********"
		return strings.Join(fields, " ")
	}
	return line
}

// maskSecrets is a second masking pass applied to already-formatted
// messages, catching AUTHINFO PASS lines that were folded into a
// higher-level log message rather than logged verbatim via Command.
func maskSecrets(msg string) string {
	const needle = "AUTHINFO PASS "
	idx := strings.Index(strings.ToUpper(msg), needle)
	if idx < 0 {
		return msg
	}
	start := idx + len(needle)
	end := strings.IndexAny(msg[start:], "\r\n")
	if end < 0 {
		return msg[:start] + "********"
	}
	return msg[:start] + "********" + msg[start+end:]
}
