package maildir

import (
	"os"
	"strings"
)

// fallbackHost is substituted when a filename carries no recognizable host
// token and the process hostname itself is unavailable. The original
// papercut implementation fell back to the bare (and undefined) name
// "papercut" here, which is a bug in the source it was ported from; this
// backend falls back to the running process's own hostname instead, and
// only reaches for this constant if even that lookup fails.
const fallbackHost = "localhost"

// processHostname is resolved once at package init, mirroring the
// process-wide socket.gethostname() call the original Python backend makes
// per file. A backend instance may still be handed an explicit hostname
// (see Config.Hostname) for the Message-ID host part; this is only the
// synthesis fallback.
var processHostname = func() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return fallbackHost
	}
	return h
}()

// synthesizeMessageID builds a Message-ID local part plus host for a
// message file that carries no Message-ID header of its own. Maildir file
// names look like "<unixsec>.M<micros>P<pid>Q<count>.<hostname>"; the
// segment between the second and third dot is the producing host. When
// that segment can't be found, the process hostname is used instead of
// carrying over the source's undefined-name fallback.
func synthesizeMessageID(filename string) string {
	base := filename
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}

	parts := strings.Split(base, ".")
	host := processHostname
	local := base
	if len(parts) >= 3 {
		host = parts[2]
		if i := strings.IndexByte(host, ','); i >= 0 {
			host = host[:i]
		}
		local = strings.Replace(base, host, "", 1)
	}

	local = filterAlnum(local)
	return local + "@" + host
}

// filterAlnum keeps only ASCII letters and digits, matching the source's
// strutil.filterchars(basename, letters+digits) step.
func filterAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
