package nntpsession

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// upper folds a protocol token to uppercase using golang.org/x/text/cases
// rather than strings.ToUpper, matching how the wider example pack
// reaches for x/text for this kind of locale-aware case work instead of
// the ASCII-only stdlib fold.
var upperCaser = cases.Upper(language.Und)

func upper(s string) string {
	return upperCaser.String(s)
}

// dispatch tokenizes one command line and routes it to the matching
// do*/cmd* handler, reproducing the source's auth gate: once
// AuthEnabled is set, every command except AUTHINFO and MODE is refused
// until AUTHINFO PASS has succeeded.
func (s *session) dispatch(line string) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		s.writeLine(errNotCapable)
		return
	}
	verb := upper(tokens[0])

	if verb == "POST" {
		s.cmdPost(tokens)
		return
	}

	if s.cfg.AuthEnabled && s.authUsername == "" && verb != "AUTHINFO" && verb != "MODE" {
		s.writeLine(statusAuthRequired)
		return
	}

	switch verb {
	case "ARTICLE":
		s.cmdRetrieve(tokens, retrieveArticle)
	case "HEAD":
		s.cmdRetrieve(tokens, retrieveHead)
	case "BODY":
		s.cmdRetrieve(tokens, retrieveBody)
	case "STAT":
		s.cmdRetrieve(tokens, retrieveStat)
	case "GROUP":
		s.cmdGroup(tokens)
	case "LISTGROUP":
		s.cmdListGroup(tokens)
	case "LIST":
		s.cmdList(tokens)
	case "LAST":
		s.cmdLast(tokens)
	case "NEXT":
		s.cmdNext(tokens)
	case "NEWGROUPS":
		s.cmdNewGroups(tokens)
	case "NEWNEWS":
		s.cmdNewNews(tokens)
	case "XOVER", "OVER":
		s.cmdXover(tokens)
	case "XHDR", "HDR":
		s.cmdXhdr(tokens, "")
	case "XROVER":
		s.cmdXhdr(tokens, "REFERENCES")
	case "XPAT":
		s.cmdXpat(tokens)
	case "XGTITLE":
		s.cmdXgtitle(tokens)
	case "IHAVE":
		s.cmdIhave(tokens)
	case "MODE":
		s.cmdMode(tokens)
	case "AUTHINFO":
		s.cmdAuthinfo(tokens)
	case "DATE":
		s.cmdDate(tokens)
	case "HELP":
		s.cmdHelp(tokens)
	case "SLAVE":
		s.writeLine(statusSlave)
	case "XVERSION":
		s.writeLine("200 Papercut " + ServerVersion)
	case "QUIT":
		s.quit = true
		s.writeLine(statusClosing)
	default:
		s.writeLine(errNotCapable)
	}
}
