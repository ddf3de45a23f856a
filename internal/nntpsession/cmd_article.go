package nntpsession

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-while/go-papercut/internal/storage"
)

// retrieveKind distinguishes ARTICLE/HEAD/BODY/STAT, which share
// everything except which part of the article they return and which
// status line they report it under. This mirrors the near-identical
// do_ARTICLE/do_HEAD/do_BODY/do_STAT bodies in the source, collapsed into
// one generic handler parameterized by kind instead of four copies.
type retrieveKind int

const (
	retrieveArticle retrieveKind = iota
	retrieveHead
	retrieveBody
	retrieveStat
)

// cmdRetrieve implements ARTICLE, HEAD, BODY and STAT: all four accept an
// optional article number or <message-id>, fall back to the current
// article pointer when no argument is given, and reply with a status
// line naming the resolved number and Message-ID.
func (s *session) cmdRetrieve(tokens []string, kind retrieveKind) {
	if !s.hasGroup {
		s.writeLine(errNoGroupSelected)
		return
	}
	if len(tokens) == 1 && !s.hasArticle {
		s.writeLine(errNoArticleSelected)
		return
	}

	var backend storage.Backend
	var group string
	var number int64

	switch {
	case len(tokens) == 2 && strings.Contains(tokens[1], "<"):
		backend, group, number, _ = s.cfg.Router.ResolveMessageID(tokens[1])
	case len(tokens) == 2:
		n, perr := strconv.ParseInt(tokens[1], 10, 64)
		if perr != nil {
			s.writeLine(errCmdSyntaxError)
			return
		}
		backend, group, number = s.groupBack, s.group, n
	default:
		backend, group, number = s.groupBack, s.group, s.article
	}

	if backend == nil {
		s.writeLine(errNoSuchArticleNum)
		return
	}

	messageID, statErr := backend.Stat(group, number)
	if statErr != nil {
		if errors.Is(statErr, storage.ErrNoSuchGroup) {
			s.writeLine(errNoSuchGroup)
		} else {
			s.writeLine(errNoSuchArticleNum)
		}
		return
	}

	if len(tokens) == 2 {
		s.article = number
		s.hasArticle = true
		s.group = group
	}

	switch kind {
	case retrieveStat:
		s.writeLine(fmt.Sprintf("223 %d <%s> article retrieved - request text separately", number, messageID))
	case retrieveHead:
		head, herr := backend.Head(group, number)
		if herr != nil {
			s.writeLine(errNoSuchArticleNum)
			return
		}
		s.writeMultiline(fmt.Sprintf("221 %d <%s> article retrieved - head follows", number, messageID), head)
	case retrieveBody:
		body, berr := backend.Body(group, number)
		if berr != nil {
			s.writeLine(errNoSuchArticleNum)
			return
		}
		s.writeMultiline(fmt.Sprintf("222 %d <%s> article retrieved - body follows", number, messageID), body)
	case retrieveArticle:
		art, aerr := backend.Article(group, number)
		if aerr != nil {
			s.writeLine(errNoSuchArticleNum)
			return
		}
		lines := make([]string, 0, len(art.Head)+1+len(art.Body))
		lines = append(lines, art.Head...)
		lines = append(lines, "")
		lines = append(lines, art.Body...)
		s.writeMultiline(fmt.Sprintf("220 %d <%s> article retrieved - head and body follow", number, messageID), lines)
	}
}

func (s *session) cmdLast(tokens []string) {
	if !s.hasGroup {
		s.writeLine(errNoGroupSelected)
		return
	}
	if !s.hasArticle {
		s.writeLine(errNoArticleSelected)
		return
	}
	number, err := s.groupBack.Last(s.group, s.article)
	if err != nil {
		s.writeLine(errNoPreviousArticle)
		return
	}
	s.article = number
	messageID, err := s.groupBack.Stat(s.group, number)
	if err != nil {
		s.writeLine(errNoSuchArticleNum)
		return
	}
	s.writeLine(fmt.Sprintf("223 %d <%s> article retrieved - request text separately", number, messageID))
}

func (s *session) cmdNext(tokens []string) {
	if !s.hasGroup {
		s.writeLine(errNoGroupSelected)
		return
	}
	var number int64
	var err error
	if !s.hasArticle {
		number, err = s.groupBack.FirstArticle(s.group)
	} else {
		number, err = s.groupBack.Next(s.group, s.article)
	}
	if err != nil {
		s.writeLine(errNoNextArticle)
		return
	}
	s.article = number
	s.hasArticle = true
	messageID, err := s.groupBack.Stat(s.group, number)
	if err != nil {
		s.writeLine(errNoSuchArticleNum)
		return
	}
	s.writeLine(fmt.Sprintf("223 %d <%s> article retrieved - request text separately", number, messageID))
}
