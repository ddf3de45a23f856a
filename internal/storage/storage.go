// Package storage defines the capability contract every article-store
// backend implements, and the errors the NNTP session engine maps to
// protocol replies.
package storage

import (
	"errors"
	"time"
)

// Sentinel errors returned by Backend methods. The session engine switches
// on these (via errors.Is) to pick the right NNTP status line; backends
// should wrap them with fmt.Errorf("...: %w", ...) when they want to add
// context for the log.
var (
	ErrNoSuchGroup   = errors.New("no such newsgroup")
	ErrNoSuchArticle = errors.New("no such article")
	ErrNoNextArticle = errors.New("no next article in this group")
	ErrNoPrevArticle = errors.New("no previous article in this group")
	ErrPostRefused   = errors.New("posting refused")
)

// Capabilities advertises what a backend can and cannot do. Today the only
// flag is whether the backend can resolve articles by their native
// Message-ID; backends that can't (e.g. a forum gateway addressing articles
// purely by numeric ID) return false here, and callers fall back to
// stripping the <local@host> envelope down to the local part before calling
// in to the backend.
type Capabilities struct {
	MessageID bool
}

// Stats mirrors the (count, low, high) triple used by GROUP and LISTGROUP.
type Stats struct {
	Count int64
	Low   int64
	High  int64
}

// Article is the result of a full ARTICLE fetch: header lines exactly as
// stored (no trailing CRLF, no dot-stuffing applied) followed by body
// lines.
type Article struct {
	Number    int64
	MessageID string
	Head      []string
	Body      []string
}

// OverviewRow is one line of XOVER/OVER output.
type OverviewRow struct {
	Number     int64
	Subject    string
	From       string
	Date       string
	MessageID  string
	References string
	Bytes      int
	Lines      int
}

// HeaderLine is one line of XHDR/HDR output.
type HeaderLine struct {
	Number int64
	Value  string
}

// GroupTitle is one line of XGTITLE / LIST NEWSGROUPS output.
type GroupTitle struct {
	Group       string
	Description string
}

// Backend is the single typed contract every storage plugin implements:
// the mail-directory backend, and (out of scope for this repository, see
// SPEC_FULL.md) any future forwarding-proxy or forum-gateway backend.
// Every method that addresses a specific group returns ErrNoSuchGroup when
// the group does not exist for this backend, and ErrNoSuchArticle when the
// group exists but the article number/message-id does not resolve.
type Backend interface {
	// Capabilities reports what this backend instance can do.
	Capabilities() Capabilities

	// GroupExists reports whether the backend recognizes the group name.
	GroupExists(group string) bool

	// Stats returns (count, low, high) for a group, used to format GROUP
	// and LISTGROUP replies.
	Stats(group string) (Stats, error)

	// List returns one "group high low flag" line per group this backend
	// owns.
	List() ([]string, error)

	// ListNewsgroups returns one "group description" line per group
	// matching pattern ("" matches all). Descriptions may be empty.
	ListNewsgroups(pattern string) ([]string, error)

	// GroupTitles returns group/description pairs for XGTITLE.
	GroupTitles(pattern string) ([]GroupTitle, error)

	// ListGroup returns every article number currently valid in group, in
	// ascending order.
	ListGroup(group string) ([]int64, error)

	// FirstArticle returns the lowest valid article number in group.
	FirstArticle(group string) (int64, error)

	// Next returns the article number immediately after current, or
	// ErrNoNextArticle at the end of the group.
	Next(group string, current int64) (int64, error)

	// Last returns the article number immediately before current, or
	// ErrNoPrevArticle at the start of the group.
	Last(group string, current int64) (int64, error)

	// Stat resolves an article number to its Message-ID without reading
	// article content.
	Stat(group string, number int64) (string, error)

	// StatByMessageID resolves a Message-ID to its (group, number) within
	// this backend. Only meaningful when Capabilities().MessageID is true,
	// or after the caller has stripped the envelope to the local part.
	StatByMessageID(messageID string) (group string, number int64, err error)

	// Article returns the full article (headers + body).
	Article(group string, number int64) (*Article, error)

	// Head returns the header block only.
	Head(group string, number int64) ([]string, error)

	// Body returns the body only.
	Body(group string, number int64) ([]string, error)

	// Overview returns XOVER rows for [start, end] inclusive.
	Overview(group string, start, end int64) ([]OverviewRow, error)

	// Header returns XHDR lines for field across [start, end] inclusive.
	Header(group, field string, start, end int64) ([]HeaderLine, error)

	// NewGroups returns groups created at or after since. The mail
	// directory backend never tracks creation history, so it always
	// returns nil.
	NewGroups(since time.Time) ([]string, error)

	// NewNews returns "<msgid>" strings for every article in group (or all
	// groups, when group is "") whose storage mtime is at or after since.
	NewNews(group string, since time.Time) ([]string, error)

	// Post accepts a fully-formed, CRLF-terminated raw article for group
	// and stores it durably before returning nil.
	Post(group string, raw []byte, remoteAddr, username string) error
}
