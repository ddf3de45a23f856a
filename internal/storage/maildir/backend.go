// Package maildir implements a storage.Backend over a maildir-style
// directory tree, one subdirectory (with new/cur/tmp) per newsgroup. It is
// the Go equivalent of papercut's Papercut_Storage plus its HeaderCache,
// ported to the typed storage.Backend contract.
package maildir

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-while/go-papercut/internal/storage"
)

// Config controls how a Backend addresses its articles and groups.
type Config struct {
	// Root is the maildir top-level directory; each immediate
	// subdirectory is one newsgroup.
	Root string
	// Hostname is used in Xref lines and as the host part of
	// synthesized Message-IDs and Path headers. Defaults to the
	// process hostname when empty.
	Hostname string
	// ReadOnly disables Post, matching settings.server_type ==
	// 'read-only' in the source.
	ReadOnly bool
}

// Backend stores articles as one file per message under
// <root>/<group>/{new,cur,tmp}, numbering articles by their position in
// the maildir-timestamp-sorted cur/ listing, exactly as
// get_group_article_list does in the source. It keeps an in-memory
// HeaderCache so XOVER/XHDR over a large group don't reopen every file on
// every call.
type Backend struct {
	cfg      Config
	hostname string
	cache    *HeaderCache

	postSeq int64
}

// NewBackend opens cfg.Root and builds its header cache. The root
// directory must already contain one subdirectory per group; creating new
// groups is an operational task (mkdir -p <root>/<group>/{new,cur,tmp}),
// not something this backend does on the fly, matching the source's
// comment to the same effect.
func NewBackend(cfg Config) (*Backend, error) {
	if cfg.Hostname == "" {
		cfg.Hostname = processHostname
	}
	cache, err := NewHeaderCache(cfg.Root)
	if err != nil {
		return nil, err
	}
	return &Backend{cfg: cfg, hostname: cfg.Hostname, cache: cache}, nil
}

// Capabilities reports that this backend resolves articles by their
// native (synthesized-or-real) Message-ID.
func (b *Backend) Capabilities() storage.Capabilities {
	return storage.Capabilities{MessageID: true}
}

func (b *Backend) GroupExists(group string) bool {
	return b.cache.HasGroup(group)
}

func (b *Backend) groupDir(group string) string {
	return filepath.Join(b.cfg.Root, group)
}

// refresh re-scans group's cur/ directory, picking up anything posted or
// delivered since the last call.
func (b *Backend) refresh(group string) error {
	if !b.cache.HasGroup(group) {
		return storage.ErrNoSuchGroup
	}
	return b.cache.Refresh(group)
}

func (b *Backend) Stats(group string) (storage.Stats, error) {
	if err := b.refresh(group); err != nil {
		return storage.Stats{}, err
	}
	count := b.cache.Count(group)
	return storage.Stats{Count: count, Low: 1, High: count}, nil
}

func (b *Backend) List() ([]string, error) {
	var out []string
	for _, group := range b.cache.Groups() {
		if err := b.refresh(group); err != nil {
			continue
		}
		high := b.cache.Count(group)
		low := int64(1)
		flag := "y"
		if b.cfg.ReadOnly {
			flag = "n"
		}
		out = append(out, fmt.Sprintf("%s %d %d %s", group, high, low, flag))
	}
	return out, nil
}

func (b *Backend) ListNewsgroups(pattern string) ([]string, error) {
	var out []string
	for _, group := range b.cache.Groups() {
		if pattern != "" && !matchWildmat(pattern, group) {
			continue
		}
		out = append(out, fmt.Sprintf("%s %s", group, group))
	}
	return out, nil
}

// GroupTitles is left unimplemented beyond an empty result, matching the
// source's get_XGTITLE: maildir groups carry no separate description text.
func (b *Backend) GroupTitles(pattern string) ([]storage.GroupTitle, error) {
	return nil, nil
}

func (b *Backend) ListGroup(group string) ([]int64, error) {
	if err := b.refresh(group); err != nil {
		return nil, err
	}
	count := b.cache.Count(group)
	ids := make([]int64, count)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids, nil
}

func (b *Backend) FirstArticle(group string) (int64, error) {
	if !b.cache.HasGroup(group) {
		return 0, storage.ErrNoSuchGroup
	}
	return 1, nil
}

func (b *Backend) Next(group string, current int64) (int64, error) {
	if err := b.refresh(group); err != nil {
		return 0, err
	}
	if current >= b.cache.Count(group) {
		return 0, storage.ErrNoNextArticle
	}
	return current + 1, nil
}

func (b *Backend) Last(group string, current int64) (int64, error) {
	if !b.cache.HasGroup(group) {
		return 0, storage.ErrNoSuchGroup
	}
	if current <= 1 {
		return 0, storage.ErrNoPrevArticle
	}
	return current - 1, nil
}

func (b *Backend) Stat(group string, number int64) (string, error) {
	if err := b.refresh(group); err != nil {
		return "", err
	}
	meta, ok := b.cache.ByNumber(group, number)
	if !ok {
		return "", storage.ErrNoSuchArticle
	}
	return meta.MessageID, nil
}

func (b *Backend) StatByMessageID(messageID string) (string, int64, error) {
	group, number, ok := b.cache.ByMessageID(strings.Trim(messageID, "<> "))
	if !ok {
		return "", 0, storage.ErrNoSuchArticle
	}
	return group, number, nil
}

func (b *Backend) articlePath(group string, number int64) (string, *ArticleMeta, error) {
	if err := b.refresh(group); err != nil {
		return "", nil, err
	}
	meta, ok := b.cache.ByNumber(group, number)
	if !ok {
		return "", nil, storage.ErrNoSuchArticle
	}
	return meta.Filename, meta, nil
}

func (b *Backend) Article(group string, number int64) (*storage.Article, error) {
	path, meta, err := b.articlePath(group, number)
	if err != nil {
		return nil, err
	}
	head, body, err := splitMessage(path)
	if err != nil {
		return nil, fmt.Errorf("maildir: reading %s: %w", path, err)
	}
	return &storage.Article{
		Number:    number,
		MessageID: meta.MessageID,
		Head:      head,
		Body:      body,
	}, nil
}

// Head synthesizes a header block from cached metadata rather than
// reading the raw on-disk headers, matching get_HEAD in the source (as
// opposed to get_ARTICLE, which returns the raw block). Synthesizing from
// the cache means HEAD never needs to open the file at all.
func (b *Backend) Head(group string, number int64) ([]string, error) {
	_, meta, err := b.articlePath(group, number)
	if err != nil {
		return nil, err
	}
	return []string{
		fmt.Sprintf("Path: %s", b.hostname),
		fmt.Sprintf("From: %s", meta.From),
		fmt.Sprintf("Newsgroups: %s", group),
		fmt.Sprintf("Date: %s", meta.Date),
		fmt.Sprintf("Subject: %s", meta.Subject),
		fmt.Sprintf("Message-ID: <%s>", meta.MessageID),
		fmt.Sprintf("Xref: %s %s:%d", b.hostname, group, number),
	}, nil
}

func (b *Backend) Body(group string, number int64) ([]string, error) {
	path, _, err := b.articlePath(group, number)
	if err != nil {
		return nil, err
	}
	_, body, err := splitMessage(path)
	if err != nil {
		return nil, fmt.Errorf("maildir: reading %s: %w", path, err)
	}
	return body, nil
}

func (b *Backend) Overview(group string, start, end int64) ([]storage.OverviewRow, error) {
	if err := b.refresh(group); err != nil {
		return nil, err
	}
	metas := b.cache.Range(group, start, end)
	rows := make([]storage.OverviewRow, 0, len(metas))
	for _, m := range metas {
		rows = append(rows, storage.OverviewRow{
			Number:     m.Number,
			Subject:    m.Subject,
			From:       m.From,
			Date:       m.Date,
			MessageID:  "<" + m.MessageID + ">",
			References: m.References,
			Bytes:      m.Bytes,
			Lines:      m.Lines,
		})
	}
	return rows, nil
}

func (b *Backend) Header(group, field string, start, end int64) ([]storage.HeaderLine, error) {
	if err := b.refresh(group); err != nil {
		return nil, err
	}
	metas := b.cache.Range(group, start, end)
	field = strings.ToUpper(field)

	var lines []storage.HeaderLine
	for _, m := range metas {
		var value string
		switch field {
		case "MESSAGE-ID":
			value = "<" + m.MessageID + ">"
		case "XREF":
			value = fmt.Sprintf("%s %s:%d", b.hostname, group, m.Number)
		case "BYTES":
			value = strconv.Itoa(m.Bytes)
		case "LINES":
			value = strconv.Itoa(m.Lines)
		case "SUBJECT":
			value = m.Subject
		case "FROM":
			value = m.From
		case "DATE":
			value = m.Date
		case "REFERENCES":
			value = m.References
		default:
			continue
		}
		if value == "" {
			continue
		}
		lines = append(lines, storage.HeaderLine{Number: m.Number, Value: value})
	}
	return lines, nil
}

// NewGroups always returns nil: the backend keeps no record of when a
// group directory was first created, matching get_NEWGROUPS in the
// source, which unconditionally returns None.
func (b *Backend) NewGroups(since time.Time) ([]string, error) {
	return nil, nil
}

func (b *Backend) NewNews(group string, since time.Time) ([]string, error) {
	groups := []string{group}
	if group == "" || group == "*" {
		groups = b.cache.Groups()
	}

	var out []string
	for _, g := range groups {
		if err := b.refresh(g); err != nil {
			continue
		}
		high := b.cache.Count(g)
		for n := int64(1); n <= high; n++ {
			meta, ok := b.cache.ByNumber(g, n)
			if !ok || meta.ModTime.Before(since) {
				continue
			}
			out = append(out, "<"+meta.MessageID+">")
		}
	}
	return out, nil
}

// Post writes raw atomically via the maildir tmp-write-then-rename
// convention: a crash or concurrent reader never observes a partially
// written file, matching do_POST in the source.
func (b *Backend) Post(group string, raw []byte, remoteAddr, username string) error {
	if b.cfg.ReadOnly {
		return storage.ErrPostRefused
	}
	if !b.cache.HasGroup(group) {
		return storage.ErrNoSuchGroup
	}

	b.postSeq++
	now := time.Now()
	name := fmt.Sprintf("%d.M%dP%dQ%d.%s",
		now.Unix(), now.Nanosecond()/1000, os.Getpid(), b.postSeq, b.hostname)

	dir := b.groupDir(group)
	tmpPath := filepath.Join(dir, "tmp", name)
	newPath := filepath.Join(dir, "new", name)

	if err := os.WriteFile(tmpPath, raw, 0o644); err != nil {
		return fmt.Errorf("maildir: writing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, newPath); err != nil {
		return fmt.Errorf("maildir: renaming %s: %w", tmpPath, err)
	}
	return b.cache.Refresh(group)
}

// splitMessage reads path and splits it into header lines and body lines
// on the first blank line, the way rfc822.Message does implicitly in the
// source's get_ARTICLE.
func splitMessage(path string) (head, body []string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	inHeaders := true
	for _, line := range lines {
		if inHeaders && line == "" {
			inHeaders = false
			continue
		}
		if inHeaders {
			head = append(head, line)
		} else {
			body = append(body, line)
		}
	}
	for len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
	}
	return head, body, nil
}

// matchWildmat is a small subset of NNTP wildmat: '*' matches any run of
// characters, '?' matches exactly one, and filepath.Match's own [...]
// character classes are accepted. Wildmat's leading '!' negation and
// comma-separated pattern lists are not supported.
func matchWildmat(pattern, name string) bool {
	ok, err := filepath.Match(pattern, name)
	return err == nil && ok
}
