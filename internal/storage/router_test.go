package storage

import (
	"testing"
	"time"
)

type fakeBackend struct {
	name     string
	groups   map[string]bool
	msgIDCap bool
}

func newFakeBackend(name string, msgIDCap bool, groups ...string) *fakeBackend {
	gs := make(map[string]bool)
	for _, g := range groups {
		gs[g] = true
	}
	return &fakeBackend{name: name, groups: gs, msgIDCap: msgIDCap}
}

func (f *fakeBackend) Capabilities() Capabilities         { return Capabilities{MessageID: f.msgIDCap} }
func (f *fakeBackend) GroupExists(group string) bool      { return f.groups[group] }
func (f *fakeBackend) Stats(group string) (Stats, error)  { return Stats{}, nil }
func (f *fakeBackend) List() ([]string, error)            { return []string{f.name}, nil }
func (f *fakeBackend) ListNewsgroups(p string) ([]string, error) { return nil, nil }
func (f *fakeBackend) GroupTitles(p string) ([]GroupTitle, error) { return nil, nil }
func (f *fakeBackend) ListGroup(group string) ([]int64, error)    { return nil, nil }
func (f *fakeBackend) FirstArticle(group string) (int64, error)   { return 1, nil }
func (f *fakeBackend) Next(group string, cur int64) (int64, error) { return 0, ErrNoNextArticle }
func (f *fakeBackend) Last(group string, cur int64) (int64, error) { return 0, ErrNoPrevArticle }
func (f *fakeBackend) Stat(group string, n int64) (string, error)  { return "", ErrNoSuchArticle }
func (f *fakeBackend) StatByMessageID(id string) (string, int64, error) {
	if id == "found" {
		return "matched.group", 1, nil
	}
	return "", 0, ErrNoSuchArticle
}
func (f *fakeBackend) Article(group string, n int64) (*Article, error) { return nil, ErrNoSuchArticle }
func (f *fakeBackend) Head(group string, n int64) ([]string, error)    { return nil, ErrNoSuchArticle }
func (f *fakeBackend) Body(group string, n int64) ([]string, error)    { return nil, ErrNoSuchArticle }
func (f *fakeBackend) Overview(group string, s, e int64) ([]OverviewRow, error) { return nil, nil }
func (f *fakeBackend) Header(group, field string, s, e int64) ([]HeaderLine, error) {
	return nil, nil
}
func (f *fakeBackend) NewGroups(since time.Time) ([]string, error) { return nil, nil }
func (f *fakeBackend) NewNews(group string, since time.Time) ([]string, error) {
	return []string{"<a@" + f.name + ">"}, nil
}
func (f *fakeBackend) Post(group string, raw []byte, addr, user string) error { return nil }

func TestRouterLongestPrefixMatch(t *testing.T) {
	r := NewRouter()
	global := newFakeBackend("global", true, "comp.lang.go")
	local := newFakeBackend("local", true, "comp.lang.go.jobs")
	r.Register("comp", global)
	r.Register("comp.lang.go.jobs", local)

	if got := r.Resolve("comp.lang.go.jobs.remote"); got != local {
		t.Fatalf("expected longest-prefix match to pick local backend, got %v", got)
	}
	if got := r.Resolve("comp.lang.go"); got != global {
		t.Fatalf("expected global backend for comp.lang.go, got %v", got)
	}
	if got := r.Resolve("unrelated.group"); got != nil {
		t.Fatalf("expected nil for unmatched prefix, got %v", got)
	}
}

func TestRouterResolveMessageIDStripsEnvelopeForIncapableBackends(t *testing.T) {
	r := NewRouter()
	capable := newFakeBackend("capable", true, "a")
	incapable := newFakeBackend("incapable", false, "b")
	r.Register("a", capable)
	r.Register("b", incapable)

	// "found" only resolves when passed through verbatim or as a local
	// part; since capable expects the verbatim id it must not match
	// "<found@host>", but incapable strips to "found" and matches.
	backend, group, number, err := r.ResolveMessageID("<found@host>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend != incapable {
		t.Fatalf("expected incapable backend to resolve stripped local part, got %v", backend)
	}
	if group != "matched.group" || number != 1 {
		t.Fatalf("unexpected resolution: group=%s number=%d", group, number)
	}
}

func TestRouterBackendsDeduplicates(t *testing.T) {
	r := NewRouter()
	shared := newFakeBackend("shared", true, "x", "x.y")
	r.Register("x", shared)
	r.Register("x.y", shared)

	backends := r.Backends()
	if len(backends) != 1 {
		t.Fatalf("expected one deduplicated backend, got %d", len(backends))
	}
}
