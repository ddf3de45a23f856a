package maildir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-while/go-papercut/internal/storage"
)

// makeGroup creates <root>/<group>/{new,cur,tmp} and drops the given raw
// messages straight into cur/, named so they sort in the given order.
func makeGroup(t *testing.T, root, group string, messages ...string) {
	t.Helper()
	dir := filepath.Join(root, group)
	for _, sub := range []string{"new", "cur", "tmp"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for i, msg := range messages {
		name := filepath.Join(dir, "cur", timestampName(i))
		if err := os.WriteFile(name, []byte(msg), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func timestampName(i int) string {
	return "16000000" + string(rune('0'+i)) + ".M0P0Q0.testhost"
}

const sampleMessage = "From: alice@example.com\r\n" +
	"Subject: hello\r\n" +
	"Date: Mon, 01 Jan 2024 00:00:00 +0000\r\n" +
	"Message-ID: <msg1@example.com>\r\n" +
	"\r\n" +
	"body line one\r\n" +
	"body line two\r\n"

func TestBackendGroupExistsAndStats(t *testing.T) {
	root := t.TempDir()
	makeGroup(t, root, "test.group", sampleMessage)

	b, err := NewBackend(Config{Root: root, Hostname: "news.example.com"})
	if err != nil {
		t.Fatal(err)
	}

	if !b.GroupExists("test.group") {
		t.Fatal("expected test.group to exist")
	}
	if b.GroupExists("nope") {
		t.Fatal("expected nope to not exist")
	}

	stats, err := b.Stats("test.group")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 1 || stats.Low != 1 || stats.High != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestBackendArticleRoundTrip(t *testing.T) {
	root := t.TempDir()
	makeGroup(t, root, "test.group", sampleMessage)

	b, err := NewBackend(Config{Root: root, Hostname: "news.example.com"})
	if err != nil {
		t.Fatal(err)
	}

	art, err := b.Article("test.group", 1)
	if err != nil {
		t.Fatal(err)
	}
	if art.MessageID != "msg1@example.com" {
		t.Fatalf("unexpected message id: %s", art.MessageID)
	}
	if len(art.Body) != 2 || art.Body[0] != "body line one" {
		t.Fatalf("unexpected body: %v", art.Body)
	}

	head, err := b.Head("test.group", 1)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, line := range head {
		if line == "Subject: hello" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected synthesized head to contain Subject, got %v", head)
	}
}

func TestBackendStatByMessageID(t *testing.T) {
	root := t.TempDir()
	makeGroup(t, root, "test.group", sampleMessage)

	b, err := NewBackend(Config{Root: root})
	if err != nil {
		t.Fatal(err)
	}

	group, number, err := b.StatByMessageID("msg1@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if group != "test.group" || number != 1 {
		t.Fatalf("unexpected resolution: group=%s number=%d", group, number)
	}
}

func TestBackendPostThenRefreshVisible(t *testing.T) {
	root := t.TempDir()
	makeGroup(t, root, "test.group")

	b, err := NewBackend(Config{Root: root, Hostname: "news.example.com"})
	if err != nil {
		t.Fatal(err)
	}

	raw := "From: bob@example.com\r\nSubject: posted\r\nNewsgroups: test.group\r\n\r\nhi\r\n"
	if err := b.Post("test.group", []byte(raw), "127.0.0.1", ""); err != nil {
		t.Fatal(err)
	}

	stats, err := b.Stats("test.group")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 1 {
		t.Fatalf("expected one article after post, got %d", stats.Count)
	}
}

func TestBackendPostRefusedReadOnly(t *testing.T) {
	root := t.TempDir()
	makeGroup(t, root, "test.group")

	b, err := NewBackend(Config{Root: root, ReadOnly: true})
	if err != nil {
		t.Fatal(err)
	}

	err = b.Post("test.group", []byte("x"), "127.0.0.1", "")
	if err != storage.ErrPostRefused {
		t.Fatalf("expected ErrPostRefused, got %v", err)
	}
}

func TestBackendNoSuchGroup(t *testing.T) {
	root := t.TempDir()
	b, err := NewBackend(Config{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Stats("missing"); err != storage.ErrNoSuchGroup {
		t.Fatalf("expected ErrNoSuchGroup, got %v", err)
	}
}
