// Command nntp-server runs the maildir-backed NNTP daemon: it reads a
// YAML config file (or falls back to flag-supplied defaults), wires up a
// backend router with one maildir hierarchy per configured group prefix,
// and serves NNTP connections until killed.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	prof "github.com/go-while/go-cpu-mem-profiler"

	"github.com/go-while/go-papercut/internal/auth"
	"github.com/go-while/go-papercut/internal/config"
	"github.com/go-while/go-papercut/internal/nntplog"
	"github.com/go-while/go-papercut/internal/nntpsession"
	"github.com/go-while/go-papercut/internal/storage"
	"github.com/go-while/go-papercut/internal/storage/maildir"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	hostname := flag.String("hostname", "", "override server hostname")
	listenAddr := flag.String("listen", "", "override listen address (host:port)")
	maildirRoot := flag.String("maildir", "", "override maildir root for the default hierarchy")
	profile := flag.Bool("profile", false, "enable cpu/mem profiling endpoint")
	flag.Parse()

	cfg := config.NewDefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			nntplog.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}
	if *hostname != "" {
		cfg.Server.Hostname = *hostname
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *maildirRoot != "" {
		cfg.NNTP.MaildirRoot = *maildirRoot
	}
	if *profile {
		cfg.Server.Profile = true
	}

	if cfg.Server.Profile {
		p := prof.NewProf()
		go p.PprofWeb(":6060")
		p.StartMemProfile(5*time.Minute, 30*time.Second)
	}

	router := storage.NewRouter()

	globalBackend, err := maildir.NewBackend(maildir.Config{
		Root:     cfg.NNTP.MaildirRoot,
		Hostname: cfg.Server.Hostname,
		ReadOnly: cfg.NNTP.ReadOnly,
	})
	if err != nil {
		nntplog.Fatalf("opening maildir root %s: %v", cfg.NNTP.MaildirRoot, err)
	}
	router.Register(storage.GlobalHierarchy, globalBackend)

	for prefix, h := range cfg.NNTP.Hierarchies {
		backend, err := maildir.NewBackend(maildir.Config{
			Root:     h.MaildirRoot,
			Hostname: cfg.Server.Hostname,
			ReadOnly: cfg.NNTP.ReadOnly,
		})
		if err != nil {
			nntplog.Fatalf("opening maildir root %s for hierarchy %s: %v", h.MaildirRoot, prefix, err)
		}
		router.Register(prefix, backend)
	}

	var authBackend auth.Backend = auth.None{}
	if cfg.Auth.Enabled && cfg.Auth.FlatFilePath != "" {
		ff, err := auth.LoadFlatFile(cfg.Auth.FlatFilePath)
		if err != nil {
			nntplog.Fatalf("loading auth file %s: %v", cfg.Auth.FlatFilePath, err)
		}
		authBackend = ff
	}

	srv, err := nntpsession.NewServer(cfg.Server.ListenAddr, nntpsession.Config{
		Hostname:    cfg.Server.Hostname,
		Router:      router,
		Auth:        authBackend,
		AuthEnabled: cfg.Auth.Enabled,
		ReadOnly:    cfg.NNTP.ReadOnly,
	})
	if err != nil {
		nntplog.Fatalf("binding %s: %v", cfg.Server.ListenAddr, err)
	}

	log.Printf("papercut %s listening on %s (maildir root %s)", nntpsession.ServerVersion, srv.Addr(), cfg.NNTP.MaildirRoot)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Printf("shutting down")
		srv.Close()
	}()

	if err := srv.Serve(); err != nil {
		log.Printf("server stopped: %v", err)
	}
}
