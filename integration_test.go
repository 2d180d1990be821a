package haystack_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/haystack-rest/haystack-go/internal/testserver"
	"github.com/haystack-rest/haystack-go/pkg/client"
	"github.com/haystack-rest/haystack-go/pkg/config"
	"github.com/haystack-rest/haystack-go/pkg/log"
	"github.com/haystack-rest/haystack-go/pkg/session"
	"github.com/haystack-rest/haystack-go/pkg/value"
)

// TestE2E_ClientOps runs the op catalogue against the in-memory
// server, covering auth, zinc round trips and typed op wrappers.
func TestE2E_ClientOps(t *testing.T) {
	srv := testserver.New()
	srv.Handle("read", func(req *value.Grid) (*value.Grid, error) {
		filter, _ := req.Row(0).Str("filter")
		if filter != "site" {
			return value.GridFromRows(nil)
		}
		return value.GridFromRows([]map[string]value.Value{
			{"id": value.MustRef("s.1", "HQ"), "site": value.Marker{}},
			{"id": value.MustRef("s.2", "Annex"), "site": value.Marker{}},
		})
	})

	c, err := client.New(session.Config{
		URL:      "https://host/api/demo",
		Username: srv.Username,
		Password: srv.Password,
		Sender:   srv,
	})
	if err != nil {
		t.Fatalf("client.New failed: %v", err)
	}

	ctx := context.Background()

	about, err := c.About(ctx)
	if err != nil {
		t.Fatalf("About failed: %v", err)
	}
	if ver, _ := about.Str("haystackVersion"); ver != "3.0" {
		t.Errorf("expected haystackVersion 3.0, got %q", ver)
	}

	sites, err := c.Read(ctx, "site", 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if sites.NumRows() != 2 {
		t.Errorf("expected 2 sites, got %d", sites.NumRows())
	}

	// The whole sequence shares one SCRAM exchange.
	if srv.AuthExchanges != 1 {
		t.Errorf("expected 1 auth exchange, got %d", srv.AuthExchanges)
	}
}

// TestE2E_CaptureFile runs calls with a file logger attached and reads
// the capture back through the filtered reader.
func TestE2E_CaptureFile(t *testing.T) {
	srv := testserver.New()

	capturePath := filepath.Join(t.TempDir(), "session.hlog")
	fl, err := log.NewFileLogger(capturePath)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	c, err := client.New(session.Config{
		URL:      "https://host/api/demo",
		Username: srv.Username,
		Password: srv.Password,
		Sender:   srv,
		Logger:   fl,
	})
	if err != nil {
		t.Fatalf("client.New failed: %v", err)
	}

	if _, err := c.About(context.Background()); err != nil {
		t.Fatalf("About failed: %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	opCat := log.CategoryOp
	reader, err := log.NewFilteredReader(capturePath, log.Filter{Category: &opCat})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var ops []log.Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		ops = append(ops, event)
	}

	if len(ops) != 2 {
		t.Fatalf("expected request and response events, got %d", len(ops))
	}
	if ops[0].Op.Op != "about" || ops[1].Op.Op != "about" {
		t.Errorf("expected about op events, got %s/%s", ops[0].Op.Op, ops[1].Op.Op)
	}
	if !ops[1].Op.Response {
		t.Error("expected second event to be the response")
	}
	if ops[0].Project != "demo" {
		t.Errorf("expected project demo, got %q", ops[0].Project)
	}
}

// TestE2E_ConfigToClient loads a YAML config with env overrides and
// drives a client built from it.
func TestE2E_ConfigToClient(t *testing.T) {
	srv := testserver.New()

	path := filepath.Join(t.TempDir(), "haystack.yaml")
	yaml := "project:\n  url: https://host/api/demo/\n  username: " + srv.Username + "\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("HAYSTACK_PASSWORD", srv.Password)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	if cfg.Project.Password != srv.Password {
		t.Fatal("expected password from environment")
	}

	c, err := client.New(session.Config{
		URL:      cfg.Project.URL,
		Username: cfg.Project.Username,
		Password: cfg.Project.Password,
		Sender:   srv,
	})
	if err != nil {
		t.Fatalf("client.New failed: %v", err)
	}

	if err := c.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if srv.AuthExchanges != 1 {
		t.Errorf("expected 1 auth exchange, got %d", srv.AuthExchanges)
	}
}
