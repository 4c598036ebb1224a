package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/archscope/archscope/pkg/cache"
)

func TestNew(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c.Logger == nil {
		t.Fatal("New() should set a logger")
	}
	if c.Config.Cache.Backend != "file" {
		t.Errorf("default cache backend = %q, want %q", c.Config.Cache.Backend, "file")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"analyze", "impact", "ancestors", "shared", "check", "export", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c := New(io.Discard, LogInfo)

	if _, ok := c.newCache(true).(*cache.NullCache); !ok {
		t.Error("newCache(true) should return the null cache")
	}

	c.Config.Cache.Backend = "none"
	if _, ok := c.newCache(false).(*cache.NullCache); !ok {
		t.Error("newCache should respect the none backend")
	}
}

func TestCacheClearRemovesShardsOnly(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"ab/0123.json", "cd/4567.json"} {
		full := filepath.Join(dir, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// A file outside the shard layout must survive.
	stray := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(stray, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = dir

	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "ab")); !os.IsNotExist(err) {
		t.Error("shard directory should be removed")
	}
	if _, err := os.Stat(stray); err != nil {
		t.Errorf("stray file should survive clear: %v", err)
	}
}

func TestCacheTTLDefault(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if got := c.cacheTTL(); got != cache.DefaultTTL {
		t.Errorf("cacheTTL() = %v, want %v", got, cache.DefaultTTL)
	}

	c.Config.Cache.TTLHours = 2
	if got := c.cacheTTL(); got.Hours() != 2 {
		t.Errorf("cacheTTL() = %v, want 2h", got)
	}
}
