package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadLaterRootWins(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()
	writeFile(t, low, "a.txt", "low")
	writeFile(t, high, "a.txt", "high")
	writeFile(t, low, "b.txt", "only-low")

	m := NewManager(low, high)

	tests := []struct {
		path string
		want string
	}{
		{"a.txt", "high"},
		{"b.txt", "only-low"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := m.Load(tt.path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Load(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoadBuiltinFallback(t *testing.T) {
	m := NewManager(t.TempDir())

	data, err := m.Load(DefaultScene)
	if err != nil {
		t.Fatalf("Load builtin scene: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("builtin scene is empty")
	}
}

func TestLoadNotFound(t *testing.T) {
	m := NewManager(t.TempDir())

	_, err := m.Load("missing.wav")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing = %v, want ErrNotFound", err)
	}
}

func TestLoadUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "first")
	m := NewManager(dir)

	if _, err := m.Load("a.txt"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	writeFile(t, dir, "a.txt", "second")

	got, err := m.Load("a.txt")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != "first" {
		t.Errorf("cached Load = %q, want %q", got, "first")
	}

	hits, misses := m.cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats = (%d, %d), want (1, 1)", hits, misses)
	}

	m.Close()
	got, _ = m.Load("a.txt")
	if string(got) != "second" {
		t.Errorf("Load after Close = %q, want %q", got, "second")
	}
}

func TestCache(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("x"); ok {
		t.Error("empty cache returned a hit")
	}
	c.Set("x", []byte("1"))
	if data, ok := c.Get("x"); !ok || string(data) != "1" {
		t.Errorf("Get = (%q, %v), want (1, true)", data, ok)
	}
	c.Clear()
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Errorf("Stats after Clear = (%d, %d)", hits, misses)
	}
}
