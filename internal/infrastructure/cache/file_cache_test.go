package cache

import (
	"testing"
	"time"

	"github.com/mtakeda/plansh/internal/domain"
)

func TestSetAndGet(t *testing.T) {
	c := NewFileCacheAt(t.TempDir(), time.Hour, 10)

	entry := domain.CacheEntry{
		Key:       "abc123",
		Prompt:    "list files",
		Provider:  "echo",
		Command:   "ls",
		CreatedAt: time.Now(),
	}
	if err := c.Set(entry); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, found, err := c.Get("abc123")
	if err != nil || !found {
		t.Fatalf("Get() = %v, %v, %v", got, found, err)
	}
	if got.Command != "ls" {
		t.Fatalf("command = %q", got.Command)
	}
}

func TestGetMissingKey(t *testing.T) {
	c := NewFileCacheAt(t.TempDir(), time.Hour, 10)
	if _, found, err := c.Get("nope"); err != nil || found {
		t.Fatalf("Get(missing) = %v, %v", found, err)
	}
}

func TestExpiredEntryEvicted(t *testing.T) {
	c := NewFileCacheAt(t.TempDir(), time.Millisecond, 10)
	entry := domain.CacheEntry{
		Key:       "old",
		Command:   "ls",
		CreatedAt: time.Now().Add(-time.Minute),
	}
	if err := c.Set(entry); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := c.Get("old"); found {
		t.Fatal("expired entry should not be returned")
	}
}

func TestEvictionKeepsNewest(t *testing.T) {
	c := NewFileCacheAt(t.TempDir(), time.Hour, 2)
	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(domain.CacheEntry{Key: key, CreatedAt: time.Now()}); err != nil {
			t.Fatal(err)
		}
	}
	if _, found, _ := c.Get("c"); !found {
		t.Fatal("newest entry evicted")
	}
}
