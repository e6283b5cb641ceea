package cache

import (
	"testing"
	"time"

	"storyfuse.dev/storyfuse/internal/pipeline"
)

func TestResponseCache_AddAndGet(t *testing.T) {
	c := New(8, time.Minute)

	resp := pipeline.Response{Query: "floods", Groups: []pipeline.GroupResult{}}
	c.Add("floods||", resp)

	got, ok := c.Get("floods||")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if got.Query != "floods" {
		t.Fatalf("unexpected cached query: %q", got.Query)
	}

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected cache miss for unknown key")
	}
}

func TestResponseCache_EvictsOldestBeyondSize(t *testing.T) {
	c := New(2, time.Minute)

	c.Add("a", pipeline.Response{Query: "a"})
	c.Add("b", pipeline.Response{Query: "b"})
	c.Add("c", pipeline.Response{Query: "c"})

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("expected newest entry to remain")
	}
}

func TestResponseCache_EntriesExpire(t *testing.T) {
	c := New(8, 30*time.Millisecond)

	c.Add("k", pipeline.Response{Query: "k"})
	time.Sleep(80 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to expire")
	}
}
