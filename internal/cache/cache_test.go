package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/Aleph-Alpha/embedding-inference/internal/encoder"
	"github.com/Aleph-Alpha/embedding-inference/internal/schema"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("starting miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("parsing miniredis port: %v", err)
	}

	cfg := NewConfig()
	cfg.Enabled = true
	cfg.Host = mr.Host()
	cfg.Port = port
	cfg.TTL = time.Hour

	c, err := NewCache(cfg)
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func sampleResponse() *schema.EmbeddingResponse {
	return &schema.EmbeddingResponse{
		Object: "list",
		Data: []schema.EmbeddingData{
			{Object: "embedding", Index: 0, DenseEmbedding: []float64{0.25, -0.5}},
		},
		Model:          "BAAI/bge-m3",
		Usage:          schema.Usage{PromptTokens: 2, TotalTokens: 2},
		EmbeddingTypes: []string{"dense"},
	}
}

func TestKey_DeterministicAndPrefixed(t *testing.T) {
	kinds := encoder.Kinds{Dense: true, Sparse: true}
	a := Key("BAAI/bge-m3", kinds, []string{"hello", "world"})
	b := Key("BAAI/bge-m3", kinds, []string{"hello", "world"})

	if a != b {
		t.Fatalf("same inputs produced different keys: %q vs %q", a, b)
	}
	if len(a) != len(keyPrefix)+64 {
		t.Fatalf("unexpected key length %d for %q", len(a), a)
	}
	if a[:len(keyPrefix)] != keyPrefix {
		t.Fatalf("key %q missing %q prefix", a, keyPrefix)
	}
}

func TestKey_SensitiveToEveryInput(t *testing.T) {
	base := Key("BAAI/bge-m3", encoder.Kinds{Dense: true}, []string{"hello"})

	variants := map[string]string{
		"model": Key("other-model", encoder.Kinds{Dense: true}, []string{"hello"}),
		"kinds": Key("BAAI/bge-m3", encoder.Kinds{Sparse: true}, []string{"hello"}),
		"texts": Key("BAAI/bge-m3", encoder.Kinds{Dense: true}, []string{"hullo"}),
	}
	for name, key := range variants {
		if key == base {
			t.Errorf("changing %s did not change the key", name)
		}
	}
}

func TestKey_TextBoundariesMatter(t *testing.T) {
	kinds := encoder.Kinds{Dense: true}
	a := Key("m", kinds, []string{"ab", "c"})
	b := Key("m", kinds, []string{"a", "bc"})
	if a == b {
		t.Fatalf("shifted text boundaries collided on key %q", a)
	}
}

func TestLookupStore_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	key := Key("BAAI/bge-m3", encoder.Kinds{Dense: true}, []string{"hello world"})

	if _, ok := c.Lookup(ctx, key); ok {
		t.Fatal("lookup hit before anything was stored")
	}

	want := sampleResponse()
	c.Store(ctx, key, want)

	got, ok := c.Lookup(ctx, key)
	if !ok {
		t.Fatal("lookup missed a freshly stored response")
	}
	if got.Model != want.Model || got.Object != want.Object {
		t.Fatalf("cached response mangled: got %+v", got)
	}
	if len(got.Data) != 1 || got.Data[0].DenseEmbedding[1] != -0.5 {
		t.Fatalf("cached vectors mangled: got %+v", got.Data)
	}
	if got.Usage.TotalTokens != 2 {
		t.Fatalf("cached usage mangled: got %+v", got.Usage)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := Key("m", encoder.Kinds{Dense: true}, []string{"text"})

	c.Store(ctx, key, sampleResponse())
	if _, ok := c.Lookup(ctx, key); !ok {
		t.Fatal("lookup missed before the TTL elapsed")
	}

	mr.FastForward(c.cfg.TTL + time.Second)

	if _, ok := c.Lookup(ctx, key); ok {
		t.Fatal("lookup hit after the TTL elapsed")
	}
}

func TestLookup_UndecodablePayloadIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	key := Key("m", encoder.Kinds{Dense: true}, []string{"text"})

	if err := mr.Set(key, "{not json"); err != nil {
		t.Fatalf("seeding corrupt payload: %v", err)
	}

	if _, ok := c.Lookup(context.Background(), key); ok {
		t.Fatal("lookup hit on an undecodable payload")
	}
}

func TestLookup_BackendErrorIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := Key("m", encoder.Kinds{Dense: true}, []string{"text"})
	c.Store(ctx, key, sampleResponse())

	mr.SetError("backend down")
	defer mr.SetError("")

	if _, ok := c.Lookup(ctx, key); ok {
		t.Fatal("lookup hit while the backend was erroring")
	}
}

func TestDisabledCache_NoOps(t *testing.T) {
	cfg := NewConfig()
	cfg.Enabled = false

	c, err := NewCache(cfg)
	if err != nil {
		t.Fatalf("creating disabled cache: %v", err)
	}

	if c.Enabled() {
		t.Fatal("disabled cache reports enabled")
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("disabled cache ping returned %v", err)
	}

	key := Key("m", encoder.Kinds{Dense: true}, []string{"text"})
	c.Store(context.Background(), key, sampleResponse())
	if _, ok := c.Lookup(context.Background(), key); ok {
		t.Fatal("disabled cache produced a hit")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("closing disabled cache: %v", err)
	}
}

func TestNewCache_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty host", func(c *Config) { c.Host = "" }},
		{"port out of range", func(c *Config) { c.Port = 70000 }},
		{"negative db", func(c *Config) { c.DB = -1 }},
		{"zero ttl", func(c *Config) { c.TTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Enabled = true
			tt.mutate(cfg)
			if _, err := NewCache(cfg); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_REDIS_HOST", "redis.internal")
	t.Setenv("CACHE_REDIS_PORT", "6380")
	t.Setenv("CACHE_REDIS_DB", "3")
	t.Setenv("CACHE_TTL_SECONDS", "120")

	cfg := NewConfig()
	if !cfg.Enabled {
		t.Error("CACHE_ENABLED not applied")
	}
	if cfg.Addr() != "redis.internal:6380" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
	if cfg.DB != 3 {
		t.Errorf("unexpected db %d", cfg.DB)
	}
	if cfg.TTL != 2*time.Minute {
		t.Errorf("unexpected ttl %s", cfg.TTL)
	}
}
