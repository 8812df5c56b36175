package querycache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Thiagolino8/simple-svelte-query/keycodec"
)

// fakeClock is a manually advanced time source for staleness tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNewDescriptor_CanonicalKey(t *testing.T) {
	d, err := NewDescriptor(keycodec.Key{"users", 10}, func(ctx context.Context, key keycodec.Key) (string, error) {
		return "", nil
	})
	if err != nil {
		t.Fatalf("NewDescriptor() error = %v", err)
	}

	if got, want := d.CanonicalKey(), `["users",10]`; got != want {
		t.Errorf("CanonicalKey() = %v, want %v", got, want)
	}
}

func TestNewDescriptor_UnserializableKey(t *testing.T) {
	_, err := NewDescriptor(keycodec.Key{func() {}}, func(ctx context.Context, key keycodec.Key) (int, error) {
		return 0, nil
	})
	if err == nil {
		t.Fatal("NewDescriptor() expected error, got nil")
	}
	var encErr *keycodec.KeyEncodingError
	if !errors.As(err, &encErr) {
		t.Errorf("NewDescriptor() error = %T, want *keycodec.KeyEncodingError", err)
	}
}

func TestDescriptor_OriginalKeyIsFresh(t *testing.T) {
	d, err := NewDescriptor(keycodec.Key{"users", 10}, func(ctx context.Context, key keycodec.Key) (string, error) {
		return "", nil
	})
	if err != nil {
		t.Fatalf("NewDescriptor() error = %v", err)
	}

	first := d.OriginalKey()
	second := d.OriginalKey()

	want := keycodec.Key{"users", float64(10)}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("OriginalKey() mismatch (-want +got):\n%s", diff)
	}
	if &first[0] == &second[0] {
		t.Error("OriginalKey() returned aliased fragments across calls")
	}
}

func TestDescriptor_IsStale_StrictBoundary(t *testing.T) {
	clock := newFakeClock()
	window := 100 * time.Millisecond

	d, err := NewDescriptor(keycodec.Key{"boundary"}, func(ctx context.Context, key keycodec.Key) (int, error) {
		return 0, nil
	}, WithStaleAfter(window), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewDescriptor() error = %v", err)
	}

	now := clock.Now().UnixMilli()

	tests := []struct {
		name        string
		lastUpdated int64
		want        bool
	}{
		{
			name:        "just installed",
			lastUpdated: now,
			want:        false,
		},
		{
			name:        "aged exactly the window",
			lastUpdated: now - window.Milliseconds(),
			want:        false,
		},
		{
			name:        "aged one millisecond past the window",
			lastUpdated: now - window.Milliseconds() - 1,
			want:        true,
		},
		{
			name:        "invalidated",
			lastUpdated: StaleForever,
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsStale(tt.lastUpdated); got != tt.want {
				t.Errorf("IsStale(%d) = %v, want %v", tt.lastUpdated, got, tt.want)
			}
		})
	}
}

func TestDescriptor_InvokePassesContextAndKey(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	var gotKey keycodec.Key
	d, err := NewDescriptor(keycodec.Key{"invoke", 1}, func(ctx context.Context, key keycodec.Key) (string, error) {
		gotKey = key
		return ctx.Value(ctxKey{}).(string), nil
	})
	if err != nil {
		t.Fatalf("NewDescriptor() error = %v", err)
	}

	got, err := d.Invoke(ctx).Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if got != "marker" {
		t.Errorf("compute saw value %v from context, want marker", got)
	}
	if diff := cmp.Diff(keycodec.Key{"invoke", float64(1)}, gotKey); diff != "" {
		t.Errorf("compute key mismatch (-want +got):\n%s", diff)
	}
}

func TestDescriptor_InvokePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	d, err := NewDescriptor(keycodec.Key{"err"}, func(ctx context.Context, key keycodec.Key) (int, error) {
		return 0, boom
	})
	if err != nil {
		t.Fatalf("NewDescriptor() error = %v", err)
	}

	if _, err := d.Invoke(context.Background()).Wait(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Wait() error = %v, want %v", err, boom)
	}
}
