package palette

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestFetchAllPreservesDeclarationOrder(t *testing.T) {
	// The first palette completes last; order in the result must still match
	// the declared order.
	fetcher := FetcherFunc(func(ctx context.Context, id string) (*Palette, error) {
		if id == "slow" {
			time.Sleep(20 * time.Millisecond)
		}
		return &Palette{ID: id}, nil
	})

	got := FetchAll(context.Background(), fetcher, []string{"slow", "fast"})
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0] == nil || got[0].ID != "slow" {
		t.Fatalf("slot 0 = %+v, want slow", got[0])
	}
	if got[1] == nil || got[1].ID != "fast" {
		t.Fatalf("slot 1 = %+v, want fast", got[1])
	}
}

func TestFetchAllFailedFetchYieldsNilSlot(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context, id string) (*Palette, error) {
		if id == "missing" {
			return nil, fmt.Errorf("palette %q not found", id)
		}
		return &Palette{ID: id}, nil
	})

	got := FetchAll(context.Background(), fetcher, []string{"missing", "ok"})
	if got[0] != nil {
		t.Fatalf("failed fetch must leave a nil slot, got %+v", got[0])
	}
	if got[1] == nil || got[1].ID != "ok" {
		t.Fatalf("slot 1 = %+v", got[1])
	}
}

func TestFetchAllExpandsIncludes(t *testing.T) {
	records := map[string]*Palette{
		"top": {
			ID:       "top",
			Includes: []string{"base"},
			Mappings: []Mapping{{Symbol: "a", Terrain: "t_top"}},
		},
		"base": {
			ID: "base",
			Mappings: []Mapping{
				{Symbol: "a", Terrain: "t_base"},
				{Symbol: "b", Terrain: "t_base_only"},
			},
		},
	}
	fetcher := FetcherFunc(func(ctx context.Context, id string) (*Palette, error) {
		p, ok := records[id]
		if !ok {
			return nil, fmt.Errorf("palette %q not found", id)
		}
		return p, nil
	})

	got := FetchAll(context.Background(), fetcher, []string{"top"})
	if len(got) != 1 || got[0] == nil {
		t.Fatalf("got = %v", got)
	}

	// Included mappings come first so the includer wins on conflict.
	res := Resolve("", got, nil, nil, nil)
	a, _ := res.Entry('a')
	if a.Terrain != "t_top" {
		t.Fatalf("a terrain = %q, includer must win over include", a.Terrain)
	}
	b, ok := res.Entry('b')
	if !ok || b.Terrain != "t_base_only" {
		t.Fatalf("b = %+v ok=%v, include-only symbols must survive", b, ok)
	}
}

func TestFetchAllIncludeCycleTerminates(t *testing.T) {
	records := map[string]*Palette{
		"a": {ID: "a", Includes: []string{"b"}, Mappings: []Mapping{{Symbol: "x", Terrain: "t_a"}}},
		"b": {ID: "b", Includes: []string{"a"}, Mappings: []Mapping{{Symbol: "y", Terrain: "t_b"}}},
	}
	fetcher := FetcherFunc(func(ctx context.Context, id string) (*Palette, error) {
		return records[id], nil
	})

	done := make(chan []*Palette, 1)
	go func() { done <- FetchAll(context.Background(), fetcher, []string{"a"}) }()

	select {
	case got := <-done:
		if len(got) != 1 || got[0] == nil {
			t.Fatalf("got = %v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("include cycle did not terminate")
	}
}
