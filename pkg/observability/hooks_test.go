package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopSearchHooks{}
	h.OnSearchStart(ctx, "pillbox.nlm.nih.gov")
	h.OnSearchComplete(ctx, SearchEvent{Host: "pillbox.nlm.nih.gov", StatusCode: 200, Pills: 3, Duration: time.Second})
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Search() should return NoopSearchHooks by default")
	}

	custom := &testSearchHooks{}
	SetSearchHooks(custom)
	if Search() != custom {
		t.Error("SetSearchHooks should set custom hooks")
	}

	Search().OnSearchStart(context.Background(), "example.org")
	if custom.starts != 1 {
		t.Errorf("starts = %d, want 1", custom.starts)
	}

	Reset()
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Reset() should restore NoopSearchHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testSearchHooks{}
	SetSearchHooks(custom)
	SetSearchHooks(nil)

	if Search() != custom {
		t.Error("SetSearchHooks(nil) should be ignored")
	}
}

type testSearchHooks struct {
	NoopSearchHooks
	starts int
}

func (h *testSearchHooks) OnSearchStart(context.Context, string) { h.starts++ }
