package scanner

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/imgsentry/internal/model"
)

// fakeScanner is a PageScannerFunc with scripted per-URL behavior.
type fakeScanner struct {
	// delayFor adds latency for URLs containing the key, to shuffle
	// completion order under concurrency.
	delayFor map[string]time.Duration

	// failFor returns an error result for URLs containing the key.
	failFor string

	// panicFor panics for URLs containing the key.
	panicFor string

	// active tracks the number of concurrently running scans.
	active atomic.Int32

	// maxActive records the highest concurrency observed.
	maxActive atomic.Int32
}

func (f *fakeScanner) ScanPage(_ context.Context, pageURL string) model.PageResult {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		m := f.maxActive.Load()
		if n <= m || f.maxActive.CompareAndSwap(m, n) {
			break
		}
	}

	for key, d := range f.delayFor {
		if strings.Contains(pageURL, key) {
			time.Sleep(d)
		}
	}
	if f.panicFor != "" && strings.Contains(pageURL, f.panicFor) {
		panic("scanner defect")
	}
	if f.failFor != "" && strings.Contains(pageURL, f.failFor) {
		return model.NewFailedPageResult(pageURL, "status 404")
	}
	return model.NewPageResult(pageURL, 1, nil, nil)
}

// TestOrchestratorScanAll tests orchestration over the page list.
func TestOrchestratorScanAll(t *testing.T) {
	t.Parallel()

	t.Run("returns one result per path in input order", func(t *testing.T) {
		t.Parallel()

		// Delay the first page so it finishes last under concurrency.
		o := NewOrchestrator(&fakeScanner{
			delayFor: map[string]time.Duration{"/first": 50 * time.Millisecond},
		}, WithConcurrency(4))

		paths := []string{"/first", "/second", "/third", "/fourth"}
		results := o.ScanAll(context.Background(), "https://www.example.com", paths)

		if len(results) != len(paths) {
			t.Fatalf("got %d results, expected %d", len(results), len(paths))
		}
		for i, p := range paths {
			want := "https://www.example.com" + p
			if results[i].URL != want {
				t.Errorf("results[%d].URL = %q, expected %q", i, results[i].URL, want)
			}
		}
	})

	t.Run("failed page does not abort siblings", func(t *testing.T) {
		t.Parallel()

		o := NewOrchestrator(&fakeScanner{failFor: "/broken"}, WithConcurrency(2))

		results := o.ScanAll(context.Background(), "https://www.example.com",
			[]string{"/a", "/broken", "/c"})

		if !results[1].Failed() {
			t.Error("expected the broken page to fail")
		}
		if results[0].Failed() || results[2].Failed() {
			t.Error("sibling pages must still succeed")
		}
	})

	t.Run("worker panic becomes an error result", func(t *testing.T) {
		t.Parallel()

		o := NewOrchestrator(&fakeScanner{panicFor: "/defect"})

		results := o.ScanAll(context.Background(), "https://www.example.com",
			[]string{"/ok", "/defect"})

		if results[0].Failed() {
			t.Error("healthy page must succeed")
		}
		if !results[1].Failed() {
			t.Fatal("expected the panicking page to produce an error result")
		}
		if !strings.Contains(results[1].Error, "internal error") {
			t.Errorf("got error %q", results[1].Error)
		}
	})

	t.Run("unjoinable path becomes an error result", func(t *testing.T) {
		t.Parallel()

		o := NewOrchestrator(&fakeScanner{})

		results := o.ScanAll(context.Background(), "https://www.example.com",
			[]string{"/ok", "http://\x00bad"})

		if results[0].Failed() {
			t.Error("healthy page must succeed")
		}
		if !results[1].Failed() {
			t.Error("expected the unjoinable path to produce an error result")
		}
	})

	t.Run("respects the concurrency bound", func(t *testing.T) {
		t.Parallel()

		fs := &fakeScanner{
			delayFor: map[string]time.Duration{"/p": 30 * time.Millisecond},
		}
		o := NewOrchestrator(fs, WithConcurrency(2))

		o.ScanAll(context.Background(), "https://www.example.com",
			[]string{"/p1", "/p2", "/p3", "/p4", "/p5"})

		if max := fs.maxActive.Load(); max > 2 {
			t.Errorf("observed %d concurrent scans, bound is 2", max)
		}
	})

	t.Run("sequential and concurrent runs agree", func(t *testing.T) {
		t.Parallel()

		paths := []string{"/a", "/broken", "/c", "/d"}

		seq := NewOrchestrator(&fakeScanner{failFor: "/broken"}, WithConcurrency(1)).
			ScanAll(context.Background(), "https://www.example.com", paths)
		con := NewOrchestrator(&fakeScanner{failFor: "/broken"}, WithConcurrency(4)).
			ScanAll(context.Background(), "https://www.example.com", paths)

		for i := range paths {
			if seq[i].URL != con[i].URL || seq[i].Status != con[i].Status {
				t.Errorf("results diverge at %d: sequential %+v, concurrent %+v",
					i, seq[i], con[i])
			}
		}
	})

	t.Run("empty page list yields empty results", func(t *testing.T) {
		t.Parallel()

		o := NewOrchestrator(&fakeScanner{})
		results := o.ScanAll(context.Background(), "https://www.example.com", nil)

		if len(results) != 0 {
			t.Errorf("got %d results, expected 0", len(results))
		}
	})
}
