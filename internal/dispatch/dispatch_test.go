package dispatch

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"WebWordCount/internal/dictionary"
	"WebWordCount/internal/types"
)

// stubFetcher serves canned raw HTTP responses keyed by file name, with an
// optional per-file delay and per-file failure.
type stubFetcher struct {
	bodies  map[string]string
	fail    map[string]bool
	delay   map[string]time.Duration
	active  int64
	maxSeen int64
}

func (f *stubFetcher) Fetch(file string) (io.ReadCloser, error) {
	n := atomic.AddInt64(&f.active, 1)
	defer atomic.AddInt64(&f.active, -1)
	for {
		max := atomic.LoadInt64(&f.maxSeen)
		if n <= max || atomic.CompareAndSwapInt64(&f.maxSeen, max, n) {
			break
		}
	}

	if d := f.delay[file]; d > 0 {
		time.Sleep(d)
	}
	if f.fail[file] {
		return nil, fmt.Errorf("connect to stub: connection refused")
	}
	raw := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\n" + f.bodies[file]
	return io.NopCloser(strings.NewReader(raw)), nil
}

func TestFailureIsTaskLocalAndOrderPreserved(t *testing.T) {
	dict := dictionary.New("one", "two", "three", "four", "five")
	fetcher := &stubFetcher{
		bodies: map[string]string{"b.txt": "one two three four five"},
		fail:   map[string]bool{"a.txt": true},
		// b.txt finishing first must not move it to slot 0.
		delay: map[string]time.Duration{"a.txt": 50 * time.Millisecond},
	}

	d := New(fetcher, dict, Opts{LogLevel: "ERROR"})
	results := d.Run([]string{"a.txt", "b.txt"})

	if len(results) != 2 {
		t.Fatalf("Expected one result per input, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Fatalf("Slot 0 should carry the failure for a.txt")
	}
	if !strings.HasPrefix(results[0].Summary(), "a.txt: error:") {
		t.Errorf("Failure marker missing, got %q", results[0].Summary())
	}
	if results[0].Status != types.TaskFailed {
		t.Errorf("a.txt should end up %s, got %s", types.TaskFailed, results[0].Status)
	}
	if got := results[1].Summary(); got != "b.txt: words=5, English words=5" {
		t.Errorf("Unexpected summary for b.txt: %q", got)
	}
	if results[1].Status != types.TaskCompleted {
		t.Errorf("b.txt should end up %s, got %s", types.TaskCompleted, results[1].Status)
	}
}

func TestOutputOrderMatchesInputOrder(t *testing.T) {
	dict := dictionary.New("word")

	files := make([]string, 32)
	bodies := make(map[string]string)
	delays := make(map[string]time.Duration)
	for i := range files {
		name := fmt.Sprintf("f%02d.txt", i)
		files[i] = name
		bodies[name] = strings.Repeat("word ", i+1)
		// Earlier inputs finish last.
		delays[name] = time.Duration(len(files)-i) * time.Millisecond
	}

	d := New(&stubFetcher{bodies: bodies, delay: delays}, dict, Opts{LogLevel: "ERROR"})
	results := d.Run(files)

	for i, res := range results {
		if res.File != files[i] {
			t.Fatalf("Slot %d holds %q, want %q", i, res.File, files[i])
		}
		if res.Words != i+1 {
			t.Errorf("Slot %d: expected %d words, got %d", i, i+1, res.Words)
		}
	}
}

func TestSharedDictionaryUnderConcurrency(t *testing.T) {
	dict := dictionary.New("alpha", "beta")

	files := make([]string, 64)
	bodies := make(map[string]string)
	for i := range files {
		name := fmt.Sprintf("g%02d.txt", i)
		files[i] = name
		bodies[name] = "alpha beta gamma alpha"
	}

	d := New(&stubFetcher{bodies: bodies}, dict, Opts{LogLevel: "ERROR"})
	results := d.Run(files)

	for i, res := range results {
		if res.Words != 4 || res.EnglishWords != 3 {
			t.Errorf("Slot %d corrupted: words=%d english=%d", i, res.Words, res.EnglishWords)
		}
	}
}

func TestWorkerBoundIsRespected(t *testing.T) {
	dict := dictionary.New("x")

	files := make([]string, 16)
	bodies := make(map[string]string)
	delays := make(map[string]time.Duration)
	for i := range files {
		name := fmt.Sprintf("h%02d.txt", i)
		files[i] = name
		bodies[name] = "x"
		delays[name] = 5 * time.Millisecond
	}

	fetcher := &stubFetcher{bodies: bodies, delay: delays}
	d := New(fetcher, dict, Opts{Workers: 3, LogLevel: "ERROR"})
	d.Run(files)

	if max := atomic.LoadInt64(&fetcher.maxSeen); max > 3 {
		t.Errorf("Worker bound exceeded: saw %d simultaneous fetches", max)
	}
}

func TestRunWithNoFiles(t *testing.T) {
	d := New(&stubFetcher{}, dictionary.New(), Opts{LogLevel: "ERROR"})

	results := d.Run(nil)
	if len(results) != 0 {
		t.Fatalf("Expected no results, got %d", len(results))
	}
}
