package dispatch

import (
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"WebWordCount/internal/dictionary"
	"WebWordCount/internal/logger"
	"WebWordCount/internal/types"
	"WebWordCount/internal/wordcount"
)

// Fetcher opens the raw response stream for one file name.
type Fetcher interface {
	Fetch(file string) (io.ReadCloser, error)
}

// Opts configures a Dispatcher.
type Opts struct {
	// Workers bounds the number of simultaneous fetches. Zero means full
	// fan-out: one unthrottled goroutine per file.
	Workers  int
	LogLevel string
}

// Dispatcher fans one worker out per input file, each performing
// fetch-then-process against the shared read-only dictionary.
type Dispatcher struct {
	fetcher Fetcher
	dict    *dictionary.Dictionary
	opts    Opts
	logger  *logger.Logger
}

// New creates a dispatcher. The dictionary must be fully loaded before the
// first Run; it is shared by every worker without locking.
func New(fetcher Fetcher, dict *dictionary.Dictionary, opts Opts) *Dispatcher {
	return &Dispatcher{
		fetcher: fetcher,
		dict:    dict,
		opts:    opts,
		logger:  logger.New(opts.LogLevel),
	}
}

// Run launches one worker per file, waits for all of them, and returns one
// result per input in input order regardless of completion order. Each
// worker writes only its own slot, so the results need no locking. A
// failed fetch lands in its slot as an error result and never disturbs
// the other workers.
func (d *Dispatcher) Run(files []string) []types.CountResult {
	results := make([]types.CountResult, len(files))

	var sem chan struct{}
	if d.opts.Workers > 0 {
		sem = make(chan struct{}, d.opts.Workers)
	}

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		task := types.FetchTask{
			ID:        "task-" + uuid.New().String()[:8],
			File:      file,
			Index:     i,
			Status:    types.TaskPending,
			Timestamp: time.Now(),
		}
		d.logger.Debug("Task queued: task_id=%s file=%s status=%s", task.ID, task.File, task.Status)
		go func(t types.FetchTask) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			results[t.Index] = d.runTask(t)
		}(task)
	}
	wg.Wait()

	return results
}

func (d *Dispatcher) runTask(t types.FetchTask) types.CountResult {
	t.Status = types.TaskRunning
	d.logger.Debug("Task started: task_id=%s file=%s index=%d status=%s", t.ID, t.File, t.Index, t.Status)

	stream, err := d.fetcher.Fetch(t.File)
	if err != nil {
		t.Status = types.TaskFailed
		d.logger.Warn("Task failed: task_id=%s file=%s status=%s err=%v", t.ID, t.File, t.Status, err)
		return types.CountResult{File: t.File, Status: t.Status, Err: err}
	}
	defer stream.Close()

	result := wordcount.Process(stream, t.File, d.dict)
	result.Status = types.TaskCompleted
	d.logger.Info("Task completed: task_id=%s words=%d english=%d took=%v",
		t.ID, result.Words, result.EnglishWords, time.Since(t.Timestamp))
	return result
}
