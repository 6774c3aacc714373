package types

import (
	"fmt"
	"time"
)

// TaskStatus represents the lifecycle state of a fetch task
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// FetchTask is one independent fetch-and-count unit of work,
// corresponding to one input file-name argument.
type FetchTask struct {
	ID        string
	File      string
	Index     int
	Status    TaskStatus
	Timestamp time.Time
}

// CountResult holds the word statistics for one fetched file.
// It is owned by the worker that produced it until handed back
// to the dispatcher, and never mutated afterwards.
type CountResult struct {
	File         string     `json:"file"`
	Words        int        `json:"words"`
	EnglishWords int        `json:"english_words"`
	Status       TaskStatus `json:"status"`
	Err          error      `json:"-"`
}

// Summary renders the one-line report for this result. Failed tasks
// get an explicit error marker so their output slot is never blank.
func (r CountResult) Summary() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: error: %v", r.File, r.Err)
	}
	return fmt.Sprintf("%s: words=%d, English words=%d", r.File, r.Words, r.EnglishWords)
}
