package lightsheet

import (
	"io"
	"sync"

	"github.com/cheggaaa/pb"
	"go.uber.org/zap"

	"github.com/lukaszgryglicki/lightsheet/internal/logger"
)

// Progress receives the ensemble completion percentage, 0..100.
type Progress interface {
	Update(percent int)
}

// ProgressFunc adapts a plain function to Progress.
type ProgressFunc func(percent int)

func (f ProgressFunc) Update(percent int) {
	if f != nil {
		f(percent)
	}
}

// NopProgress discards updates.
var NopProgress Progress = ProgressFunc(nil)

// LogProgress reports through the debug logger.
var LogProgress Progress = ProgressFunc(func(percent int) {
	logger.Log.Debug("ensemble progress", zap.Int("percent", percent))
})

// TerminalProgress draws a 100-step bar.
type TerminalProgress struct {
	bar  *pb.ProgressBar
	once sync.Once
}

// NewTerminalProgress writes the bar to w; a nil w keeps it silent.
func NewTerminalProgress(w io.Writer, prefix string) *TerminalProgress {
	bar := pb.New(100).Prefix(prefix)
	if w == nil {
		bar.NotPrint = true
	} else {
		bar.Output = w
	}
	bar.ShowCounters = false
	return &TerminalProgress{bar: bar}
}

func (t *TerminalProgress) Update(percent int) {
	t.once.Do(func() { t.bar.Start() })
	t.bar.Set(percent)
}

// Finish completes the bar; safe to call without updates.
func (t *TerminalProgress) Finish() {
	t.once.Do(func() { t.bar.Start() })
	t.bar.Finish()
}

// progressCounter turns per-task completions into monotonic percentages.
type progressCounter struct {
	mu    sync.Mutex
	done  int
	total int
	sink  Progress
}

func newProgressCounter(total int, sink Progress) *progressCounter {
	if sink == nil {
		sink = NopProgress
	}
	return &progressCounter{total: total, sink: sink}
}

func (c *progressCounter) step() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done++
	c.sink.Update(100 * c.done / c.total)
}
