package output

import (
	"io"
	"sync"

	"github.com/cheggaaa/pb/v3"
)

// ProgressBar displays similarity computation progress on a terminal
type ProgressBar struct {
	mu      sync.Mutex
	writer  io.Writer
	bar     *pb.ProgressBar
	started bool
}

// NewProgressBar creates a progress bar writing to w
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{writer: w}
}

// Update reports done units of work out of total. It is safe to call
// from several goroutines.
func (p *ProgressBar) Update(done, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.bar = pb.New64(total)
		p.bar.SetWriter(p.writer)
		p.bar.Set(pb.Terminal, IsTerminal(p.writer))
		p.bar.Start()
		p.started = true
	}
	if done > p.bar.Current() {
		p.bar.SetCurrent(done)
	}
}

// Finish completes the bar if it was started
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		p.bar.Finish()
	}
}
