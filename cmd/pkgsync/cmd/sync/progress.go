package sync

import (
	"os"

	"github.com/cheggaaa/pb/v3"
)

// progress renders a per-record progress bar on stderr.
type progress struct {
	bar *pb.ProgressBar
}

func newProgress() *progress {
	return &progress{bar: pb.Full.New(0).SetWriter(os.Stderr)}
}

func (p *progress) start(total int) {
	p.bar.SetTotal(int64(total)).Start()
}

func (p *progress) increment() {
	p.bar.Increment()
}

func (p *progress) finish() {
	if p.bar.IsStarted() {
		p.bar.Finish()
	}
}
