package app

import (
	"fmt"
	"io"

	"github.com/five82/listsync/internal/buffer"
	"github.com/five82/listsync/internal/diff"
)

// printer writes every batch as plain text for headless runs.
type printer struct {
	w io.Writer
}

var (
	_ buffer.Subscriber[string] = (*printer)(nil)
	_ buffer.BatchSubscriber    = (*printer)(nil)
)

func (p *printer) OnBatchWillChange() {
	fmt.Fprintln(p.w, "will change")
}

func (p *printer) OnChange(edit diff.Edit[string]) {
	fmt.Fprintf(p.w, "%s %s at index: %d\n", edit.Kind, edit.Value, edit.Index)
}

func (p *printer) OnBatchDidChange() {
	fmt.Fprintln(p.w, "did change")
}
