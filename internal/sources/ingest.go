package sources

import (
	"context"
	"sync"

	"content-studio/internal/domain"
)

// Extractor resolves a file source's bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, path, mimeType string) (string, error)
}

// Ingestor drives pending file sources through extraction. Each source is
// processed in its own goroutine; one file's failure never affects another.
type Ingestor struct {
	collection *Collection
	extractor  Extractor
	onChange   func(domain.Source)
	wg         sync.WaitGroup
}

// NewIngestor creates an ingestor bound to a collection and extractor.
// onChange, when set, is invoked after every status transition.
func NewIngestor(collection *Collection, extractor Extractor, onChange func(domain.Source)) *Ingestor {
	return &Ingestor{
		collection: collection,
		extractor:  extractor,
		onChange:   onChange,
	}
}

// Process moves a pending file source through processing to a terminal
// state. It returns immediately; extraction runs in the background.
func (in *Ingestor) Process(ctx context.Context, id string) {
	if err := in.collection.markProcessing(id); err != nil {
		return
	}
	in.notify(id)

	src, ok := in.collection.Get(id)
	if !ok {
		return
	}

	in.wg.Add(1)
	go func() {
		defer in.wg.Done()

		content, err := in.extractor.Extract(ctx, src.Path, src.MIMEType)
		if err != nil {
			_ = in.collection.markError(id, err.Error())
		} else {
			_ = in.collection.markReady(id, content)
		}
		in.notify(id)
	}()
}

// Wait blocks until all in-flight extractions finish. Used by tests and
// app shutdown.
func (in *Ingestor) Wait() {
	in.wg.Wait()
}

// notify forwards the current state of a source to the change callback.
func (in *Ingestor) notify(id string) {
	if in.onChange == nil {
		return
	}
	if src, ok := in.collection.Get(id); ok {
		in.onChange(src)
	}
}
