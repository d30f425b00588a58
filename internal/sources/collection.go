package sources

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"content-studio/internal/domain"
)

// ErrURLSourcesUnsupported is returned for the url source kind, which is
// declared in the data model but has no extraction path.
var ErrURLSourcesUnsupported = errors.New("url sources are not supported yet")

// ErrSourceNotFound is returned when a mutation targets an unknown id.
var ErrSourceNotFound = errors.New("source not found")

// Collection owns the ordered list of sources. All mutations replace the
// affected element wholesale, so readers never observe a partial update.
type Collection struct {
	mu    sync.RWMutex
	items []domain.Source
}

// NewCollection creates an empty source collection.
func NewCollection() *Collection {
	return &Collection{}
}

// AddText appends a pasted-text source, ready immediately.
func (c *Collection) AddText(name, content string) (domain.Source, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Source{}, fmt.Errorf("text content is empty")
	}
	if strings.TrimSpace(name) == "" {
		name = "Texto colado"
	}

	src := domain.Source{
		ID:      uuid.NewString(),
		Kind:    domain.SourceKindText,
		Name:    name,
		Status:  domain.SourceStatusReady,
		Content: content,
	}

	c.mu.Lock()
	c.items = append(c.items, src)
	c.mu.Unlock()
	return src, nil
}

// AddFile appends a file source in pending state, awaiting extraction.
func (c *Collection) AddFile(name, path, mimeType string) (domain.Source, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Source{}, fmt.Errorf("file path is required")
	}

	src := domain.Source{
		ID:       uuid.NewString(),
		Kind:     domain.SourceKindFile,
		Name:     name,
		Status:   domain.SourceStatusPending,
		Path:     path,
		MIMEType: mimeType,
	}

	c.mu.Lock()
	c.items = append(c.items, src)
	c.mu.Unlock()
	return src, nil
}

// AddURL rejects url sources cleanly; the kind exists for future extension.
func (c *Collection) AddURL(string) (domain.Source, error) {
	return domain.Source{}, ErrURLSourcesUnsupported
}

// Remove deletes a source by id in any state. Removal never touches
// sibling sources or a generation run that already snapshotted its inputs.
func (c *Collection) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, src := range c.items {
		if src.ID == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrSourceNotFound
}

// Snapshot returns a copy of all sources in insertion order.
func (c *Collection) Snapshot() []domain.Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Source(nil), c.items...)
}

// Ready returns the sources eligible for generation, in insertion order.
func (c *Collection) Ready() []domain.Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Filter(c.items, func(src domain.Source, _ int) bool {
		return src.Status == domain.SourceStatusReady && src.Content != ""
	})
}

// Get returns a copy of one source by id.
func (c *Collection) Get(id string) (domain.Source, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, src := range c.items {
		if src.ID == id {
			return src, true
		}
	}
	return domain.Source{}, false
}

// markProcessing moves a pending file source into processing.
func (c *Collection) markProcessing(id string) error {
	return c.replace(id, func(src domain.Source) (domain.Source, error) {
		if src.Status != domain.SourceStatusPending {
			return src, fmt.Errorf("source %s is %s, not pending", id, src.Status)
		}
		src.Status = domain.SourceStatusProcessing
		return src, nil
	})
}

// markReady stores extracted content and moves the source to ready.
func (c *Collection) markReady(id, content string) error {
	return c.replace(id, func(src domain.Source) (domain.Source, error) {
		if isTerminal(src.Status) {
			return src, fmt.Errorf("source %s is already %s", id, src.Status)
		}
		src.Status = domain.SourceStatusReady
		src.Content = content
		src.Error = ""
		return src, nil
	})
}

// markError records an extraction failure; content stays absent.
func (c *Collection) markError(id, message string) error {
	return c.replace(id, func(src domain.Source) (domain.Source, error) {
		if isTerminal(src.Status) {
			return src, fmt.Errorf("source %s is already %s", id, src.Status)
		}
		src.Status = domain.SourceStatusError
		src.Content = ""
		src.Error = message
		return src, nil
	})
}

// replace applies fn to the source with the given id and swaps in the
// returned value as a single assignment.
func (c *Collection) replace(id string, fn func(domain.Source) (domain.Source, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, src := range c.items {
		if src.ID != id {
			continue
		}
		updated, err := fn(src)
		if err != nil {
			return err
		}
		c.items[i] = updated
		return nil
	}
	return ErrSourceNotFound
}

// isTerminal reports whether a status permits no further transitions.
func isTerminal(status domain.SourceStatus) bool {
	return status == domain.SourceStatusReady || status == domain.SourceStatusError
}
