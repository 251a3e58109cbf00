package catalog

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/liliang-cn/docchat/internal/domain"
	"github.com/liliang-cn/docchat/internal/session"
	"github.com/liliang-cn/docchat/internal/status"
)

// DocumentStore is the remote side of the catalog. *backend.Client
// satisfies it.
type DocumentStore interface {
	ListDocuments(ctx context.Context) ([]string, error)
	Upload(ctx context.Context, filename string, r io.Reader, credential string) error
	Delete(ctx context.Context, name string) error
}

// CredentialSource exposes the current credential. *credential.Store
// satisfies it.
type CredentialSource interface {
	Value() (string, bool)
}

// Catalog caches the remote document list. The backend is the source of
// truth; every mutation is followed by an unconditional refresh rather
// than an optimistic local edit.
type Catalog struct {
	mu      sync.RWMutex
	store   DocumentStore
	creds   CredentialSource
	session *session.Session
	surface *status.Surface
	logger  *zap.Logger
	docs    []domain.Document
}

// NewCatalog creates an empty catalog.
func NewCatalog(
	store DocumentStore,
	creds CredentialSource,
	sess *session.Session,
	surface *status.Surface,
	logger *zap.Logger,
) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		store:   store,
		creds:   creds,
		session: sess,
		surface: surface,
		logger:  logger,
	}
}

// Refresh fetches the full document list and replaces the cache
// wholesale; last fetch wins, nothing is merged. On failure the previous
// cache is kept and a catalog_fetch alert is raised.
func (c *Catalog) Refresh(ctx context.Context) error {
	names, err := c.store.ListDocuments(ctx)
	if err != nil {
		c.surface.Raise(domain.Alert{Source: domain.AlertCatalogFetch, Message: err.Error()})
		c.logger.Warn("catalog refresh failed", zap.Error(err))
		return err
	}

	docs := make([]domain.Document, 0, len(names))
	for _, name := range names {
		docs = append(docs, domain.Document{Name: name})
	}

	c.mu.Lock()
	c.docs = docs
	c.mu.Unlock()

	return nil
}

// Upload sends a document to the backend and refreshes the catalog on
// success. A missing credential rejects the call before any network I/O;
// on failure the cache is left unchanged and an upload alert is raised.
func (c *Catalog) Upload(ctx context.Context, filename string, r io.Reader) error {
	cred, ok := c.creds.Value()
	if !ok {
		return domain.ErrCredentialRequired
	}

	if err := c.store.Upload(ctx, filename, r, cred); err != nil {
		c.surface.Raise(domain.Alert{Source: domain.AlertUpload, Message: err.Error()})
		c.logger.Warn("upload failed", zap.String("filename", filename), zap.Error(err))
		return err
	}

	// Refresh unconditionally; the upload response is not trusted to
	// enumerate the new name.
	return c.Refresh(ctx)
}

// Delete removes the named document from the backend. If it was the
// active document, the session selection is cleared so the session never
// references a document that no longer exists. Success refreshes the
// catalog; failure raises a delete alert.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	if err := c.store.Delete(ctx, name); err != nil {
		c.surface.Raise(domain.Alert{Source: domain.AlertDelete, Message: err.Error()})
		c.logger.Warn("delete failed", zap.String("filename", name), zap.Error(err))
		return err
	}

	if active, ok := c.session.Active(); ok && active == name {
		c.session.Deselect()
	}

	return c.Refresh(ctx)
}

// Documents returns a copy of the cached list.
func (c *Catalog) Documents() []domain.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Contains reports whether the cache holds the named document.
func (c *Catalog) Contains(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, doc := range c.docs {
		if doc.Name == name {
			return true
		}
	}
	return false
}
