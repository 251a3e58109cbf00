package catalog

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liliang-cn/docchat/internal/domain"
	"github.com/liliang-cn/docchat/internal/session"
	"github.com/liliang-cn/docchat/internal/status"
)

type uploadCall struct {
	filename   string
	credential string
}

type fakeStore struct {
	mu        sync.Mutex
	list      []string
	listErr   error
	listCalls int
	uploadErr error
	uploads   []uploadCall
	deleteErr error
	deletes   []string
}

func (f *fakeStore) ListDocuments(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string(nil), f.list...), nil
}

func (f *fakeStore) Upload(ctx context.Context, filename string, r io.Reader, credential string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, uploadCall{filename: filename, credential: credential})
	return f.uploadErr
}

func (f *fakeStore) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, name)
	return f.deleteErr
}

type staticCreds string

func (c staticCreds) Value() (string, bool) { return string(c), c != "" }

func names(docs []domain.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Name)
	}
	return out
}

func newTestCatalog(store *fakeStore, creds staticCreds) (*Catalog, *session.Session, *status.Surface) {
	sess := session.New()
	surface := status.NewSurface()
	return NewCatalog(store, creds, sess, surface, nil), sess, surface
}

func TestRefreshReplacesWholesale(t *testing.T) {
	store := &fakeStore{list: []string{"a.pdf", "b.pdf"}}
	c, _, _ := newTestCatalog(store, "tok")

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, names(c.Documents()))

	store.mu.Lock()
	store.list = []string{"b.pdf", "c.pdf"}
	store.mu.Unlock()

	require.NoError(t, c.Refresh(context.Background()))
	// "a.pdf" is gone even though it was never explicitly deleted
	assert.Equal(t, []string{"b.pdf", "c.pdf"}, names(c.Documents()))
}

func TestRefreshFailureKeepsCache(t *testing.T) {
	store := &fakeStore{list: []string{"a.pdf"}}
	c, _, surface := newTestCatalog(store, "tok")

	require.NoError(t, c.Refresh(context.Background()))

	store.mu.Lock()
	store.listErr = errors.New("backend down")
	store.mu.Unlock()

	require.Error(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"a.pdf"}, names(c.Documents()))

	alert, ok := surface.Current()
	require.True(t, ok)
	assert.Equal(t, domain.AlertCatalogFetch, alert.Source)
}

func TestUploadRequiresCredential(t *testing.T) {
	store := &fakeStore{}
	c, _, _ := newTestCatalog(store, "")

	err := c.Upload(context.Background(), "a.pdf", nil)
	assert.ErrorIs(t, err, domain.ErrCredentialRequired)

	// Nothing reached the backend
	assert.Empty(t, store.uploads)
	assert.Zero(t, store.listCalls)
}

func TestUploadSuccessRefreshes(t *testing.T) {
	store := &fakeStore{list: []string{"a.pdf", "new.pdf"}}
	c, _, _ := newTestCatalog(store, "tok")

	err := c.Upload(context.Background(), "new.pdf", nil)
	require.NoError(t, err)

	require.Len(t, store.uploads, 1)
	assert.Equal(t, "new.pdf", store.uploads[0].filename)
	assert.Equal(t, "tok", store.uploads[0].credential)

	// The cache comes from the post-upload refresh, not an optimistic insert
	assert.Equal(t, 1, store.listCalls)
	assert.Equal(t, []string{"a.pdf", "new.pdf"}, names(c.Documents()))
}

func TestUploadFailureLeavesCatalogUnchanged(t *testing.T) {
	store := &fakeStore{list: []string{"a.pdf"}}
	c, _, surface := newTestCatalog(store, "tok")
	require.NoError(t, c.Refresh(context.Background()))

	store.mu.Lock()
	store.uploadErr = errors.New("File with this name already exists.")
	store.mu.Unlock()

	require.Error(t, c.Upload(context.Background(), "a.pdf", nil))

	assert.Equal(t, []string{"a.pdf"}, names(c.Documents()))
	alert, ok := surface.Current()
	require.True(t, ok)
	assert.Equal(t, domain.AlertUpload, alert.Source)
	assert.Contains(t, alert.Message, "already exists")
}

func TestDeleteActiveDocumentDeselects(t *testing.T) {
	store := &fakeStore{list: []string{"a.pdf"}}
	c, sess, _ := newTestCatalog(store, "tok")

	sess.Select("b.pdf")
	require.NoError(t, c.Delete(context.Background(), "b.pdf"))

	_, ok := sess.Active()
	assert.False(t, ok)
	assert.Empty(t, sess.Transcript())

	// Deletion also refreshed the cache
	assert.Equal(t, []string{"a.pdf"}, names(c.Documents()))
}

func TestDeleteOtherDocumentKeepsSelection(t *testing.T) {
	store := &fakeStore{list: []string{"b.pdf"}}
	c, sess, _ := newTestCatalog(store, "tok")

	sess.Select("b.pdf")
	require.NoError(t, c.Delete(context.Background(), "a.pdf"))

	active, ok := sess.Active()
	require.True(t, ok)
	assert.Equal(t, "b.pdf", active)
}

func TestDeleteFailureKeepsSelectionAndCache(t *testing.T) {
	store := &fakeStore{list: []string{"a.pdf", "b.pdf"}}
	c, sess, surface := newTestCatalog(store, "tok")
	require.NoError(t, c.Refresh(context.Background()))

	sess.Select("b.pdf")

	store.mu.Lock()
	store.deleteErr = errors.New("File not found.")
	store.mu.Unlock()

	require.Error(t, c.Delete(context.Background(), "b.pdf"))

	active, ok := sess.Active()
	require.True(t, ok)
	assert.Equal(t, "b.pdf", active)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, names(c.Documents()))

	alert, ok := surface.Current()
	require.True(t, ok)
	assert.Equal(t, domain.AlertDelete, alert.Source)
}

func TestContains(t *testing.T) {
	store := &fakeStore{list: []string{"a.pdf"}}
	c, _, _ := newTestCatalog(store, "tok")
	require.NoError(t, c.Refresh(context.Background()))

	assert.True(t, c.Contains("a.pdf"))
	assert.False(t, c.Contains("missing.pdf"))
}
