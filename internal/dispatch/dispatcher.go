package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/liliang-cn/docchat/internal/backend"
	"github.com/liliang-cn/docchat/internal/domain"
	"github.com/liliang-cn/docchat/internal/session"
	"github.com/liliang-cn/docchat/internal/status"
)

// Querier issues a single document query against the backend.
// *backend.Client satisfies it.
type Querier interface {
	Query(ctx context.Context, name, query, credential string) (string, error)
}

// CredentialSource exposes the current credential. *credential.Store
// satisfies it.
type CredentialSource interface {
	Value() (string, bool)
}

// Dispatcher serializes queries against the active session. At most one
// query is in flight at any instant; a submit while one is outstanding
// is rejected, not queued. Because of that, transcript writes from one
// dispatcher are strictly ordered.
type Dispatcher struct {
	session  *session.Session
	querier  Querier
	creds    CredentialSource
	surface  *status.Surface
	timeout  time.Duration
	logger   *zap.Logger
	inFlight atomic.Bool
}

// NewDispatcher creates a dispatcher. timeout bounds each outbound query
// so a hung backend can never leave the in-flight marker set forever.
func NewDispatcher(
	sess *session.Session,
	querier Querier,
	creds CredentialSource,
	surface *status.Surface,
	timeout time.Duration,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		session: sess,
		querier: querier,
		creds:   creds,
		surface: surface,
		timeout: timeout,
		logger:  logger,
	}
}

// Pending is the single allowed in-flight query. It captures the target
// document and the session generation at submission time so a late
// response can be matched against the selection it was made for.
type Pending struct {
	Text       string
	Document   string
	generation uint64
}

// Result reports how a pending query resolved.
type Result struct {
	Answer string
	Stale  bool
	Err    error
}

// Begin validates a submission and, if accepted, appends the user
// message optimistically, clears any surfaced alert, and marks the
// query in flight. Rejections are no-ops on the transcript.
func (d *Dispatcher) Begin(text string) (*Pending, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyQuery
	}

	// Document and generation come from one snapshot; separate reads
	// could pair the old document with a post-switch generation and
	// defeat the stale-discard check in Resolve.
	doc, generation, ok := d.session.Selection()
	if !ok {
		return nil, domain.ErrNoActiveDocument
	}

	if _, ok := d.creds.Value(); !ok {
		return nil, domain.ErrCredentialRequired
	}

	if !d.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrQueryInFlight
	}

	p := &Pending{
		Text:       text,
		Document:   doc,
		generation: generation,
	}

	if err := d.session.AppendUser(text); err != nil {
		d.inFlight.Store(false)
		return nil, err
	}
	d.surface.Dismiss()

	return p, nil
}

// Resolve performs the outbound call for a pending query and appends the
// outcome to the transcript. The in-flight marker is cleared on every
// path, success, failure, or timeout. A response whose selection
// generation no longer matches the session is discarded so an answer is
// never attributed to a different document.
func (d *Dispatcher) Resolve(ctx context.Context, p *Pending) Result {
	defer d.inFlight.Store(false)

	// Credential is read at call time, so a save since Begin is observed.
	cred, _ := d.creds.Value()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	answer, err := d.querier.Query(ctx, p.Document, p.Text, cred)

	if d.session.Generation() != p.generation {
		d.logger.Info("discarding stale query response",
			zap.String("filename", p.Document),
		)
		return Result{Stale: true, Err: err}
	}

	if err != nil {
		detail := failureDetail(err)
		// The optimistic user message stays; the failure is rendered
		// inline right after it so the user sees what they asked.
		_ = d.session.AppendAssistant(fmt.Sprintf("Sorry, I couldn't answer that: %s", detail))
		d.surface.Raise(domain.Alert{Source: domain.AlertQuery, Message: detail})
		d.logger.Warn("query failed",
			zap.String("filename", p.Document),
			zap.Error(err),
		)
		return Result{Err: err}
	}

	_ = d.session.AppendAssistant(answer)
	return Result{Answer: answer}
}

// Submit is Begin followed by Resolve, for headless callers and tests.
func (d *Dispatcher) Submit(ctx context.Context, text string) error {
	p, err := d.Begin(text)
	if err != nil {
		return err
	}
	return d.Resolve(ctx, p).Err
}

// InFlight reports whether a query is currently outstanding.
func (d *Dispatcher) InFlight() bool {
	return d.inFlight.Load()
}

// failureDetail converts a query error into the user-facing text that
// goes both inline into the transcript and onto the error surface.
func failureDetail(err error) string {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "the query timed out; the backend did not respond in time"
	default:
		return err.Error()
	}
}
