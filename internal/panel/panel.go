package panel

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/studiowebux/metawrite/internal/types"
)

// Generator produces an article for a query
type Generator interface {
	Generate(ctx context.Context, query string) (*types.Article, error)
}

// Ticket identifies one request started by Begin
type Ticket struct {
	Seq   uint64
	Query string
	ctx   context.Context
}

// Context returns the context the request must run under.
// It is cancelled when a newer request supersedes this one.
func (t Ticket) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

// Panel holds the query and the current RequestState
type Panel struct {
	mu sync.RWMutex

	generator Generator
	logger    *zap.Logger

	query  string
	state  RequestState
	seq    uint64
	cancel context.CancelFunc
}

// New creates a panel in the Idle state
func New(generator Generator, logger *zap.Logger) *Panel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Panel{
		generator: generator,
		logger:    logger,
		state:     Idle{},
	}
}

// Query returns the current query
func (p *Panel) Query() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.query
}

// SetQuery replaces the query verbatim
func (p *Panel) SetQuery(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = query
}

// State returns the current state
func (p *Panel) State() RequestState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Seq returns the sequence number of the most recent request, 0 before
// the first one
func (p *Panel) Seq() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.seq
}

// Begin transitions to Loading for the current query and returns the ticket
// of the new request. Any request still in flight is cancelled.
func (p *Panel) Begin(parent context.Context) Ticket {
	if parent == nil {
		parent = context.Background()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.logger.Debug("superseding in-flight request", zap.Uint64("seq", p.seq))
		p.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	p.seq++
	p.cancel = cancel
	p.state = Loading{Query: p.query, Seq: p.seq}

	return Ticket{Seq: p.seq, Query: p.query, ctx: ctx}
}

// Complete records the outcome of the request identified by t.
// It returns false, leaving the state untouched, when t has been superseded.
func (p *Panel) Complete(t Ticket, article *types.Article, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t.Seq != p.seq {
		p.logger.Debug("dropping stale response",
			zap.Uint64("seq", t.Seq),
			zap.Uint64("current", p.seq))
		return false
	}

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}

	switch {
	case err != nil:
		msg := FailureMessage(err)
		p.logger.Warn("article generation failed", zap.String("message", msg), zap.Error(err))
		p.state = Failed{Message: msg, Cause: err}
	case article == nil:
		p.state = Failed{Message: UnknownErrorMessage}
	default:
		p.logger.Info("article generated", zap.String("url", article.URL), zap.Int("length", len(article.Body)))
		p.state = Succeeded{Query: t.Query, Article: *article}
	}

	return true
}

// Run performs the request for t and completes it.
// It returns the state after completion, which for a stale ticket is the
// state of the newer request.
func (p *Panel) Run(t Ticket) RequestState {
	article, err := p.generator.Generate(t.Context(), t.Query)
	p.Complete(t, article, err)
	return p.State()
}

// Submit starts a request for the current query and waits for its outcome
func (p *Panel) Submit(ctx context.Context) RequestState {
	return p.Run(p.Begin(ctx))
}
