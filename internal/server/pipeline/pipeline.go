package pipeline

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/dmitrijs2005/accountsvc/internal/common"
	"github.com/dmitrijs2005/accountsvc/internal/logging"
)

// Handler produces the raw response for an operation. Handlers capture their
// typed request in a closure so the pipeline stays oblivious to concrete
// message types.
type Handler func(ctx context.Context) (any, error)

// PreHook runs before the handler. It may enrich the context; returning an
// error aborts the request before the handler executes.
type PreHook func(ctx context.Context, md metadata.MD) (context.Context, error)

// PostHook runs after a successful handler and may replace the response.
// Post hook errors never fail the request: the previous value is forwarded.
type PostHook func(ctx context.Context, resp any) (any, error)

// Pipeline wraps operation handlers with an ordered chain of pre hooks and
// post hooks shared by every operation of the service.
type Pipeline struct {
	pre    []PreHook
	post   []PostHook
	logger logging.Logger
}

func New(logger logging.Logger, pre []PreHook, post []PostHook) *Pipeline {
	return &Pipeline{pre: pre, post: post, logger: logger}
}

// Run executes the shared pre hooks, the handler and the shared post hooks.
// Extra hooks supplied by the operation run after the shared ones in their
// respective phase.
func (p *Pipeline) Run(ctx context.Context, h Handler, extraPre []PreHook, extraPost []PostHook) (any, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.MD{}
	}

	for _, hook := range p.pre {
		var err error
		if ctx, err = hook(ctx, md); err != nil {
			return nil, err
		}
	}
	for _, hook := range extraPre {
		var err error
		if ctx, err = hook(ctx, md); err != nil {
			return nil, err
		}
	}

	resp, err := h(ctx)
	if err != nil {
		return nil, err
	}

	for _, hook := range p.post {
		resp = p.applyPost(ctx, hook, resp)
	}
	for _, hook := range extraPost {
		resp = p.applyPost(ctx, hook, resp)
	}
	return resp, nil
}

func (p *Pipeline) applyPost(ctx context.Context, hook PostHook, resp any) any {
	shaped, err := hook(ctx, resp)
	if err != nil {
		p.logger.Warn(ctx, "post hook failed", "error", err)
		return resp
	}
	return shaped
}

// LoginRequired rejects anonymous requests before the handler runs.
func LoginRequired(h Handler) Handler {
	return func(ctx context.Context) (any, error) {
		if !PrincipalFromContext(ctx).IsAuthenticated() {
			return nil, common.ErrUnauthorized
		}
		return h(ctx)
	}
}

// StaffRequired rejects requests whose principal is not a staff user.
func StaffRequired(h Handler) Handler {
	return func(ctx context.Context) (any, error) {
		p := PrincipalFromContext(ctx)
		if !p.IsAuthenticated() || !p.User.IsStaff {
			return nil, common.ErrUnauthorized
		}
		return h(ctx)
	}
}
