package assets

import (
	"context"
)

// Service is the UI-facing surface: every action is a gate check
// followed by an engine call, one to one with what the presentation
// layer exposes. The Session is passed explicitly on every call so a
// single Service instance serves any number of concurrent actors.
type Service struct {
	auther *Auther
	engine *Engine
	logger Logger
}

// NewService wires the authenticator and lifecycle engine into the
// action surface.
func NewService(auther *Auther, engine *Engine) *Service {
	return &Service{
		auther: auther,
		engine: engine,
		logger: defLogger{},
	}
}

func (s *Service) WithLogger(logger Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Engine exposes the underlying lifecycle engine.
func (s *Service) Engine() *Engine {
	return s.engine
}

// Login authenticates the pair and returns a fresh session.
func (s *Service) Login(ctx context.Context, username, secret string) (*Session, error) {
	return s.auther.Login(ctx, username, secret)
}

// Logout clears the session in place.
func (s *Service) Logout(session *Session) {
	session.Logout()
}

// ListPendingApproval surfaces the approval queue. Approver only; an
// empty queue is a successful empty result, never a denial.
func (s *Service) ListPendingApproval(ctx context.Context, session *Session) ([]Asset, error) {
	if !Authorize(session, ActionViewPendingQueue) {
		return nil, ErrUnauthorized
	}
	return s.engine.ListPendingApproval(ctx)
}

// Approve marks a pending asset as approved. The queue is consulted
// first so the decision only ever lands on an asset that was actually
// pending; an id outside the queue is reported as UpdateNotFound.
func (s *Service) Approve(ctx context.Context, session *Session, id string) (UpdateResult, error) {
	return s.decide(ctx, session, id, StatusApproved)
}

// Reject marks a pending asset as rejected.
func (s *Service) Reject(ctx context.Context, session *Session, id string) (UpdateResult, error) {
	return s.decide(ctx, session, id, StatusRejected)
}

func (s *Service) decide(ctx context.Context, session *Session, id string, target Status) (UpdateResult, error) {
	if !Authorize(session, ActionDecideApproval) {
		return UpdateResult{}, ErrUnauthorized
	}
	if !CanSetStatus(session, target) {
		return UpdateResult{}, ErrUnauthorized
	}

	pending, err := s.engine.ListPendingApproval(ctx)
	if err != nil {
		return UpdateResult{}, err
	}

	inQueue := false
	for _, record := range pending {
		if SameID(record.ID, id) {
			inQueue = true
			break
		}
	}
	if !inQueue {
		return UpdateResult{Outcome: UpdateNotFound}, nil
	}

	return s.engine.SetStatus(ctx, id, target, s.actor(session))
}

// SearchByOwner lists another user's assets. ITUser only.
func (s *Service) SearchByOwner(ctx context.Context, session *Session, owner string) ([]Asset, error) {
	if !Authorize(session, ActionManageAnyAsset) {
		return nil, ErrUnauthorized
	}
	return s.engine.ListByOwner(ctx, owner)
}

// SetStatus writes a target status onto any asset. ITUser only, and
// only the statuses that role may hand out.
func (s *Service) SetStatus(ctx context.Context, session *Session, id string, target Status) (UpdateResult, error) {
	if !Authorize(session, ActionManageAnyAsset) {
		return UpdateResult{}, ErrUnauthorized
	}
	if !CanSetStatus(session, target) {
		return UpdateResult{}, ErrUnauthorized
	}

	return s.engine.SetStatus(ctx, id, target, s.actor(session))
}

// ListOwn lists the session user's own assets. EndUser only.
func (s *Service) ListOwn(ctx context.Context, session *Session) ([]Asset, error) {
	if !Authorize(session, ActionViewOwnAssets) {
		return nil, ErrUnauthorized
	}
	return s.engine.ListByOwner(ctx, session.Username)
}

func (s *Service) actor(session *Session) ActorRef {
	return ActorRef{
		Username: session.Username,
		Role:     session.Role,
	}
}
