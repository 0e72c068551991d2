package assets

import (
	"context"
)

// UpdateOutcome says what a SetStatus call did.
type UpdateOutcome string

const (
	// UpdateApplied means at least one record matched and was overwritten
	UpdateApplied UpdateOutcome = "applied"
	// UpdateNotFound means no record matched the id; the table is untouched
	UpdateNotFound UpdateOutcome = "not_found"
)

// UpdateResult reports the outcome of a status write. An unmatched id
// is a silent discard, not an error; the outcome lets callers tell
// "updated" apart from "id vanished" without changing that contract.
type UpdateResult struct {
	Outcome UpdateOutcome
	Asset   *Asset
}

// Applied reports whether the write touched at least one record.
func (r UpdateResult) Applied() bool {
	return r.Outcome == UpdateApplied
}

// ActorRef identifies who triggered a status change.
type ActorRef struct {
	Username string
	Role     Role
}

// EngineOption customizes engine construction.
type EngineOption func(*Engine)

// WithEngineLogger overrides the engine logger.
func WithEngineLogger(logger Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithAllowedTransitions installs an explicit source -> target guard.
// The default engine performs an unconditional overwrite regardless of
// source state; installing a table is a documented deviation from
// that behavior, rejected transitions surface ErrInvalidStatus.
func WithAllowedTransitions(transitions map[Status][]Status) EngineOption {
	return func(e *Engine) {
		if len(transitions) == 0 {
			return
		}
		guard := make(map[Status]map[Status]struct{}, len(transitions))
		for from, targets := range transitions {
			set := make(map[Status]struct{}, len(targets))
			for _, to := range targets {
				set[to] = struct{}{}
			}
			guard[from] = set
		}
		e.transitions = guard
	}
}

// Engine is the asset lifecycle state machine. It validates a
// requested transition and writes it back through the AssetStore's
// whole-table read-modify-write. Role gating happens at the call
// site (see Service); the engine trusts its caller was authorized.
type Engine struct {
	store       AssetStore
	logger      Logger
	transitions map[Status]map[Status]struct{}
}

// NewEngine returns a lifecycle engine over the given store.
func NewEngine(store AssetStore, opts ...EngineOption) *Engine {
	e := &Engine{
		store:  store,
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e
}

// SetStatus overwrites the status of the asset with the given id.
// The store re-reads the full table, locates the record by normalized
// id, mutates it in place, and persists the whole table back. An
// unknown id leaves the table untouched and reports UpdateNotFound
// without error. The returned record is the mutated in-memory view;
// callers needing durability confirmation must re-query.
func (e *Engine) SetStatus(ctx context.Context, id string, target Status, actor ActorRef) (UpdateResult, error) {
	if !IsValidStatus(target) {
		return UpdateResult{}, ErrInvalidStatus.WithMetadata(map[string]any{
			"target": target,
		})
	}

	if e.transitions != nil {
		if err := e.checkTransition(ctx, id, target); err != nil {
			return UpdateResult{}, err
		}
	}

	result, err := e.store.UpdateStatus(ctx, id, target)
	if err != nil {
		return UpdateResult{}, err
	}

	if result.Applied() {
		e.logger.Info("asset %s set to %q by %s (%s)", NormalizeID(id), target, actor.Username, actor.Role)
	} else {
		e.logger.Debug("asset %s not found, status write discarded", NormalizeID(id))
	}

	return result, nil
}

// ListPendingApproval returns the assets awaiting a decision. Order
// is whatever the store yields; callers must not rely on it.
func (e *Engine) ListPendingApproval(ctx context.Context) ([]Asset, error) {
	return e.filter(ctx, func(a Asset) bool {
		return a.Status == StatusPendingApproval
	})
}

// ListByOwner returns the assets owned by the given username, exact
// match. An unknown owner yields an empty slice, never an error.
func (e *Engine) ListByOwner(ctx context.Context, username string) ([]Asset, error) {
	return e.filter(ctx, func(a Asset) bool {
		return a.Owner == username
	})
}

// Find returns the asset with the given id, or nil when absent.
func (e *Engine) Find(ctx context.Context, id string) (*Asset, error) {
	records, err := e.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if SameID(records[i].ID, id) {
			return &records[i], nil
		}
	}

	return nil, nil
}

func (e *Engine) filter(ctx context.Context, keep func(Asset) bool) ([]Asset, error) {
	records, err := e.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := []Asset{}
	for _, record := range records {
		if keep(record) {
			matched = append(matched, record)
		}
	}

	return matched, nil
}

func (e *Engine) checkTransition(ctx context.Context, id string, target Status) error {
	current, err := e.Find(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		// unknown id falls through to the store's silent discard
		return nil
	}

	if current.Status == target {
		return nil
	}

	if allowed, ok := e.transitions[current.Status]; ok {
		if _, ok := allowed[target]; ok {
			return nil
		}
	}

	return ErrInvalidStatus.WithMetadata(map[string]any{
		"from": current.Status,
		"to":   target,
	})
}
