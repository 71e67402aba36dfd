// Package session owns the profiler's working state: the practices the
// user has described, the derived team totals, the current action plan and
// the input draft. Every mutation replaces whole values under a single
// mutex; calls to the analyzer happen outside it.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/logging"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/perception"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/profile"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
)

// Analyzer is the analysis service the controller sequences.
// *perception.Client implements it.
type Analyzer interface {
	AnalyzePractice(ctx context.Context, description string) (types.Analysis, error)
	GenerateActionPlan(ctx context.Context, practices []types.Practice, totals types.Scores) ([]types.Recommendation, error)
	GeneratePracticeIdea(ctx context.Context) (string, error)
}

// Action identifies one kind of asynchronous user action.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionPlan   Action = "plan"
	ActionIdea   Action = "idea"
)

// Actions lists every action kind.
var Actions = []Action{ActionAdd, ActionUpdate, ActionPlan, ActionIdea}

var (
	// ErrActionPending is returned when an action of the same kind is
	// already in flight. The analyzer is not called.
	ErrActionPending = errors.New("action already in progress")
	// ErrPracticeNotFound is returned for an unknown practice id, including
	// a practice removed while its update was in flight.
	ErrPracticeNotFound = errors.New("practice not found")
	// ErrStalePlan is returned when the practices changed while an action
	// plan was being generated; the result is discarded.
	ErrStalePlan = errors.New("practices changed while the action plan was being generated")

	ErrEmptyDescription = perception.ErrEmptyDescription
	ErrNoPractices      = perception.ErrNoPractices
)

// Controller sequences user actions against an Analyzer.
type Controller struct {
	analyzer Analyzer
	cat      *catalog.Catalog
	newID    func() string
	guards   map[Action]*semaphore.Weighted

	mu        sync.Mutex
	practices []types.Practice
	totals    types.Scores
	plan      []types.Recommendation
	errs      map[Action]string
	pending   map[Action]bool
	draft     string
	version   uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithIDGenerator overrides how practice ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// New creates a controller with an empty practice set.
func New(analyzer Analyzer, cat *catalog.Catalog, opts ...Option) *Controller {
	c := &Controller{
		analyzer: analyzer,
		cat:      cat,
		newID:    uuid.NewString,
		guards:   make(map[Action]*semaphore.Weighted, len(Actions)),
		errs:     make(map[Action]string),
		pending:  make(map[Action]bool),
	}
	for _, a := range Actions {
		c.guards[a] = semaphore.NewWeighted(1)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.totals = profile.Aggregate(cat, nil)
	return c
}

// Catalog returns the catalog totals are computed against.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.cat
}

// =============================================================================
// GUARDS
// =============================================================================

// begin moves action a from Idle to Pending and clears its error slot.
func (c *Controller) begin(a Action) error {
	if !c.guards[a].TryAcquire(1) {
		logging.SessionDebug("%s ignored: already pending", a)
		return ErrActionPending
	}
	c.mu.Lock()
	c.pending[a] = true
	delete(c.errs, a)
	c.mu.Unlock()
	return nil
}

// end moves action a back to Idle.
func (c *Controller) end(a Action) {
	c.mu.Lock()
	delete(c.pending, a)
	c.mu.Unlock()
	c.guards[a].Release(1)
}

// fail records err in the error slot of a. Must hold c.mu.
func (c *Controller) failLocked(a Action, err error) {
	c.errs[a] = err.Error()
	cause := errors.Unwrap(err)
	if cause == nil {
		cause = err
	}
	logging.SessionWarn("%s failed: %v", a, cause)
}

// changedLocked recomputes totals after the practice set changed and
// invalidates the plan. Must hold c.mu.
func (c *Controller) changedLocked() {
	c.totals = profile.Aggregate(c.cat, c.practices)
	c.plan = nil
	delete(c.errs, ActionPlan)
	c.version++
}

func (c *Controller) indexLocked(id string) int {
	for i, p := range c.practices {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// =============================================================================
// ACTIONS
// =============================================================================

// AddPractice analyzes description and, on success, puts the new practice
// first. The draft, the plan and the plan error are cleared.
func (c *Controller) AddPractice(ctx context.Context, description string) (types.Practice, error) {
	description = normalize(description)
	if description == "" {
		return types.Practice{}, ErrEmptyDescription
	}
	if err := c.begin(ActionAdd); err != nil {
		return types.Practice{}, err
	}
	defer c.end(ActionAdd)

	analysis, err := c.analyzer.AnalyzePractice(ctx, description)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failLocked(ActionAdd, err)
		return types.Practice{}, err
	}

	p := types.NewPractice(c.newID(), description, analysis)
	practices := make([]types.Practice, 0, len(c.practices)+1)
	practices = append(practices, p)
	c.practices = append(practices, c.practices...)
	c.draft = ""
	c.changedLocked()

	logging.Session("added practice %s category=%q (%d practices)", p.ID, p.Category, len(c.practices))
	return p.Clone(), nil
}

// UpdatePractice re-analyzes a practice with a new description, replacing
// it wholesale and keeping its id. An unchanged description is a no-op.
func (c *Controller) UpdatePractice(ctx context.Context, id, description string) (types.Practice, error) {
	description = normalize(description)
	if description == "" {
		return types.Practice{}, ErrEmptyDescription
	}

	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return types.Practice{}, ErrPracticeNotFound
	}
	current := c.practices[i].Clone()
	c.mu.Unlock()

	if current.Description == description {
		return current, nil
	}

	if err := c.begin(ActionUpdate); err != nil {
		return types.Practice{}, err
	}
	defer c.end(ActionUpdate)

	analysis, err := c.analyzer.AnalyzePractice(ctx, description)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failLocked(ActionUpdate, err)
		return types.Practice{}, err
	}

	i = c.indexLocked(id)
	if i < 0 {
		logging.SessionWarn("update of %s dropped: practice removed while analysis was in flight", id)
		return types.Practice{}, ErrPracticeNotFound
	}

	p := types.NewPractice(id, description, analysis)
	practices := types.ClonePractices(c.practices)
	practices[i] = p
	c.practices = practices
	c.changedLocked()

	logging.Get(logging.CategorySession).With("practice_id", id).Info("updated practice: category=%q", p.Category)
	return p.Clone(), nil
}

// RemovePractice drops a practice by id. No analyzer call is made.
func (c *Controller) RemovePractice(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexLocked(id)
	if i < 0 {
		return ErrPracticeNotFound
	}

	practices := make([]types.Practice, 0, len(c.practices)-1)
	practices = append(practices, c.practices[:i]...)
	c.practices = append(practices, c.practices[i+1:]...)
	c.changedLocked()

	logging.Get(logging.CategorySession).With("practice_id", id).Info("removed practice (%d practices left)", len(c.practices))
	return nil
}

// GenerateActionPlan requests a plan for the current practices. On failure
// any previous plan is kept. A plan for a practice set that changed while
// it was being generated is discarded with ErrStalePlan.
func (c *Controller) GenerateActionPlan(ctx context.Context) ([]types.Recommendation, error) {
	if err := c.begin(ActionPlan); err != nil {
		return nil, err
	}
	defer c.end(ActionPlan)

	c.mu.Lock()
	if len(c.practices) == 0 {
		c.mu.Unlock()
		return nil, ErrNoPractices
	}
	practices := types.ClonePractices(c.practices)
	totals := c.totals.Clone()
	version := c.version
	c.mu.Unlock()

	recs, err := c.analyzer.GenerateActionPlan(ctx, practices, totals)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version {
		logging.SessionWarn("action plan discarded: practices changed (version %d -> %d)", version, c.version)
		return nil, ErrStalePlan
	}
	if err != nil {
		c.failLocked(ActionPlan, err)
		return nil, err
	}

	c.plan = types.CloneRecommendations(recs)
	logging.Session("action plan stored: %d recommendations", len(recs))
	return types.CloneRecommendations(recs), nil
}

// GeneratePracticeIdea asks for an example practice and stores it as the
// draft.
func (c *Controller) GeneratePracticeIdea(ctx context.Context) (string, error) {
	if err := c.begin(ActionIdea); err != nil {
		return "", err
	}
	defer c.end(ActionIdea)

	idea, err := c.analyzer.GeneratePracticeIdea(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failLocked(ActionIdea, err)
		return "", err
	}
	c.draft = idea
	return idea, nil
}

// SetDraft replaces the input draft.
func (c *Controller) SetDraft(draft string) {
	c.mu.Lock()
	c.draft = draft
	c.mu.Unlock()
}

// ClearError empties the error slot of a.
func (c *Controller) ClearError(a Action) {
	c.mu.Lock()
	delete(c.errs, a)
	c.mu.Unlock()
}
