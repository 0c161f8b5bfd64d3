// Package application hosts the intent dispatcher: the single entry point
// that turns one structured intent into deterministic schedule mutations
// or query results.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mizanapp/mizan/internal/planner/application/intent"
	"github.com/mizanapp/mizan/internal/planner/domain"
	"github.com/mizanapp/mizan/internal/planner/strategies"
	sharedDomain "github.com/mizanapp/mizan/internal/shared/domain"
	"github.com/mizanapp/mizan/internal/shared/infrastructure/eventbus"
)

// ErrStoreFailure marks a failed persistence flush: the intent may have
// mutated the borrowed collection in memory, but nothing was committed.
// Callers should retry the whole intent.
var ErrStoreFailure = errors.New("commitment store flush failed")

// defaultStrategy is used when a rearrange-day intent names none.
const defaultStrategy = strategies.NameOptimizeGaps

// Dispatcher executes intents against the externally owned commitment
// store. It keeps no state between calls; it must hold the store
// exclusively for the duration of one Dispatch.
type Dispatcher struct {
	store     domain.CommitmentStore
	anchors   domain.AnchorSource
	calc      *domain.AvailabilityCalculator
	detector  *domain.ConflictDetector
	resolver  *domain.Resolver
	publisher eventbus.Publisher
	logger    *slog.Logger
	now       func() time.Time
	dayStart  time.Duration
	dayEnd    time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock overrides the dispatcher's notion of "now".
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithDayWindow overrides the plannable day window offsets from midnight.
func WithDayWindow(start, end time.Duration) Option {
	return func(d *Dispatcher) { d.dayStart, d.dayEnd = start, end }
}

// WithMinFreeWindow sets the smallest free window worth reporting or
// filling. Non-positive values keep the domain default.
func WithMinFreeWindow(min time.Duration) Option {
	return func(d *Dispatcher) { d.calc = domain.NewAvailabilityCalculator(min) }
}

// WithPublisher sets the event publisher for post-flush domain events.
func WithPublisher(p eventbus.Publisher) Option {
	return func(d *Dispatcher) { d.publisher = p }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// NewDispatcher wires a dispatcher over the given store and anchor
// source.
func NewDispatcher(store domain.CommitmentStore, anchors domain.AnchorSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:     store,
		anchors:   anchors,
		calc:      domain.NewAvailabilityCalculator(0),
		detector:  domain.NewConflictDetector(),
		resolver:  domain.NewResolver(),
		publisher: eventbus.NopPublisher{},
		logger:    slog.Default(),
		now:       time.Now,
		dayStart:  domain.DefaultDayStartHour * time.Hour,
		dayEnd:    domain.DefaultDayEndHour * time.Hour,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes one intent and returns its outcome. Every member of
// the error taxonomy is returned as an outcome value; the error return is
// reserved for store failures, so the caller can tell "nothing happened"
// from "something happened but wasn't saved".
func (d *Dispatcher) Dispatch(ctx context.Context, in intent.Intent) (intent.Outcome, error) {
	if err := in.Validate(); err != nil {
		return intent.Outcome{}, err
	}

	d.logger.DebugContext(ctx, "dispatching intent", "kind", in.Kind)

	switch in.Kind {
	case intent.KindCreateTask:
		return d.createTask(ctx, in)
	case intent.KindEditTask:
		return d.editTask(ctx, in)
	case intent.KindDeleteTask:
		return d.deleteTask(ctx, in)
	case intent.KindCompleteTask:
		return d.setCompleted(ctx, in, true)
	case intent.KindUncompleteTask:
		return d.setCompleted(ctx, in, false)
	case intent.KindRescheduleTask:
		return d.rescheduleTask(ctx, in)
	case intent.KindMoveToUnscheduled:
		return d.moveToUnscheduled(ctx, in)
	case intent.KindRearrangeDay:
		return d.rearrangeDay(ctx, in)
	case intent.KindQueryTasks:
		return d.queryTasks(ctx, in)
	case intent.KindQueryAnchors:
		return d.queryAnchors(ctx, in)
	case intent.KindQueryFreeWindows:
		return d.queryFreeWindows(ctx, in)
	case intent.KindClarification:
		// Already resolved upstream; pass through unchanged.
		return intent.Outcome{Kind: intent.OutcomeNeedsClarification, Message: in.Message}, nil
	case intent.KindInfeasible:
		return intent.NewInfeasible(in.Message, nil), nil
	default:
		return intent.Outcome{}, intent.ErrUnknownKind
	}
}

func (d *Dispatcher) createTask(ctx context.Context, in intent.Intent) (intent.Outcome, error) {
	c, err := domain.NewCommitment(in.Title, time.Duration(in.DurationMin)*time.Minute, domain.Category(in.Category))
	if err != nil {
		return intent.NewInfeasible(err.Error(), nil), nil
	}
	if in.Notes != "" {
		c.SetNotes(in.Notes)
	}
	if in.Recurrence != "" {
		if err := c.SetRecurrence(in.Recurrence); err != nil {
			return intent.NewInfeasible(err.Error(), nil), nil
		}
	}

	if in.When != nil && !in.When.IsZero() {
		start, err := in.When.Resolve(d.now())
		if err != nil {
			return intent.NewInfeasible(err.Error(), nil), nil
		}
		anchors, err := d.anchors.AnchorsFor(ctx, start)
		if err != nil {
			return intent.Outcome{}, err
		}
		if conflict := d.detector.Check(start, c.Duration(), anchors); conflict != nil {
			suggestion := d.detector.SuggestAfter(*conflict, c.Duration(), anchors)
			return intent.NewPrayerConflict(*conflict, suggestion, in), nil
		}
		c.ScheduleAt(start)
	}

	if err := d.store.Insert(ctx, c); err != nil {
		return intent.Outcome{}, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	if err := d.flush(ctx); err != nil {
		return intent.Outcome{}, err
	}
	d.publish(ctx, domain.NewCommitmentChanged(domain.EventCommitmentCreated, c, nil))
	return intent.NewSingle(intent.OutcomeCreated, c), nil
}

func (d *Dispatcher) editTask(ctx context.Context, in intent.Intent) (intent.Outcome, error) {
	c, miss, err := d.resolveOne(ctx, in)
	if err != nil || miss != nil {
		return unwrapMiss(miss, err)
	}

	if in.Title != "" {
		if err := c.Rename(in.Title); err != nil {
			return intent.NewInfeasible(err.Error(), nil), nil
		}
	}
	if in.DurationMin > 0 {
		if err := c.SetDuration(time.Duration(in.DurationMin) * time.Minute); err != nil {
			return intent.NewInfeasible(err.Error(), nil), nil
		}
	}
	if in.Category != "" {
		c.SetCategory(domain.Category(in.Category))
	}
	if in.Notes != "" {
		c.SetNotes(in.Notes)
	}
	if in.Recurrence != "" {
		if err := c.SetRecurrence(in.Recurrence); err != nil {
			return intent.NewInfeasible(err.Error(), nil), nil
		}
	}

	if err := d.flush(ctx); err != nil {
		return intent.Outcome{}, err
	}
	d.publish(ctx, domain.NewCommitmentChanged(domain.EventCommitmentEdited, c, nil))
	return intent.NewSingle(intent.OutcomeEdited, c), nil
}

func (d *Dispatcher) deleteTask(ctx context.Context, in intent.Intent) (intent.Outcome, error) {
	c, miss, err := d.resolveOne(ctx, in)
	if err != nil || miss != nil {
		return unwrapMiss(miss, err)
	}

	if !in.Confirmed {
		// Destructive operations are two-step: surface the match, wait
		// for a confirmed re-submission.
		return intent.NewSingle(intent.OutcomeDeletePending, c), nil
	}

	if err := d.store.Remove(ctx, c.ID()); err != nil {
		return intent.Outcome{}, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	if err := d.flush(ctx); err != nil {
		return intent.Outcome{}, err
	}
	d.publish(ctx, domain.NewCommitmentChanged(domain.EventCommitmentDeleted, c, nil))
	return intent.NewSingle(intent.OutcomeDeleted, c), nil
}

func (d *Dispatcher) setCompleted(ctx context.Context, in intent.Intent, done bool) (intent.Outcome, error) {
	c, miss, err := d.resolveOne(ctx, in)
	if err != nil || miss != nil {
		return unwrapMiss(miss, err)
	}

	kind := intent.OutcomeCompleted
	routingKey := domain.EventCommitmentCompleted
	if done {
		c.MarkCompleted()
	} else {
		c.MarkUncompleted()
		kind = intent.OutcomeUncompleted
		routingKey = domain.EventCommitmentUncompleted
	}

	if err := d.flush(ctx); err != nil {
		return intent.Outcome{}, err
	}
	d.publish(ctx, domain.NewCommitmentChanged(routingKey, c, nil))
	return intent.NewSingle(kind, c), nil
}

func (d *Dispatcher) rescheduleTask(ctx context.Context, in intent.Intent) (intent.Outcome, error) {
	c, miss, err := d.resolveOne(ctx, in)
	if err != nil || miss != nil {
		return unwrapMiss(miss, err)
	}

	start, err := in.When.Resolve(d.now())
	if err != nil {
		return intent.NewInfeasible(err.Error(), nil), nil
	}
	anchors, err := d.anchors.AnchorsFor(ctx, start)
	if err != nil {
		return intent.Outcome{}, err
	}
	if conflict := d.detector.Check(start, c.Duration(), anchors); conflict != nil {
		suggestion := d.detector.SuggestAfter(*conflict, c.Duration(), anchors)
		return intent.NewPrayerConflict(*conflict, suggestion, in), nil
	}

	oldStart := copyTime(c.ScheduledStart())
	c.ScheduleAt(start)

	if err := d.flush(ctx); err != nil {
		return intent.Outcome{}, err
	}
	d.publish(ctx, domain.NewCommitmentChanged(domain.EventCommitmentRescheduled, c, oldStart))
	return intent.NewSingle(intent.OutcomeRescheduled, c), nil
}

func (d *Dispatcher) moveToUnscheduled(ctx context.Context, in intent.Intent) (intent.Outcome, error) {
	c, miss, err := d.resolveOne(ctx, in)
	if err != nil || miss != nil {
		return unwrapMiss(miss, err)
	}

	oldStart := copyTime(c.ScheduledStart())
	c.Unschedule()

	if err := d.flush(ctx); err != nil {
		return intent.Outcome{}, err
	}
	d.publish(ctx, domain.NewCommitmentChanged(domain.EventCommitmentUnscheduled, c, oldStart))
	return intent.NewSingle(intent.OutcomeMovedToUnscheduled, c), nil
}

func (d *Dispatcher) rearrangeDay(ctx context.Context, in intent.Intent) (intent.Outcome, error) {
	date, err := d.resolveDate(in.Date)
	if err != nil {
		return intent.NewInfeasible(err.Error(), nil), nil
	}

	name := in.Strategy
	if name == "" {
		name = defaultStrategy
	}
	strategy, err := strategies.ForName(name)
	if err != nil {
		return intent.NewInfeasible(err.Error(), nil), nil
	}

	all, err := d.store.FetchAll(ctx)
	if err != nil {
		return intent.Outcome{}, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	var day []*domain.Commitment
	for _, c := range all {
		if !c.IsCompleted() && c.OccursOn(date) {
			day = append(day, c)
		}
	}
	if len(day) == 0 {
		return intent.NewInfeasible("no commitments to rearrange on "+date.Format("2006-01-02"), nil), nil
	}

	anchors, err := d.anchors.AnchorsFor(ctx, date)
	if err != nil {
		return intent.Outcome{}, err
	}

	now := d.now()
	if !domain.SameDay(now, date) {
		// Rearranging another day starts from its day window, not from
		// the wall clock.
		now = domain.NewDayBounds(date, d.dayStart, d.dayEnd).Start
	}

	changes, err := strategy.Rearrange(strategies.Input{
		Now:         now,
		Bounds:      domain.NewDayBounds(date, d.dayStart, d.dayEnd),
		Anchors:     anchors,
		Commitments: day,
	})
	if err != nil {
		return intent.NewInfeasible(err.Error(), nil), nil
	}

	if len(changes) > 0 {
		if err := d.flush(ctx); err != nil {
			return intent.Outcome{}, err
		}
		d.publish(ctx, domain.NewDayRearranged(date, strategy.Name(), changes))
	}
	return intent.NewRearranged(changes), nil
}

func (d *Dispatcher) queryTasks(ctx context.Context, in intent.Intent) (intent.Outcome, error) {
	all, err := d.store.FetchAll(ctx)
	if err != nil {
		return intent.Outcome{}, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	q, err := d.buildQuery(in)
	if err != nil {
		return intent.NewInfeasible(err.Error(), nil), nil
	}
	return intent.NewTaskList(d.resolver.Filter(q, all)), nil
}

func (d *Dispatcher) queryAnchors(ctx context.Context, in intent.Intent) (intent.Outcome, error) {
	date, err := d.resolveDate(in.Date)
	if err != nil {
		return intent.NewInfeasible(err.Error(), nil), nil
	}
	anchors, err := d.anchors.AnchorsFor(ctx, date)
	if err != nil {
		return intent.Outcome{}, err
	}
	return intent.NewAnchorList(anchors), nil
}

func (d *Dispatcher) queryFreeWindows(ctx context.Context, in intent.Intent) (intent.Outcome, error) {
	date, err := d.resolveDate(in.Date)
	if err != nil {
		return intent.NewInfeasible(err.Error(), nil), nil
	}
	anchors, err := d.anchors.AnchorsFor(ctx, date)
	if err != nil {
		return intent.Outcome{}, err
	}
	all, err := d.store.FetchAll(ctx)
	if err != nil {
		return intent.Outcome{}, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}

	bounds := domain.NewDayBounds(date, d.dayStart, d.dayEnd)
	var windows []domain.FreeWindow
	if in.FutureOnly {
		windows = d.calc.FreeWindowsFrom(d.now(), bounds, anchors, all)
	} else {
		windows = d.calc.FreeWindows(bounds, anchors, all)
	}
	return intent.NewFreeWindows(windows), nil
}

// resolveOne maps the intent's free-text reference to exactly one
// commitment. The second return value is a terminal miss outcome
// (not-found or needs-clarification), nil when a match was found.
func (d *Dispatcher) resolveOne(ctx context.Context, in intent.Intent) (*domain.Commitment, *intent.Outcome, error) {
	all, err := d.store.FetchAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}

	q := domain.TaskQuery{TitleContains: in.Reference}
	c, err := d.resolver.ResolveOne(q, all)
	if err == nil {
		return c, nil, nil
	}

	var ambiguous *domain.AmbiguousMatchError
	switch {
	case errors.Is(err, domain.ErrCommitmentNotFound):
		out := intent.NewNotFound(in.Reference)
		return nil, &out, nil
	case errors.As(err, &ambiguous):
		out := intent.NewNeedsClarification(
			fmt.Sprintf("%d commitments match %q", len(ambiguous.Candidates), in.Reference),
			ambiguous.Candidates,
		)
		return nil, &out, nil
	default:
		return nil, nil, err
	}
}

func (d *Dispatcher) buildQuery(in intent.Intent) (domain.TaskQuery, error) {
	q := domain.TaskQuery{
		TitleContains: in.Reference,
		Completed:     in.Completed,
	}
	if in.Category != "" {
		cat := domain.Category(in.Category)
		q.Category = &cat
	}
	if in.Date != "" {
		date, err := d.resolveDate(in.Date)
		if err != nil {
			return domain.TaskQuery{}, err
		}
		q.Date = &date
	}
	return q, nil
}

// resolveDate parses a 2006-01-02 day selector, defaulting to today.
func (d *Dispatcher) resolveDate(s string) (time.Time, error) {
	if s == "" {
		return d.now(), nil
	}
	date, err := time.ParseInLocation("2006-01-02", s, d.now().Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q", s)
	}
	return date, nil
}

// flush commits every staged mutation. No success outcome is returned
// before the flush succeeds.
func (d *Dispatcher) flush(ctx context.Context) error {
	if err := d.store.Save(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	return nil
}

// publish emits a domain event after a successful flush. Publishing is
// best effort: a broker hiccup must not fail an already-committed intent.
func (d *Dispatcher) publish(ctx context.Context, ev sharedDomain.DomainEvent) {
	encoded, err := eventbus.Encode(ev)
	if err != nil {
		d.logger.WarnContext(ctx, "failed to encode event", "routing_key", ev.RoutingKey(), "error", err)
		return
	}
	if err := d.publisher.Publish(ctx, ev.RoutingKey(), encoded); err != nil {
		d.logger.WarnContext(ctx, "failed to publish event", "routing_key", ev.RoutingKey(), "error", err)
	}
}

// unwrapMiss converts a resolver miss into the outcome to return.
func unwrapMiss(miss *intent.Outcome, err error) (intent.Outcome, error) {
	if err != nil {
		return intent.Outcome{}, err
	}
	return *miss, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
