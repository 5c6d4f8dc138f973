package paging

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nrfta/infinite-paging-go/scroll"
)

// ControllerOption configures optional collaborators of a Controller.
type ControllerOption func(*controllerConfig)

type controllerConfig struct {
	observer     Observer
	viewport     Viewport
	fetchTimeout time.Duration
	query        any
	hasQuery     bool
}

// WithObserver installs an event sink. It replaces the log observer that
// Options.EnableLog would otherwise install.
func WithObserver(o Observer) ControllerOption {
	return func(c *controllerConfig) {
		c.observer = o
	}
}

// WithViewport sets the collaborator that ScrollToTop drives.
func WithViewport(v Viewport) ControllerOption {
	return func(c *controllerConfig) {
		c.viewport = v
	}
}

// WithFetchTimeout bounds every fetch. A fetch that has not returned when the
// timeout elapses fails with context.DeadlineExceeded.
func WithFetchTimeout(d time.Duration) ControllerOption {
	return func(c *controllerConfig) {
		c.fetchTimeout = d
	}
}

// WithQuery sets the query used before the first SetQuery call.
// Its type must match the controller's query type.
func WithQuery[Q any](q Q) ControllerOption {
	return func(c *controllerConfig) {
		c.query = q
		c.hasQuery = true
	}
}

// Controller drives infinite-scroll pagination for one scrollable region.
//
// It turns scroll samples into page requests, keeps at most one fetch in
// flight per epoch, accumulates pages, and detects the end of data. SetQuery
// and Reset start a new epoch; results of fetches dispatched under an older
// epoch are discarded.
//
// Every event (sample, advance, fetch completion, reset) is applied under a
// single lock and runs to completion before the next one. Fetches run on their
// own goroutine so the caller is never blocked.
//
// Type parameters:
//   - Q: the query type passed through to the PageFunc
//   - T: the item type being accumulated
type Controller[Q any, T any] struct {
	fetch        PageFunc[Q, T]
	opts         Options
	pageSize     int
	skeletons    int
	observer     Observer
	viewport     Viewport
	fetchTimeout time.Duration

	mu             sync.Mutex
	status         Status
	items          []T
	pageIndex      int
	epoch          Epoch
	query          Q
	lastErr        error
	sampler        *scroll.Sampler
	started        bool
	stopped        bool
	primed         bool
	ctx            context.Context
	cancel         context.CancelFunc
	inflightCancel context.CancelFunc
	source         ScrollSource

	wg sync.WaitGroup
}

// New validates opts and creates a controller in the Init state. The page
// size is computed here and stays fixed for the controller's lifetime.
//
// Configuration problems are returned as *ConfigError or *PageSizeError and
// no controller is created.
func New[Q any, T any](opts Options, fetch PageFunc[Q, T], options ...ControllerOption) (*Controller[Q, T], error) {
	if fetch == nil {
		return nil, &ConfigError{Field: "PageFunc", Reason: "must not be nil"}
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	pageSize, err := opts.PageSize()
	if err != nil {
		return nil, err
	}

	cfg := &controllerConfig{}
	for _, opt := range options {
		opt(cfg)
	}

	if cfg.fetchTimeout < 0 {
		return nil, &ConfigError{Field: "FetchTimeout", Reason: "must not be negative"}
	}

	var query Q
	if cfg.hasQuery && cfg.query != nil {
		q, ok := cfg.query.(Q)
		if !ok {
			return nil, &ConfigError{
				Field:  "Query",
				Reason: fmt.Sprintf("initial query has type %T, want %T", cfg.query, query),
			}
		}
		query = q
	}

	observer := cfg.observer
	if observer == nil && opts.EnableLog {
		observer = NewLogObserver(log.With().Str("component", "paging").Logger())
	}

	return &Controller[Q, T]{
		fetch:        fetch,
		opts:         opts,
		pageSize:     pageSize,
		skeletons:    scroll.SkeletonCount(pageSize, opts.LoaderStyle),
		observer:     observer,
		viewport:     cfg.viewport,
		fetchTimeout: cfg.fetchTimeout,
		status:       StatusInit,
		query:        query,
		sampler:      scroll.NewSampler(opts.ScrollPercent),
	}, nil
}

// Start moves the controller to Idle and begins consuming samples from
// source, which may be nil when the caller feeds OnSample directly. With
// AutoLoadFirstPage, page 0 is dispatched before Start returns.
//
// Cancelling ctx has the same effect on fetches as Stop, but Stop must still
// be called to release the source.
func (c *Controller[Q, T]) Start(ctx context.Context, source ScrollSource) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrStopped
	}
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}

	c.started = true
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.source = source
	c.status = StatusIdle

	fx := effects{events: []Event{c.eventLocked(EventStarted, c.pageIndex)}}
	if c.opts.AutoLoadFirstPage {
		fx.add(c.dispatchLocked())
	}

	if source != nil {
		c.wg.Add(1)
		go c.consume(c.ctx, source.Samples())
	}
	c.mu.Unlock()

	c.apply(fx)
	return nil
}

// Stop cancels in-flight fetches, closes the source when it implements
// io.Closer, and waits for the controller's goroutines to return. Results
// that arrive afterwards are discarded. Stop is safe to call more than once.
func (c *Controller[Q, T]) Stop() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}

	c.stopped = true
	wasStarted := c.started
	if c.cancel != nil {
		c.cancel()
	}
	source := c.source
	stopped := c.eventLocked(EventStopped, c.pageIndex)
	c.mu.Unlock()

	var err error
	if closer, ok := source.(io.Closer); ok {
		err = closer.Close()
	}

	c.wg.Wait()

	if wasStarted {
		c.emit([]Event{stopped})
	}

	if err != nil {
		return fmt.Errorf("close scroll source: %w", err)
	}
	return nil
}

// OnSample feeds one viewport sample through the scroll sampler and
// dispatches the next page when it completes an advancing pair.
func (c *Controller[Q, T]) OnSample(sample scroll.Sample) {
	c.mu.Lock()
	if !c.sampler.Push(sample) {
		c.mu.Unlock()
		return
	}
	fx := c.advanceLocked()
	c.mu.Unlock()

	c.apply(fx)
}

// OnAdvanceEvent requests the next page. It is dropped while a fetch is in
// flight, after the end of data, and before Start.
func (c *Controller[Q, T]) OnAdvanceEvent() {
	c.mu.Lock()
	fx := c.advanceLocked()
	c.mu.Unlock()

	c.apply(fx)
}

// SetQuery replaces the query and resets pagination, even when q equals the
// current query.
func (c *Controller[Q, T]) SetQuery(q Q) {
	c.mu.Lock()
	c.query = q
	fx := c.resetLocked()
	c.mu.Unlock()

	c.apply(fx)
}

// Reset starts a new epoch: accumulated items are cleared, the page index
// returns to 0 and the status to Idle. A fetch still in flight is cancelled
// and its result discarded. Page 0 of the new epoch is dispatched
// immediately with AutoLoadFirstPage, or once any page has been requested
// since Start; an emptied list has nothing left to scroll.
func (c *Controller[Q, T]) Reset() {
	c.mu.Lock()
	fx := c.resetLocked()
	c.mu.Unlock()

	c.apply(fx)
}

// ScrollToTop asks the viewport collaborator to scroll to the top.
// It does not change pagination state.
func (c *Controller[Q, T]) ScrollToTop() {
	if c.viewport != nil {
		c.viewport.ScrollToTop()
	}
}

// Query returns the current query.
func (c *Controller[Q, T]) Query() Q {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// PageSize returns the page size frozen at construction.
func (c *Controller[Q, T]) PageSize() int {
	return c.pageSize
}

// Options returns the options the controller was created with.
func (c *Controller[Q, T]) Options() Options {
	return c.opts
}

// State returns a snapshot for rendering.
func (c *Controller[Q, T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)

	return State[T]{
		Status:        c.status,
		Items:         items,
		PageIndex:     c.pageIndex,
		PageSize:      c.pageSize,
		Epoch:         c.epoch,
		Err:           c.lastErr,
		SkeletonCount: c.skeletons,
	}
}

func (c *Controller[Q, T]) advanceLocked() effects {
	if !c.started || c.stopped {
		return effects{}
	}

	if !c.status.acceptsAdvance() {
		return effects{events: []Event{c.eventLocked(EventAdvanceDropped, c.pageIndex)}}
	}

	var fx effects
	fx.add(c.dispatchLocked())
	return fx
}

// dispatchLocked prepares the fetch for the current page and advances the
// page index immediately. The caller has checked the gate and starts the
// returned launch after emitting the dispatch event.
func (c *Controller[Q, T]) dispatchLocked() (Event, func()) {
	epoch := c.epoch
	pageIndex := c.pageIndex
	query := c.query

	c.pageIndex++
	c.status = StatusLoading
	c.lastErr = nil
	c.primed = true

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.fetchTimeout > 0 {
		ctx, cancel = context.WithTimeout(c.ctx, c.fetchTimeout)
	} else {
		ctx, cancel = context.WithCancel(c.ctx)
	}
	c.inflightCancel = cancel

	c.wg.Add(1)
	launch := func() {
		go c.run(ctx, cancel, epoch, query, pageIndex)
	}

	return c.eventLocked(EventDispatched, pageIndex), launch
}

func (c *Controller[Q, T]) resetLocked() effects {
	if c.inflightCancel != nil {
		c.inflightCancel()
		c.inflightCancel = nil
	}

	c.epoch = c.epoch.Next()
	c.items = nil
	c.pageIndex = 0
	c.lastErr = nil
	if c.started {
		c.status = StatusIdle
	}
	c.sampler.Reset()

	fx := effects{events: []Event{c.eventLocked(EventReset, 0)}}
	if (c.opts.AutoLoadFirstPage || c.primed) && c.started && !c.stopped {
		fx.add(c.dispatchLocked())
	}
	return fx
}

// effects are applied once the state lock is released. Events go out before
// the fetch starts, so a dispatch is always observed ahead of its completion.
type effects struct {
	events []Event
	launch func()
}

func (fx *effects) add(event Event, launch func()) {
	fx.events = append(fx.events, event)
	fx.launch = launch
}

type fetchResult[T any] struct {
	page []T
	err  error
}

// run executes one fetch. It stops waiting as soon as ctx is done, so a
// PageFunc that ignores its context cannot hold the controller in Loading.
func (c *Controller[Q, T]) run(ctx context.Context, cancel context.CancelFunc, epoch Epoch, query Q, pageIndex int) {
	defer c.wg.Done()
	defer cancel()

	start := time.Now()
	done := make(chan fetchResult[T], 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchResult[T]{err: fmt.Errorf("page func panicked: %v", r)}
			}
		}()
		page, err := c.fetch(ctx, query, c.pageSize, pageIndex)
		done <- fetchResult[T]{page: page, err: err}
	}()

	var res fetchResult[T]
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	c.complete(epoch, pageIndex, res, time.Since(start))
}

func (c *Controller[Q, T]) complete(epoch Epoch, pageIndex int, res fetchResult[T], took time.Duration) {
	c.mu.Lock()

	if c.stopped {
		c.mu.Unlock()
		return
	}

	if !epoch.Current(c.epoch) {
		event := c.eventLocked(EventStaleDiscarded, pageIndex)
		event.Epoch = epoch
		event.Items = len(res.page)
		event.Duration = took
		c.mu.Unlock()

		c.emit([]Event{event})
		return
	}

	c.inflightCancel = nil

	var event Event
	switch {
	case res.err != nil:
		c.status = StatusError
		c.pageIndex = pageIndex
		c.lastErr = &FetchError{Epoch: epoch, PageIndex: pageIndex, Err: res.err}
		event = c.eventLocked(EventFetchFailed, pageIndex)
		event.Err = c.lastErr

	case IsEndOfData(res.page):
		c.status = StatusEndOfData
		event = c.eventLocked(EventEndOfData, pageIndex)

	default:
		c.items = Append(c.items, res.page)
		c.status = StatusIdle
		event = c.eventLocked(EventPageLoaded, pageIndex)
		event.Items = len(res.page)
	}
	event.Duration = took
	c.mu.Unlock()

	c.emit([]Event{event})
}

func (c *Controller[Q, T]) consume(ctx context.Context, samples <-chan scroll.Sample) {
	defer c.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case sample, ok := <-samples:
			if !ok {
				return
			}
			c.OnSample(sample)
		}
	}
}

func (c *Controller[Q, T]) eventLocked(kind EventKind, pageIndex int) Event {
	return Event{
		Kind:      kind,
		Epoch:     c.epoch,
		PageIndex: pageIndex,
		PageSize:  c.pageSize,
		Total:     len(c.items),
		Status:    c.status,
	}
}

func (c *Controller[Q, T]) apply(fx effects) {
	c.emit(fx.events)
	if fx.launch != nil {
		fx.launch()
	}
}

func (c *Controller[Q, T]) emit(events []Event) {
	if c.observer == nil {
		return
	}
	for _, e := range events {
		c.observer.Observe(e)
	}
}
