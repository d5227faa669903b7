package logstream

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// PageSize is fixed; pagination is a display concern, not a query knob.
	PageSize = 50

	// DebounceWindow coalesces realtime insert bursts into one view update.
	DebounceWindow = 300 * time.Millisecond

	InitialFetchLimit = 500

	// MaxRetainedRecords caps in-memory growth during long paused sessions.
	// Trimming removes the oldest records only; a freshly flushed batch is
	// never the one cut.
	MaxRetainedRecords = 10_000
)

// StreamController maintains a live-updating, filterable, paginated view
// over an append-mostly log sequence. One instance belongs to one viewer
// session; all state sits behind a single mutex and the debounce timer is a
// single slot where every reschedule first cancels the prior handle.
type StreamController struct {
	source   LogSource
	resolver ProfileResolver
	kind     RecordKind
	logger   *slog.Logger

	mu             sync.Mutex
	records        []*LogRecord // newest first
	criteria       FilterCriteria
	page           int
	isLive         bool
	isPaused       bool
	atTop          bool
	pendingCount   int
	totalCount     int
	pendingBatch   []*LogRecord
	debounceTimer  *time.Timer
	debounceWindow time.Duration
	subscription   Subscription
	initialized    bool
}

func NewStreamController(
	kind RecordKind,
	source LogSource,
	resolver ProfileResolver,
	logger *slog.Logger,
) *StreamController {
	return &StreamController{
		source:         source,
		resolver:       resolver,
		kind:           kind,
		logger:         logger,
		page:           1,
		atTop:          true,
		debounceWindow: DebounceWindow,
	}
}

// SetDebounceWindowForTest shortens the flush window so tests do not wait on
// the production interval.
func (c *StreamController) SetDebounceWindowForTest(window time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.debounceWindow = window
}

// Initialize loads the starting sequence and resolves all actor profiles in
// one batch. The load is all-or-nothing: on fetch failure no partial state
// is applied and the previous sequence (if any) stays intact. A failed
// profile resolution is non-fatal; records simply show unresolved actors.
func (c *StreamController) Initialize() error {
	fetched, err := c.source.FetchInitial(InitialFetchLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch initial records: %w", err)
	}

	c.resolveProfiles(fetched)

	c.mu.Lock()
	defer c.mu.Unlock()

	// The fresh snapshot supersedes anything still buffered; flushing a
	// stale batch on top would duplicate rows the fetch already returned.
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
	c.pendingBatch = nil

	c.records = fetched
	c.totalCount = len(fetched)
	c.pendingCount = 0
	c.page = 1
	c.initialized = true

	return nil
}

// Refresh is an explicit manual reload; it is the only operation allowed to
// replace the sequence wholesale after realtime inserts started growing it.
func (c *StreamController) Refresh() error {
	return c.Initialize()
}

// StartLive subscribes to the insert channel. A pure on/off switch: calling
// it while already live is a no-op.
func (c *StreamController) StartLive() error {
	c.mu.Lock()
	if c.isLive {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	subscription, err := c.source.SubscribeInserts(c.Ingest)
	if err != nil {
		return fmt.Errorf("failed to subscribe to inserts: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.subscription = subscription
	c.isLive = true

	return nil
}

// StopLive unsubscribes and cancels any pending debounce timer without
// flushing it. Records already merged into the sequence remain; records
// still in the unflushed batch stay buffered and ride along with the next
// flush if the session goes live again. A manual refresh in between
// discards the buffer instead, since its snapshot already covers them.
func (c *StreamController) StopLive() {
	c.mu.Lock()

	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}

	subscription := c.subscription
	c.subscription = nil
	c.isLive = false

	c.mu.Unlock()

	// Unsubscribe outside the lock; Close is idempotent and safe when no
	// subscription exists.
	if subscription != nil {
		subscription.Close()
	}
}

// TogglePause flips the paused flag and returns the new value. Pausing only
// affects the "new logs" indicator: incoming records keep accumulating in
// the sequence. Resuming clears pendingCount without discarding anything.
func (c *StreamController) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isPaused = !c.isPaused
	if !c.isPaused {
		c.pendingCount = 0
	}

	return c.isPaused
}

// Ingest is the realtime insert entry point. The record's profile is
// resolved first, then the record joins the pending batch and the debounce
// timer is rescheduled: cancel the old handle, arm a new one. One flush per
// quiet period.
func (c *StreamController) Ingest(record *LogRecord) {
	if record == nil {
		return
	}

	c.resolveProfiles([]*LogRecord{record})

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pendingBatch = append(c.pendingBatch, record)

	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = time.AfterFunc(c.debounceWindow, c.flushPendingBatch)
}

// flushPendingBatch drains the batch and prepends it in arrival order, so
// the sequence begins [first-arrived, ..., last-arrived, older records].
func (c *StreamController) flushPendingBatch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pendingBatch) == 0 {
		return
	}

	drained := c.pendingBatch
	c.pendingBatch = nil
	c.debounceTimer = nil

	merged := make([]*LogRecord, 0, len(drained)+len(c.records))
	merged = append(merged, drained...)
	merged = append(merged, c.records...)

	if len(merged) > MaxRetainedRecords {
		merged = merged[:MaxRetainedRecords]
	}

	c.records = merged
	c.totalCount += len(drained)

	if c.isPaused || !c.atTop {
		c.pendingCount += len(drained)
	}
}

// SetScrollAtTop tracks whether the viewer is at the top of the list; it is
// updated by the client on scroll events.
func (c *StreamController) SetScrollAtTop(atTop bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.atTop = atTop
}

// ScrollToTop clears the "new logs" indicator. The records behind the count
// are already in the sequence; nothing else changes.
func (c *StreamController) ScrollToTop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.atTop = true
	c.pendingCount = 0
}

// SetFilters replaces the criteria wholesale and resets to page 1. No
// network call: filtering always runs over the in-memory sequence.
func (c *StreamController) SetFilters(criteria FilterCriteria) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.criteria = criteria
	c.page = 1
}

func (c *StreamController) ClearFilters() {
	c.SetFilters(FilterCriteria{})
}

// FilteredRecords returns the records passing the current criteria, in
// sequence order. A zero-match result is a valid empty view, not an error.
func (c *StreamController) FilteredRecords() []*LogRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.filteredLocked()
}

func (c *StreamController) filteredLocked() []*LogRecord {
	if c.criteria.IsEmpty() {
		filtered := make([]*LogRecord, len(c.records))
		copy(filtered, c.records)
		return filtered
	}

	filtered := make([]*LogRecord, 0, len(c.records))
	for _, record := range c.records {
		if c.criteria.Matches(record) {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

// GetPage returns the requested page of the filtered sequence. Out-of-range
// page numbers clamp to [1, ceil(filteredCount/PageSize)] instead of
// erroring; an empty filtered view always yields page 1 of 1.
func (c *StreamController) GetPage(page int) ([]*LogRecord, int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := c.filteredLocked()

	totalPages := int(math.Ceil(float64(len(filtered)) / float64(PageSize)))
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	c.page = page

	start := (page - 1) * PageSize
	end := min(start+PageSize, len(filtered))
	if start >= len(filtered) {
		return []*LogRecord{}, page, totalPages
	}

	return filtered[start:end], page, totalPages
}

// State is a consistent snapshot of the view flags for the HTTP surface.
func (c *StreamController) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := c.filteredLocked()

	totalPages := int(math.Ceil(float64(len(filtered)) / float64(PageSize)))
	if totalPages < 1 {
		totalPages = 1
	}

	return ViewState{
		Kind:          c.kind,
		IsLive:        c.isLive,
		IsPaused:      c.isPaused,
		AtTop:         c.atTop,
		PendingCount:  c.pendingCount,
		TotalCount:    c.totalCount,
		RetainedCount: len(c.records),
		FilteredCount: len(filtered),
		Page:          c.page,
		TotalPages:    totalPages,
		PageSize:      PageSize,
		Criteria:      c.criteria,
	}
}

// Close tears the controller down: unsubscribe and drop the pending timer.
func (c *StreamController) Close() {
	c.StopLive()
}

// ViewState is the flag snapshot reported to clients.
type ViewState struct {
	Kind          RecordKind     `json:"kind"`
	IsLive        bool           `json:"isLive"`
	IsPaused      bool           `json:"isPaused"`
	AtTop         bool           `json:"atTop"`
	PendingCount  int            `json:"pendingCount"`
	TotalCount    int            `json:"totalCount"`
	RetainedCount int            `json:"retainedCount"`
	FilteredCount int            `json:"filteredCount"`
	Page          int            `json:"page"`
	TotalPages    int            `json:"totalPages"`
	PageSize      int            `json:"pageSize"`
	Criteria      FilterCriteria `json:"criteria"`
}

func (c *StreamController) resolveProfiles(records []*LogRecord) {
	distinctIDs := make(map[uuid.UUID]struct{})
	for _, record := range records {
		if userID := record.UserID(); userID != nil {
			distinctIDs[*userID] = struct{}{}
		}
	}

	if len(distinctIDs) == 0 {
		return
	}

	userIDs := make([]uuid.UUID, 0, len(distinctIDs))
	for userID := range distinctIDs {
		userIDs = append(userIDs, userID)
	}

	profiles, err := c.resolver.ResolveMany(userIDs)
	if err != nil {
		// Non-fatal: the view proceeds with unresolved actors
		c.logger.Warn("profile resolution failed, proceeding unresolved",
			slog.Int("userIds", len(userIDs)),
			slog.String("error", err.Error()))
		return
	}

	for _, record := range records {
		userID := record.UserID()
		if userID == nil {
			continue
		}

		if profile, isFound := profiles[*userID]; isFound {
			record.Profile = &profile
		}
	}
}
