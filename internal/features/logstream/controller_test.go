package logstream

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"receipthub/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeSubscription struct {
	mu         sync.Mutex
	closeCount int
}

func (s *fakeSubscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeCount++
}

type fakeSource struct {
	mu           sync.Mutex
	initial      []*LogRecord
	fetchErr     error
	subscribeErr error
	onInsert     func(*LogRecord)
	subscription *fakeSubscription
}

func (s *fakeSource) FetchInitial(limit int) ([]*LogRecord, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}

	if len(s.initial) > limit {
		return s.initial[:limit], nil
	}

	return s.initial, nil
}

func (s *fakeSource) SubscribeInserts(onInsert func(*LogRecord)) (Subscription, error) {
	if s.subscribeErr != nil {
		return nil, s.subscribeErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.onInsert = onInsert
	s.subscription = &fakeSubscription{}

	return s.subscription, nil
}

func (s *fakeSource) push(record *LogRecord) {
	s.mu.Lock()
	onInsert := s.onInsert
	s.mu.Unlock()

	onInsert(record)
}

type fakeResolver struct {
	profiles map[uuid.UUID]Profile
	err      error
	calls    int
}

func (r *fakeResolver) ResolveMany(userIDs []uuid.UUID) (map[uuid.UUID]Profile, error) {
	r.calls++

	if r.err != nil {
		return nil, r.err
	}

	resolved := make(map[uuid.UUID]Profile)
	for _, userID := range userIDs {
		if profile, isFound := r.profiles[userID]; isFound {
			resolved[userID] = profile
		}
	}

	return resolved, nil
}

func makeAuditRecord(action, status string, createdAt time.Time) *LogRecord {
	return NewAuditRecord(&AuditRecordData{
		ID:        uuid.New(),
		Action:    action,
		Status:    status,
		CreatedAt: createdAt,
	})
}

func makeSystemRecord(message, level string, timestamp time.Time) *LogRecord {
	return NewSystemRecord(&SystemRecordData{
		ID:        uuid.New(),
		Timestamp: timestamp,
		Level:     level,
		Category:  "API",
		Message:   message,
	})
}

func createTestController(source *fakeSource, resolver ProfileResolver) *StreamController {
	if resolver == nil {
		resolver = &fakeResolver{}
	}

	controller := NewStreamController(RecordKindAudit, source, resolver, logger.GetLogger())
	controller.SetDebounceWindowForTest(20 * time.Millisecond)

	return controller
}

func waitForFlush(t *testing.T, controller *StreamController, expectedRetained int) {
	t.Helper()

	require.Eventually(t, func() bool {
		return controller.State().RetainedCount == expectedRetained
	}, 2*time.Second, 5*time.Millisecond)
}

func Test_Initialize_FetchFailure_LeavesNoPartialState(t *testing.T) {
	source := &fakeSource{fetchErr: errors.New("backend unavailable")}
	controller := createTestController(source, nil)

	err := controller.Initialize()

	require.Error(t, err)
	state := controller.State()
	assert.Equal(t, 0, state.RetainedCount)
	assert.Equal(t, 0, state.TotalCount)
}

func Test_Initialize_ResolverFailure_ProceedsUnresolved(t *testing.T) {
	actorID := uuid.New()
	record := NewAuditRecord(&AuditRecordData{
		ID:          uuid.New(),
		ActorUserID: &actorID,
		Action:      "receipt.create",
		Status:      "success",
		CreatedAt:   time.Now().UTC(),
	})

	source := &fakeSource{initial: []*LogRecord{record}}
	controller := createTestController(source, &fakeResolver{err: errors.New("lookup timeout")})

	require.NoError(t, controller.Initialize())

	records := controller.FilteredRecords()
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Profile)
	assert.Equal(t, "Unknown", records[0].DisplayUser())
}

func Test_FilterIdempotence_SameCriteriaTwice_SameResult(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	source := &fakeSource{initial: []*LogRecord{
		makeAuditRecord("receipt.create", "success", base),
		makeAuditRecord("receipt.delete", "denied", base.Add(-time.Hour)),
		makeAuditRecord("business.update", "failure", base.Add(-2*time.Hour)),
	}}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())

	criteria := FilterCriteria{Statuses: []string{"denied", "failure"}}

	controller.SetFilters(criteria)
	first := controller.FilteredRecords()

	controller.SetFilters(criteria)
	second := controller.FilteredRecords()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID(), second[i].ID())
	}
}

func Test_EmptyCriteria_PassThrough_PreservesOrder(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	initial := []*LogRecord{
		makeAuditRecord("a", "success", base),
		makeAuditRecord("b", "denied", base.Add(-time.Hour)),
		makeAuditRecord("c", "failure", base.Add(-2*time.Hour)),
	}
	source := &fakeSource{initial: initial}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())

	controller.SetFilters(FilterCriteria{})
	filtered := controller.FilteredRecords()

	require.Len(t, filtered, 3)
	for i, record := range initial {
		assert.Equal(t, record.ID(), filtered[i].ID())
	}
}

func Test_DateRange_EndDateInclusiveThroughEndOfDay(t *testing.T) {
	endDate := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	lastSecond := makeAuditRecord("in", "success", time.Date(2026, 4, 10, 23, 59, 59, 0, time.UTC))
	oneSecondLater := makeAuditRecord("out", "success", time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC))

	source := &fakeSource{initial: []*LogRecord{oneSecondLater, lastSecond}}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())

	controller.SetFilters(FilterCriteria{EndDate: &endDate})
	filtered := controller.FilteredRecords()

	require.Len(t, filtered, 1)
	assert.Equal(t, lastSecond.ID(), filtered[0].ID())
}

func Test_BatchOrdering_InsertsWithinOneWindow_PrependedInArrivalOrder(t *testing.T) {
	previous := makeAuditRecord("old", "success", time.Now().UTC().Add(-time.Hour))
	source := &fakeSource{initial: []*LogRecord{previous}}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())
	require.NoError(t, controller.StartLive())

	recordA := makeAuditRecord("a", "success", time.Now().UTC())
	recordB := makeAuditRecord("b", "success", time.Now().UTC())
	recordC := makeAuditRecord("c", "success", time.Now().UTC())

	source.push(recordA)
	source.push(recordB)
	source.push(recordC)

	waitForFlush(t, controller, 4)

	records := controller.FilteredRecords()
	require.Len(t, records, 4)
	assert.Equal(t, recordA.ID(), records[0].ID())
	assert.Equal(t, recordB.ID(), records[1].ID())
	assert.Equal(t, recordC.ID(), records[2].ID())
	assert.Equal(t, previous.ID(), records[3].ID())
}

func Test_Pause_DoesNotLoseData_OnlyPendingCountDiffers(t *testing.T) {
	source := &fakeSource{}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())
	require.NoError(t, controller.StartLive())

	assert.True(t, controller.TogglePause())

	for i := 0; i < 5; i++ {
		source.push(makeAuditRecord("during-pause", "success", time.Now().UTC()))
	}

	waitForFlush(t, controller, 5)

	state := controller.State()
	assert.Equal(t, 5, state.RetainedCount)
	assert.Equal(t, 5, state.PendingCount)

	// Resuming clears the indicator without touching the sequence
	assert.False(t, controller.TogglePause())

	state = controller.State()
	assert.Equal(t, 5, state.RetainedCount)
	assert.Equal(t, 0, state.PendingCount)
}

func Test_ScrolledAway_IncrementsPendingCount_ScrollToTopClearsIt(t *testing.T) {
	source := &fakeSource{}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())
	require.NoError(t, controller.StartLive())

	controller.SetScrollAtTop(false)

	source.push(makeAuditRecord("x", "success", time.Now().UTC()))
	source.push(makeAuditRecord("y", "success", time.Now().UTC()))

	waitForFlush(t, controller, 2)
	assert.Equal(t, 2, controller.State().PendingCount)

	controller.ScrollToTop()

	state := controller.State()
	assert.Equal(t, 0, state.PendingCount)
	assert.Equal(t, 2, state.RetainedCount)
}

func Test_LiveAtTop_DoesNotIncrementPendingCount(t *testing.T) {
	source := &fakeSource{}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())
	require.NoError(t, controller.StartLive())

	source.push(makeAuditRecord("x", "success", time.Now().UTC()))

	waitForFlush(t, controller, 1)
	assert.Equal(t, 0, controller.State().PendingCount)
}

func Test_PaginationBounds_OutOfRangePagesClamp(t *testing.T) {
	initial := make([]*LogRecord, 0, 120)
	base := time.Now().UTC()
	for i := 0; i < 120; i++ {
		initial = append(initial, makeAuditRecord("action", "success", base.Add(-time.Duration(i)*time.Minute)))
	}

	source := &fakeSource{initial: initial}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())

	records, page, totalPages := controller.GetPage(0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 3, totalPages)
	assert.Len(t, records, 50)

	records, page, totalPages = controller.GetPage(999999)
	assert.Equal(t, 3, page)
	assert.Equal(t, 3, totalPages)
	assert.Len(t, records, 20)
}

func Test_GetPage_EmptyFilteredView_IsValidPageOne(t *testing.T) {
	source := &fakeSource{initial: []*LogRecord{
		makeAuditRecord("only", "success", time.Now().UTC()),
	}}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())

	controller.SetFilters(FilterCriteria{Statuses: []string{"denied"}})

	records, page, totalPages := controller.GetPage(7)
	assert.Empty(t, records)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, totalPages)
}

func Test_StopLive_CancelsPendingTimer_MergedRecordsRemain(t *testing.T) {
	source := &fakeSource{}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())
	require.NoError(t, controller.StartLive())

	source.push(makeAuditRecord("merged", "success", time.Now().UTC()))
	waitForFlush(t, controller, 1)

	// This one stays in the unflushed batch when live stops
	controller.SetDebounceWindowForTest(150 * time.Millisecond)
	source.push(makeAuditRecord("buffered", "success", time.Now().UTC()))
	controller.StopLive()

	time.Sleep(400 * time.Millisecond)

	state := controller.State()
	assert.False(t, state.IsLive)
	assert.Equal(t, 1, state.RetainedCount)
	assert.Equal(t, 1, source.subscription.closeCount)
}

func Test_StopLive_WithoutSubscription_IsSafe(t *testing.T) {
	source := &fakeSource{}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())

	controller.StopLive()
	controller.StopLive()

	assert.False(t, controller.State().IsLive)
}

func Test_StartLive_WhileLive_IsNoOp(t *testing.T) {
	source := &fakeSource{}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())
	require.NoError(t, controller.StartLive())

	firstSubscription := source.subscription
	require.NoError(t, controller.StartLive())

	assert.Same(t, firstSubscription, source.subscription)
}

func Test_SetFilters_ResetsPageToOne(t *testing.T) {
	initial := make([]*LogRecord, 0, 120)
	base := time.Now().UTC()
	for i := 0; i < 120; i++ {
		initial = append(initial, makeAuditRecord("action", "success", base.Add(-time.Duration(i)*time.Minute)))
	}

	source := &fakeSource{initial: initial}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())

	_, page, _ := controller.GetPage(3)
	require.Equal(t, 3, page)

	controller.SetFilters(FilterCriteria{SearchText: "action"})
	assert.Equal(t, 1, controller.State().Page)
}

func Test_SearchMatchesOpaqueMetadata(t *testing.T) {
	record := NewSystemRecord(&SystemRecordData{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Level:     "INFO",
		Category:  "USER_ACTION",
		Message:   "Upload complete",
		Metadata:  datatypes.JSON(`{"fileName": "invoice.pdf"}`),
	})

	source := &fakeSource{initial: []*LogRecord{record}}
	controller := NewStreamController(RecordKindSystem, source, &fakeResolver{}, logger.GetLogger())
	require.NoError(t, controller.Initialize())

	controller.SetFilters(FilterCriteria{SearchText: "invoice"})
	filtered := controller.FilteredRecords()

	require.Len(t, filtered, 1)
	assert.Equal(t, record.ID(), filtered[0].ID())
}

func Test_EndToEnd_FilterClearExport(t *testing.T) {
	day1 := makeAuditRecord("receipt.create", "success", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	day2 := makeAuditRecord("receipt.delete", "denied", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC))
	day3 := makeAuditRecord("receipt.update", "failure", time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC))

	source := &fakeSource{initial: []*LogRecord{day3, day2, day1}}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())

	controller.SetFilters(FilterCriteria{Statuses: []string{"denied"}})
	filtered := controller.FilteredRecords()
	require.Len(t, filtered, 1)
	assert.Equal(t, day2.ID(), filtered[0].ID())

	payload, err := controller.ExportCurrentView()
	require.NoError(t, err)

	lines := splitCSVLines(string(payload))
	require.Len(t, lines, 2)
	assert.Equal(t, "Timestamp,Status,Action,Resource,User,IPAddress,Snapshots", lines[0])
	assert.Contains(t, lines[1], "denied")
	assert.Contains(t, lines[1], "receipt.delete")

	controller.ClearFilters()
	restored := controller.FilteredRecords()
	require.Len(t, restored, 3)
	assert.Equal(t, day3.ID(), restored[0].ID())
	assert.Equal(t, day2.ID(), restored[1].ID())
	assert.Equal(t, day1.ID(), restored[2].ID())
}

func Test_Refresh_ReplacesSequenceWholesale(t *testing.T) {
	first := makeAuditRecord("first", "success", time.Now().UTC())
	source := &fakeSource{initial: []*LogRecord{first}}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())
	require.NoError(t, controller.StartLive())

	source.push(makeAuditRecord("live", "success", time.Now().UTC()))
	waitForFlush(t, controller, 2)

	replacement := makeAuditRecord("replacement", "success", time.Now().UTC())
	source.mu.Lock()
	source.initial = []*LogRecord{replacement}
	source.mu.Unlock()

	require.NoError(t, controller.Refresh())

	records := controller.FilteredRecords()
	require.Len(t, records, 1)
	assert.Equal(t, replacement.ID(), records[0].ID())
}

func splitCSVLines(payload string) []string {
	var lines []string
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

func Test_Refresh_AfterStopLive_DiscardsSupersededBatch(t *testing.T) {
	source := &fakeSource{}
	controller := createTestController(source, nil)
	require.NoError(t, controller.Initialize())
	require.NoError(t, controller.StartLive())

	// Long window so the buffered record cannot flush before the refresh.
	controller.SetDebounceWindowForTest(150 * time.Millisecond)

	buffered := makeAuditRecord("receipt.create", "success", time.Now().UTC())
	source.push(buffered)
	controller.StopLive()

	// The row committed at the backend, so the fresh snapshot contains it.
	source.mu.Lock()
	source.initial = []*LogRecord{buffered}
	source.mu.Unlock()
	require.NoError(t, controller.Refresh())

	controller.SetDebounceWindowForTest(20 * time.Millisecond)
	require.NoError(t, controller.StartLive())
	next := makeAuditRecord("receipt.update", "success", time.Now().UTC())
	source.push(next)

	waitForFlush(t, controller, 2)

	records := controller.FilteredRecords()
	require.Len(t, records, 2)
	assert.Equal(t, next.ID(), records[0].ID())
	assert.Equal(t, buffered.ID(), records[1].ID())

	occurrences := 0
	for _, record := range records {
		if record.ID() == buffered.ID() {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
}
