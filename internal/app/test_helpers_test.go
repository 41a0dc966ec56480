package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/flowdeck/internal/ctxutil"
	"github.com/example/flowdeck/internal/ports/primary"
	"github.com/example/flowdeck/internal/ports/secondary"
)

const testUserID = "USER-001"

func testCtx() context.Context {
	return ctxutil.WithUserID(context.Background(), testUserID)
}

func testCtxNoUser() context.Context {
	return context.Background()
}

func primaryFlowSettings(focus, short, long int) primary.FlowSettings {
	return primary.FlowSettings{
		FocusMinutes:      focus,
		ShortBreakMinutes: short,
		LongBreakMinutes:  long,
	}
}

// fakeClock is a manually advanced clock for deterministic transitions.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement their interfaces
var _ secondary.FlowStateRepository = (*mockFlowStateRepository)(nil)
var _ secondary.SessionHistoryRepository = (*mockSessionHistoryRepository)(nil)
var _ secondary.RewardRepository = (*mockRewardRepository)(nil)
var _ secondary.TaskRepository = (*mockTaskRepository)(nil)
var _ secondary.VisionRepository = (*mockVisionRepository)(nil)

// mockFlowStateRepository implements secondary.FlowStateRepository for testing.
type mockFlowStateRepository struct {
	state           *secondary.FlowStateRecord
	settings        *secondary.FlowSettingsRecord
	saveCount       int
	loadErr         error
	saveErr         error
	getSettingsErr  error
	saveSettingsErr error
}

func newMockFlowStateRepository() *mockFlowStateRepository {
	return &mockFlowStateRepository{}
}

func (m *mockFlowStateRepository) Load(ctx context.Context, userID string) (*secondary.FlowStateRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.state, nil
}

func (m *mockFlowStateRepository) Save(ctx context.Context, state *secondary.FlowStateRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *state
	m.state = &copied
	m.saveCount++
	return nil
}

func (m *mockFlowStateRepository) GetSettings(ctx context.Context, userID string) (*secondary.FlowSettingsRecord, error) {
	if m.getSettingsErr != nil {
		return nil, m.getSettingsErr
	}
	return m.settings, nil
}

func (m *mockFlowStateRepository) SaveSettings(ctx context.Context, settings *secondary.FlowSettingsRecord) error {
	if m.saveSettingsErr != nil {
		return m.saveSettingsErr
	}
	copied := *settings
	m.settings = &copied
	return nil
}

// mockSessionHistoryRepository implements secondary.SessionHistoryRepository
// for testing. Windowed counts filter on OccurredAt parsed as RFC3339; rows
// without a parseable timestamp fall outside every window.
type mockSessionHistoryRepository struct {
	sessions      []*secondary.SessionRecord
	taskSummaries []*secondary.TaskFocusSummary
	nextID        int64
	appendErr     error
	countErr      error
	listErr       error
	summaryErr    error
}

func newMockSessionHistoryRepository() *mockSessionHistoryRepository {
	return &mockSessionHistoryRepository{}
}

func (m *mockSessionHistoryRepository) Append(ctx context.Context, session *secondary.SessionRecord) (int64, error) {
	if m.appendErr != nil {
		return 0, m.appendErr
	}
	m.nextID++
	copied := *session
	copied.ID = m.nextID
	m.sessions = append(m.sessions, &copied)
	return copied.ID, nil
}

func (m *mockSessionHistoryRepository) CountCompleted(ctx context.Context, userID, sessionType string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, s := range m.sessions {
		if s.UserID == userID && s.SessionType == sessionType && s.Completed {
			count++
		}
	}
	return count, nil
}

func (m *mockSessionHistoryRepository) CountCompletedSince(ctx context.Context, userID, sessionType string, since time.Time) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, s := range m.sessions {
		if s.UserID != userID || s.SessionType != sessionType || !s.Completed {
			continue
		}
		occurred, err := time.Parse(time.RFC3339, s.OccurredAt)
		if err != nil || occurred.Before(since) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockSessionHistoryRepository) TotalDurationSeconds(ctx context.Context, userID, sessionType string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	total := 0
	for _, s := range m.sessions {
		if s.UserID == userID && s.SessionType == sessionType && s.Completed {
			total += s.DurationSeconds
		}
	}
	return total, nil
}

func (m *mockSessionHistoryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*secondary.SessionRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.SessionRecord
	for i := len(m.sessions) - 1; i >= 0 && len(result) < limit; i-- {
		if m.sessions[i].UserID == userID {
			result = append(result, m.sessions[i])
		}
	}
	return result, nil
}

func (m *mockSessionHistoryRepository) SummaryByTask(ctx context.Context, userID string) ([]*secondary.TaskFocusSummary, error) {
	if m.summaryErr != nil {
		return nil, m.summaryErr
	}
	return m.taskSummaries, nil
}

// mockRewardRepository implements secondary.RewardRepository for testing.
type mockRewardRepository struct {
	rules       []*secondary.RewardRuleRecord
	grants      map[string]bool
	tryGrantErr error
	listErr     error
	hasGrantErr error
}

func newMockRewardRepository(rules ...*secondary.RewardRuleRecord) *mockRewardRepository {
	return &mockRewardRepository{
		rules:  rules,
		grants: make(map[string]bool),
	}
}

func grantKey(userID, rewardID string) string {
	return userID + "/" + rewardID
}

func (m *mockRewardRepository) ListRules(ctx context.Context) ([]*secondary.RewardRuleRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rules, nil
}

func (m *mockRewardRepository) ListRulesByCondition(ctx context.Context, conditionType string) ([]*secondary.RewardRuleRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.RewardRuleRecord
	for _, r := range m.rules {
		if r.ConditionType == conditionType {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockRewardRepository) TryGrant(ctx context.Context, userID, rewardID string) (bool, error) {
	if m.tryGrantErr != nil {
		return false, m.tryGrantErr
	}
	key := grantKey(userID, rewardID)
	if m.grants[key] {
		return false, nil
	}
	m.grants[key] = true
	return true, nil
}

func (m *mockRewardRepository) HasGrant(ctx context.Context, userID, rewardID string) (bool, error) {
	if m.hasGrantErr != nil {
		return false, m.hasGrantErr
	}
	return m.grants[grantKey(userID, rewardID)], nil
}

func (m *mockRewardRepository) ListEarned(ctx context.Context, userID string) ([]*secondary.EarnedRewardRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.EarnedRewardRecord
	for _, r := range m.rules {
		if m.grants[grantKey(userID, r.ID)] {
			result = append(result, &secondary.EarnedRewardRecord{
				RewardID:    r.ID,
				Name:        r.Name,
				Description: r.Description,
				EarnedAt:    "2025-06-01 09:00:00",
			})
		}
	}
	return result, nil
}

// mockTaskRepository implements secondary.TaskRepository for testing.
type mockTaskRepository struct {
	tasks              map[string]*secondary.TaskRecord
	nextID             int
	distinctDaysResult int
	createErr          error
	getErr             error
	listErr            error
	setCompletedErr    error
	deleteErr          error
	countErr           error
	resolveErr         error
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{tasks: make(map[string]*secondary.TaskRecord)}
}

func (m *mockTaskRepository) addTask(id, name string, completed bool) {
	record := &secondary.TaskRecord{
		ID:        id,
		UserID:    testUserID,
		Name:      name,
		Completed: completed,
		CreatedAt: "2025-06-01 08:00:00",
	}
	if completed {
		record.CompletedAt = "2025-06-01T08:30:00Z"
	}
	m.tasks[id] = record
}

func (m *mockTaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *task
	copied.CreatedAt = "2025-06-01 09:00:00"
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskRepository) GetByID(ctx context.Context, userID, id string) (*secondary.TaskRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if t, ok := m.tasks[id]; ok && t.UserID == userID {
		return t, nil
	}
	return nil, errors.New("task not found")
}

func (m *mockTaskRepository) List(ctx context.Context, userID string, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.TaskRecord
	for _, t := range m.tasks {
		if t.UserID != userID {
			continue
		}
		if filters.Completed != nil && t.Completed != *filters.Completed {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (m *mockTaskRepository) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	if m.setCompletedErr != nil {
		return m.setCompletedErr
	}
	t, ok := m.tasks[id]
	if !ok {
		return errors.New("task not found")
	}
	t.Completed = completed
	if completed {
		t.CompletedAt = "2025-06-01T09:00:00Z"
	} else {
		t.CompletedAt = ""
	}
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, userID, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("TASK-%03d", m.nextID), nil
}

func (m *mockTaskRepository) CountCompleted(ctx context.Context, userID string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, t := range m.tasks {
		if t.UserID == userID && t.Completed {
			count++
		}
	}
	return count, nil
}

func (m *mockTaskRepository) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, t := range m.tasks {
		if t.UserID != userID || !t.Completed {
			continue
		}
		completed, err := time.Parse(time.RFC3339, t.CompletedAt)
		if err != nil || completed.Before(since) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockTaskRepository) CountDistinctCompletionDaysSince(ctx context.Context, userID string, since time.Time) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.distinctDaysResult, nil
}

func (m *mockTaskRepository) Resolve(ctx context.Context, userID, id string) (string, error) {
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	if t, ok := m.tasks[id]; ok && t.UserID == userID {
		return t.Name, nil
	}
	return "", nil
}

// mockVisionRepository implements secondary.VisionRepository for testing.
type mockVisionRepository struct {
	tiles     map[string]*secondary.VisionTileRecord
	nextID    int
	createErr error
	listErr   error
	deleteErr error
	countErr  error
}

func newMockVisionRepository() *mockVisionRepository {
	return &mockVisionRepository{tiles: make(map[string]*secondary.VisionTileRecord)}
}

func (m *mockVisionRepository) Create(ctx context.Context, tile *secondary.VisionTileRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *tile
	m.tiles[tile.ID] = &copied
	return nil
}

func (m *mockVisionRepository) List(ctx context.Context, userID string) ([]*secondary.VisionTileRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.VisionTileRecord
	for _, t := range m.tiles {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockVisionRepository) Delete(ctx context.Context, userID, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.tiles, id)
	return nil
}

func (m *mockVisionRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("TILE-%03d", m.nextID), nil
}

func (m *mockVisionRepository) Count(ctx context.Context, userID string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, t := range m.tiles {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}
