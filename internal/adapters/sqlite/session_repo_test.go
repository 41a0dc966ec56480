package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/flowdeck/internal/adapters/sqlite"
	"github.com/example/flowdeck/internal/ports/secondary"
)

func TestSessionAppendAndCount(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	repo := sqlite.NewSessionHistoryRepository(db)
	ctx := context.Background()

	id, err := repo.Append(ctx, &secondary.SessionRecord{
		UserID:          "USER-001",
		SessionType:     "focus",
		DurationSeconds: 1500,
		Completed:       true,
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero session ID")
	}

	id2, err := repo.Append(ctx, &secondary.SessionRecord{
		UserID:          "USER-001",
		SessionType:     "short_break",
		DurationSeconds: 300,
		Completed:       true,
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if id2 <= id {
		t.Errorf("expected increasing IDs, got %d then %d", id, id2)
	}

	count, err := repo.CountCompleted(ctx, "USER-001", "focus")
	if err != nil {
		t.Fatalf("CountCompleted failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 focus session, got %d", count)
	}

	total, err := repo.TotalDurationSeconds(ctx, "USER-001", "focus")
	if err != nil {
		t.Fatalf("TotalDurationSeconds failed: %v", err)
	}
	if total != 1500 {
		t.Errorf("expected 1500 focus seconds, got %d", total)
	}
}

func TestSessionCountExcludesIncomplete(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	repo := sqlite.NewSessionHistoryRepository(db)
	ctx := context.Background()

	if _, err := repo.Append(ctx, &secondary.SessionRecord{
		UserID:          "USER-001",
		SessionType:     "focus",
		DurationSeconds: 600,
		Completed:       false,
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	count, err := repo.CountCompleted(ctx, "USER-001", "focus")
	if err != nil {
		t.Fatalf("CountCompleted failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected abandoned session excluded, got %d", count)
	}
}

func TestSessionCountCompletedSince(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	repo := sqlite.NewSessionHistoryRepository(db)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	seedSession(t, db, "USER-001", "", "focus", 1500, now.Add(-48*time.Hour))
	seedSession(t, db, "USER-001", "", "focus", 1500, now.Add(-2*time.Hour))
	seedSession(t, db, "USER-001", "", "focus", 1500, now.Add(-time.Hour))

	count, err := repo.CountCompletedSince(ctx, "USER-001", "focus", now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("CountCompletedSince failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 sessions in window, got %d", count)
	}
}

func TestSessionAppendCountsInWindowAcrossZones(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	repo := sqlite.NewSessionHistoryRepository(db)
	ctx := context.Background()

	// Production path: Append stamps occurred_at itself.
	if _, err := repo.Append(ctx, &secondary.SessionRecord{
		UserID:          "USER-001",
		SessionType:     "focus",
		DurationSeconds: 1500,
		Completed:       true,
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// A since bound expressed in a non-UTC zone must compare as an instant,
	// not as a zone-suffixed string against a stored UTC one.
	kolkata := time.FixedZone("UTC+5:30", 5*3600+1800)
	count, err := repo.CountCompletedSince(ctx, "USER-001", "focus", time.Now().In(kolkata).Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountCompletedSince failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected the just-appended session in a 1h window, got %d", count)
	}

	count, err = repo.CountCompletedSince(ctx, "USER-001", "focus", time.Now().In(kolkata).Add(time.Hour))
	if err != nil {
		t.Fatalf("CountCompletedSince failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected nothing in a future window, got %d", count)
	}
}

func TestSessionListRecent(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	repo := sqlite.NewSessionHistoryRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.Append(ctx, &secondary.SessionRecord{
			UserID:          "USER-001",
			SessionType:     "focus",
			DurationSeconds: 1500,
			Completed:       true,
		}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	sessions, err := repo.ListRecent(ctx, "USER-001", 3)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].ID <= sessions[1].ID {
		t.Error("expected newest first")
	}
	if sessions[0].OccurredAt == "" {
		t.Error("expected occurred timestamp")
	}
}

func TestSessionSummaryByTask(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	seedTask(t, db, "TASK-001", "", "Write report")
	repo := sqlite.NewSessionHistoryRepository(db)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	seedSession(t, db, "USER-001", "TASK-001", "focus", 1500, now)
	seedSession(t, db, "USER-001", "TASK-001", "focus", 1500, now)
	seedSession(t, db, "USER-001", "", "focus", 600, now)
	// Breaks never contribute to focus summaries.
	seedSession(t, db, "USER-001", "", "short_break", 300, now)

	summaries, err := repo.SummaryByTask(ctx, "USER-001")
	if err != nil {
		t.Fatalf("SummaryByTask failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summary rows, got %d", len(summaries))
	}

	// Ordered by total seconds descending: the linked task first.
	if summaries[0].TaskID != "TASK-001" || summaries[0].TaskName != "Write report" {
		t.Errorf("unexpected first row: %+v", summaries[0])
	}
	if summaries[0].Sessions != 2 || summaries[0].TotalSeconds != 3000 {
		t.Errorf("unexpected task totals: %+v", summaries[0])
	}
	if summaries[1].TaskID != "" || summaries[1].TotalSeconds != 600 {
		t.Errorf("unexpected unlinked row: %+v", summaries[1])
	}
}
