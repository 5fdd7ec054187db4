package aggregate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/empmonitor/core/internal/database"
	"github.com/empmonitor/core/internal/models"
	"github.com/empmonitor/core/internal/modules/storage/screenshot"
	"github.com/empmonitor/core/internal/modules/tracking/manuallog"
	"github.com/empmonitor/core/internal/modules/tracking/session"
	"github.com/empmonitor/core/internal/pkg/blob"
	"github.com/empmonitor/core/internal/pkg/timeutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	svc   *Service
	shots *screenshot.Service
}

func setupAggregateTestDB(t *testing.T, now time.Time) testEnv {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	shots := screenshot.NewService(db, blob.NewDBStore(db), zap.NewNop())
	svc := NewService(session.NewService(db), manuallog.NewService(db), shots, IsMissing(screenshot.ErrNotFound))
	svc.now = func() time.Time { return now }
	return testEnv{db: db, svc: svc, shots: shots}
}

func (e testEnv) seed(t *testing.T, rows ...interface{}) {
	t.Helper()
	for _, r := range rows {
		if err := e.db.Create(r).Error; err != nil {
			t.Fatalf("seed %T: %v", r, err)
		}
	}
}

func TestServiceSummaryFromStores(t *testing.T) {
	env := setupAggregateTestDB(t, at(20, 12, 0, 0))
	env.seed(t,
		&models.WorkSession{UserEmail: "alice@example.com", StartTime: at(1, 10, 0, 0), EndTime: ptr(at(1, 10, 30, 0)), Status: models.SessionCompleted},
		&models.ManualLog{UserEmail: "alice@example.com", StartTime: at(1, 9, 0, 0), EndTime: at(1, 9, 15, 0)},
		&models.WorkSession{UserEmail: "bob@example.com", StartTime: at(1, 8, 0, 0), EndTime: ptr(at(1, 18, 0, 0)), Status: models.SessionCompleted},
	)

	sum, err := env.svc.Summary(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalTrackedSeconds != 1800 || sum.ManualSeconds != 900 || sum.ActiveTime != 2700 || sum.TotalWorked != 2700 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.ActivePerDaySeconds != 1800 {
		t.Errorf("active_per_day_seconds = %d, want 1800", sum.ActivePerDaySeconds)
	}
}

func TestServiceSummarySpanCountsAllStatuses(t *testing.T) {
	env := setupAggregateTestDB(t, at(20, 12, 0, 0))
	env.seed(t,
		&models.WorkSession{UserEmail: "alice@example.com", StartTime: at(1, 9, 0, 0), EndTime: ptr(at(1, 9, 30, 0)), Status: models.SessionCompleted},
		&models.WorkSession{UserEmail: "alice@example.com", StartTime: at(1, 14, 0, 0), EndTime: ptr(at(1, 14, 10, 0)), Status: "aborted"},
	)

	sum, err := env.svc.Summary(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalTrackedSeconds != 1800 {
		t.Errorf("total_tracked_seconds = %d, want 1800", sum.TotalTrackedSeconds)
	}
	if sum.ActivePerDaySeconds != 18600 {
		t.Errorf("active_per_day_seconds = %d, want 18600", sum.ActivePerDaySeconds)
	}
}

func TestServiceDailyFiltersWindowAndStatus(t *testing.T) {
	env := setupAggregateTestDB(t, at(20, 12, 0, 0))
	env.seed(t,
		&models.WorkSession{UserEmail: "alice@example.com", StartTime: at(1, 9, 0, 0), EndTime: ptr(at(1, 10, 0, 0)), Status: models.SessionCompleted},
		&models.WorkSession{UserEmail: "alice@example.com", StartTime: at(2, 9, 0, 0), EndTime: ptr(at(2, 10, 0, 0)), Status: "aborted"},
		&models.WorkSession{UserEmail: "alice@example.com", StartTime: at(9, 9, 0, 0), EndTime: ptr(at(9, 10, 0, 0)), Status: models.SessionCompleted},
	)

	window := rangeOf(t, "2024-05-01", "2024-05-02")
	rows, err := env.svc.Daily(context.Background(), "alice@example.com", window)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if len(rows) != 1 || rows[0].Date != "2024-05-01" || rows[0].TotalSeconds != 3600 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestServiceGallery(t *testing.T) {
	env := setupAggregateTestDB(t, at(20, 12, 0, 0))
	ctx := context.Background()
	id, err := env.shots.Save(ctx, "alice@example.com", []byte("hello"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	env.seed(t, &models.Screenshot{UserID: "alice@example.com", BlobKey: "missing", CaptureTime: time.Now().Add(-time.Minute).Truncate(time.Second)})

	now := time.Now()
	window := rangeOf(t, now.AddDate(0, 0, -1).Format("2006-01-02"), now.Format("2006-01-02"))
	rows, err := env.svc.Gallery(ctx, "alice@example.com", window)
	if err != nil {
		t.Fatalf("Gallery: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %+v", rows)
	}
	var found bool
	for _, r := range rows {
		if r.ID == id {
			found = true
			if r.ImageBase64 == nil || *r.ImageBase64 != "aGVsbG8=" {
				t.Errorf("image_base64 = %v", r.ImageBase64)
			}
		} else if r.ImageBase64 != nil || r.SizeKB != 0 {
			t.Errorf("missing blob row = %+v", r)
		}
	}
	if !found {
		t.Error("saved screenshot not listed")
	}
}

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := setupAggregateTestDB(t, at(1, 15, 0, 0))
	env.seed(t,
		&models.WorkSession{UserEmail: "alice@example.com", StartTime: at(1, 10, 0, 0), EndTime: ptr(at(1, 10, 30, 0)), Status: models.SessionCompleted},
		&models.WorkSession{UserEmail: "alice@example.com", StartTime: at(1, 14, 0, 0), Status: models.SessionActive},
		&models.ManualLog{UserEmail: "alice@example.com", StartTime: at(1, 9, 0, 0), EndTime: at(1, 9, 15, 0)},
	)

	r := gin.New()
	NewHandler(env.svc, zap.NewNop()).RegisterRoutes(r.Group("/api"))
	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/api/dashboard-summary?email=alice@example.com")
	var sum struct {
		Success bool               `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode summary: %v (%s)", err, w.Body.String())
	}
	// 30 min completed + 60 min running + 15 min manual.
	if !sum.Success || sum.Data["total_tracked_seconds"] != float64(5400) || sum.Data["manual_seconds"] != float64(900) || sum.Data["active_time"] != float64(6300) {
		t.Errorf("summary = %s", w.Body.String())
	}

	w = get("/api/dashboard-summary?email=nobody@example.com")
	want := `{"success":true,"data":{"username":"nobody@example.com","total_tracked_seconds":0,"manual_seconds":0,"active_per_day_seconds":0,"active_time":0,"inactive_time":0,"total_worked":0,"total_tracked":0,"manual_added":0}}`
	if w.Body.String() != want {
		t.Errorf("empty summary = %s", w.Body.String())
	}

	w = get("/api/dashboard?email=alice@example.com&start_date=2024-05-01&end_date=2024-05-01")
	if w.Body.String() != `{"success":true,"data":[{"date":"2024-05-01","total_hours":"01:30:00","sessions":2,"total_seconds":5400}]}` {
		t.Errorf("dashboard = %s", w.Body.String())
	}

	w = get("/api/daily-timeline?email=alice@example.com")
	if w.Body.String() != `{"success":true,"data":[{"date":"2024-05-01"}]}` {
		t.Errorf("timeline dates = %s", w.Body.String())
	}

	w = get("/api/daily-timeline?email=alice@example.com&date=2024-05-01")
	wantTimeline := `{"success":true,"data":[` +
		`{"id":1,"start_time":"2024-05-01T10:00:00","end_time":"2024-05-01T10:30:00","status":"completed","start_time_fmt":"10:00","end_time_fmt":"10:30","duration_min":30},` +
		`{"id":2,"start_time":"2024-05-01T14:00:00","end_time":null,"status":"active","start_time_fmt":"14:00","end_time_fmt":null,"duration_min":null}]}`
	if w.Body.String() != wantTimeline {
		t.Errorf("timeline = %s", w.Body.String())
	}

	w = get("/api/screenshots?email=alice@example.com&start_date=2024-05-01&end_date=2024-05-31")
	if w.Body.String() != `{"success":true,"data":[]}` {
		t.Errorf("empty gallery = %s", w.Body.String())
	}

	for _, path := range []string{
		"/api/dashboard",
		"/api/dashboard-summary",
		"/api/daily-timeline?date=2024-05-01",
		"/api/dashboard?email=a@b.c&start_date=soon",
		"/api/daily-timeline?email=a@b.c&date=05/01/2024",
	} {
		if w := get(path); w.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s status = %d, want 422", path, w.Code)
		}
	}
}

func rangeOf(t *testing.T, start, end string) timeutil.Range {
	t.Helper()
	r, err := timeutil.ParseRange(start, end, time.Now())
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	return r
}
