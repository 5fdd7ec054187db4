package screenshot

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/empmonitor/core/internal/database"
	"github.com/empmonitor/core/internal/models"
	"github.com/empmonitor/core/internal/pkg/blob"
	"github.com/empmonitor/core/internal/pkg/timeutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type failingBlobs struct {
	blob.Store
}

func (f *failingBlobs) Put(context.Context, string, []byte) error { return errors.New("bucket unavailable") }

func setupScreenshotTestDB(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return NewService(db, blob.NewDBStore(db), zap.NewNop()), db
}

func TestSaveAndGet(t *testing.T) {
	svc, db := setupScreenshotTestDB(t)
	ctx := context.Background()
	captured := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return captured }

	payload := []byte("\x89PNG\r\n\x1a\nfake")
	id, err := svc.Save(ctx, "alice@example.com", payload)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get = %q, want %q", got, payload)
	}

	var row models.Screenshot
	db.First(&row, id)
	if row.UserID != "alice@example.com" || row.Size != int64(len(payload)) || !row.CaptureTime.Equal(captured) {
		t.Errorf("row = %+v", row)
	}
}

func TestGetNotFound(t *testing.T) {
	svc, db := setupScreenshotTestDB(t)
	ctx := context.Background()

	if _, err := svc.Get(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing row err = %v, want ErrNotFound", err)
	}

	orphan := models.Screenshot{UserID: "alice@example.com", BlobKey: "gone", CaptureTime: time.Now().Truncate(time.Second)}
	db.Create(&orphan)
	if _, err := svc.Get(ctx, orphan.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing blob err = %v, want ErrNotFound", err)
	}

	empty := models.Screenshot{UserID: "alice@example.com", CaptureTime: time.Now().Truncate(time.Second)}
	db.Create(&empty)
	if _, err := svc.Get(ctx, empty.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("null blob err = %v, want ErrNotFound", err)
	}
}

func TestSaveBlobFailureInsertsNothing(t *testing.T) {
	svc, db := setupScreenshotTestDB(t)
	svc.blobs = &failingBlobs{}

	if _, err := svc.Save(context.Background(), "alice@example.com", []byte("x")); err == nil {
		t.Fatal("expected error")
	}
	var count int64
	db.Model(&models.Screenshot{}).Count(&count)
	if count != 0 {
		t.Errorf("rows = %d, want 0", count)
	}
}

func TestListByWindow(t *testing.T) {
	svc, _ := setupScreenshotTestDB(t)
	ctx := context.Background()
	for _, h := range []int{9, 11, 13} {
		svc.now = func() time.Time { return time.Date(2024, 5, 1, h, 0, 0, 0, time.Local) }
		if _, err := svc.Save(ctx, "alice@example.com", []byte{byte(h)}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	svc.Save(ctx, "bob@example.com", []byte{1})

	window := timeutil.Range{
		From: time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local),
		To:   time.Date(2024, 5, 2, 0, 0, 0, 0, time.Local),
	}
	rows, err := svc.List(ctx, "alice@example.com", window)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 || rows[0].CaptureTime.Hour() != 13 || rows[1].CaptureTime.Hour() != 11 {
		t.Errorf("rows = %+v", rows)
	}
}

func multipartBody(t *testing.T, email string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if email != "" {
		mw.WriteField("user_email", email)
	}
	if payload != nil {
		fw, err := mw.CreateFormFile("screenshot", "shot.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write(payload)
	}
	mw.Close()
	return body, mw.FormDataContentType()
}

func TestScreenshotHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := setupScreenshotTestDB(t)
	r := gin.New()
	NewHandler(svc, zap.NewNop(), 16).RegisterRoutes(&r.RouterGroup)

	upload := func(email string, payload []byte) *httptest.ResponseRecorder {
		body, ct := multipartBody(t, email, payload)
		req := httptest.NewRequest(http.MethodPost, "/upload-screenshot", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := upload("alice@example.com", []byte("png-bytes"))
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"saved","screenshot_id":1}` {
		t.Fatalf("upload = %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/screenshot/1", nil))
	if w.Code != http.StatusOK || w.Body.String() != "png-bytes" {
		t.Errorf("get = %d %q", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/screenshot/99", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing status = %d, want 404", w.Code)
	}

	if w := upload("", []byte("x")); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing email status = %d, want 422", w.Code)
	}
	if w := upload("alice@example.com", nil); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing file status = %d, want 422", w.Code)
	}
	if w := upload("alice@example.com", []byte{}); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty file status = %d, want 422", w.Code)
	}
	if w := upload("alice@example.com", bytes.Repeat([]byte("x"), 17)); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("oversized status = %d, want 413", w.Code)
	}
}

func TestUploadStopsReadingOversizedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, db := setupScreenshotTestDB(t)
	r := gin.New()
	NewHandler(svc, zap.NewNop(), 1024).RegisterRoutes(&r.RouterGroup)

	payload := bytes.Repeat([]byte("x"), 1024+multipartSlack+4096)
	body, ct := multipartBody(t, "alice@example.com", payload)
	total := int64(body.Len())
	req := httptest.NewRequest(http.MethodPost, "/upload-screenshot", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413 (body %s)", w.Code, w.Body.String())
	}
	if remaining := int64(body.Len()); remaining == 0 || remaining >= total {
		t.Errorf("request body consumed %d of %d bytes, want a partial read", total-remaining, total)
	}

	var count int64
	db.Model(&models.Screenshot{}).Count(&count)
	if count != 0 {
		t.Errorf("screenshot rows = %d, want 0", count)
	}
}
