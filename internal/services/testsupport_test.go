package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/clients/gcp"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.Attachment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeBucket is an in-memory BucketService. Keys listed in failGet error on
// download so merge failure paths can be exercised.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	failGet map[string]bool
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{
		objects: map[string][]byte{},
		failGet: map[string]bool{},
	}
}

func (b *fakeBucket) objectKey(category gcp.BucketCategory, key string) string {
	return string(category) + "/" + key
}

func (b *fakeBucket) UploadFile(ctx context.Context, category gcp.BucketCategory, key string, file io.Reader) error {
	raw, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[b.objectKey(category, key)] = raw
	return nil
}

func (b *fakeBucket) DownloadFile(ctx context.Context, category gcp.BucketCategory, key string) (io.ReadCloser, error) {
	raw, err := b.DownloadBytes(ctx, category, key)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (b *fakeBucket) DownloadBytes(ctx context.Context, category gcp.BucketCategory, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := b.objectKey(category, key)
	if b.failGet[k] {
		return nil, fmt.Errorf("object %s unavailable", k)
	}
	raw, ok := b.objects[k]
	if !ok {
		return nil, fmt.Errorf("object %s not found", k)
	}
	return raw, nil
}

func (b *fakeBucket) DeleteFile(ctx context.Context, category gcp.BucketCategory, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, b.objectKey(category, key))
	return nil
}

func (b *fakeBucket) GetObjectAttrs(ctx context.Context, category gcp.BucketCategory, key string) (*gcp.ObjectAttrs, error) {
	raw, err := b.DownloadBytes(ctx, category, key)
	if err != nil {
		return nil, err
	}
	return &gcp.ObjectAttrs{Size: int64(len(raw))}, nil
}

func (b *fakeBucket) GetPublicURL(category gcp.BucketCategory, key string) string {
	return "mem://" + b.objectKey(category, key)
}

func makeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func makeTestPDF(t *testing.T, pages int) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Cell(40, 10, fmt.Sprintf("page %d", i+1))
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	return buf.Bytes()
}

func pdfPageCount(t *testing.T, raw []byte) int {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(raw), conf)
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	return n
}

func nopLog() *logger.Logger { return logger.NewNop() }

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }
