package services

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/jung-kurt/gofpdf"
	_ "golang.org/x/image/webp"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
)

// a4LongSidePt is the long side of an A4 page in points. Normalized pages
// scale the image's longer dimension to this so page size always matches the
// source aspect ratio.
const a4LongSidePt = 841.89

type NormalizerService interface {
	NormalizeImage(raw []byte, originalName string) ([]byte, int64, error)
}

type normalizerService struct {
	log *logger.Logger
}

func NewNormalizerService(log *logger.Logger) NormalizerService {
	return &normalizerService{log: log.With("service", "NormalizerService")}
}

// NormalizeImage converts an image blob into a single-page PDF whose page
// matches the image's natural aspect ratio, full bleed, orientation
// preserved. The caller persists the artifact; this produces bytes only.
func (s *normalizerService) NormalizeImage(raw []byte, originalName string) ([]byte, int64, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, &ConversionFailedError{Filename: originalName, Err: fmt.Errorf("decode image: %w", err)}
	}

	bounds := img.Bounds()
	wpx := bounds.Dx()
	hpx := bounds.Dy()
	if wpx <= 0 || hpx <= 0 {
		return nil, 0, &ConversionFailedError{Filename: originalName, Err: fmt.Errorf("empty image %dx%d", wpx, hpx)}
	}
	pageW, pageH := normalizedPageSize(wpx, hpx)

	// Re-encode through PNG so every supported source format (jpeg, png,
	// gif, webp) embeds the same way.
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, 0, &ConversionFailedError{Filename: originalName, Err: fmt.Errorf("encode png: %w", err)}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("attachment", opts, &pngBuf)
	pdf.ImageOptions("attachment", 0, 0, pageW, pageH, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, 0, &ConversionFailedError{Filename: originalName, Err: fmt.Errorf("write pdf: %w", err)}
	}
	return out.Bytes(), int64(out.Len()), nil
}

// normalizedPageSize maps pixel dimensions to a page size in points with the
// longer side pinned to the A4 long side.
func normalizedPageSize(wpx, hpx int) (float64, float64) {
	w := float64(wpx)
	h := float64(hpx)
	if w >= h {
		return a4LongSidePt, a4LongSidePt * h / w
	}
	return a4LongSidePt * w / h, a4LongSidePt
}
