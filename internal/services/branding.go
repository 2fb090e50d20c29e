package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
	"unicode/utf8"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/clients/gcp"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

const (
	badgeWidth  = 512
	badgeHeight = 256
)

// BrandingService renders the cover branding block: the stored logo when one
// exists in the branding bucket, otherwise a generated initials tile.
type BrandingService interface {
	RenderCoverBadge(ctx context.Context, org *types.Organization, client *types.Client) ([]byte, error)
}

type brandingService struct {
	log           *logger.Logger
	bucketService gcp.BucketService
	fontFace      font.Face
}

func NewBrandingService(log *logger.Logger, bucketService gcp.BucketService) BrandingService {
	serviceLog := log.With("service", "BrandingService")

	var face font.Face
	fontPath := strings.TrimSpace(os.Getenv("BRAND_FONT"))
	if fontPath != "" {
		f, err := loadFontFace(fontPath, 72)
		if err != nil {
			serviceLog.Warn("could not load brand font, initials tiles disabled", "font", fontPath, "error", err)
		} else {
			face = f
		}
	}

	return &brandingService{
		log:           serviceLog,
		bucketService: bucketService,
		fontFace:      face,
	}
}

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: points}), nil
}

func (s *brandingService) RenderCoverBadge(ctx context.Context, org *types.Organization, client *types.Client) ([]byte, error) {
	logoKey := ""
	if org != nil {
		logoKey = strings.TrimSpace(org.LogoKey)
	}
	if logoKey == "" && client != nil {
		logoKey = strings.TrimSpace(client.LogoKey)
	}

	if logoKey != "" {
		badge, err := s.renderLogoBadge(ctx, logoKey)
		if err == nil {
			return badge, nil
		}
		s.log.Warn("logo render failed, falling back to initials", "key", logoKey, "error", err)
	}

	name := ""
	if org != nil {
		name = org.Name
	}
	return s.renderInitialsBadge(name)
}

// renderLogoBadge letterboxes the stored logo into the badge frame.
func (s *brandingService) renderLogoBadge(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.bucketService.DownloadBytes(ctx, gcp.BucketCategoryBranding, key)
	if err != nil {
		return nil, err
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}

	sb := src.Bounds()
	scale := float64(badgeWidth) / float64(sb.Dx())
	if hs := float64(badgeHeight) / float64(sb.Dy()); hs < scale {
		scale = hs
	}
	dw := int(float64(sb.Dx()) * scale)
	dh := int(float64(sb.Dy()) * scale)
	scaled := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, sb, draw.Over, nil)

	dc := gg.NewContext(badgeWidth, badgeHeight)
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(scaled, (badgeWidth-dw)/2, (badgeHeight-dh)/2)

	var out bytes.Buffer
	if err := dc.EncodePNG(&out); err != nil {
		return nil, fmt.Errorf("encode badge: %w", err)
	}
	return out.Bytes(), nil
}

// renderInitialsBadge draws up to two initials on a flat tile, same idea as
// a generated avatar.
func (s *brandingService) renderInitialsBadge(name string) ([]byte, error) {
	dc := gg.NewContext(badgeWidth, badgeHeight)
	dc.SetColor(color.NRGBA{R: 0x1F, G: 0x3A, B: 0x5F, A: 0xFF})
	dc.Clear()

	initials := nameInitials(name)
	if initials != "" && s.fontFace != nil {
		dc.SetFontFace(s.fontFace)
		dc.SetColor(color.White)
		dc.DrawStringAnchored(initials, badgeWidth/2, badgeHeight/2, 0.5, 0.5)
	}

	var out bytes.Buffer
	if err := dc.EncodePNG(&out); err != nil {
		return nil, fmt.Errorf("encode initials badge: %w", err)
	}
	return out.Bytes(), nil
}

func nameInitials(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return ""
	}
	initials := firstUpperRune(fields[0])
	if len(fields) > 1 {
		initials += firstUpperRune(fields[len(fields)-1])
	}
	return initials
}

// firstUpperRune takes the word's first rune, not its first byte, so names
// starting with a multi-byte character keep a valid initial.
func firstUpperRune(word string) string {
	r, _ := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return ""
	}
	return strings.ToUpper(string(r))
}
