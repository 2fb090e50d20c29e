package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

// AppendixLabel maps a 1-based position to a bijective base-26 letter label:
// 1→A, 26→Z, 27→AA, 28→AB, … Labels never contain numerals, so the scheme
// stays well formed past 26 attachments.
func AppendixLabel(pos int) string {
	if pos < 1 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for pos > 0 {
		pos--
		i--
		buf[i] = byte('A' + pos%26)
		pos /= 26
	}
	return string(buf[i:])
}

// PackContext is the parent report's identity carried onto divider pages.
type PackContext struct {
	ProjectName string
	ClientName  string
	SiteAddress string
}

type DividerService interface {
	BuildDividerPage(position int, attachment *types.Attachment, pctx PackContext) ([]byte, error)
}

type dividerService struct {
	log *logger.Logger
}

func NewDividerService(log *logger.Logger) DividerService {
	return &dividerService{log: log.With("service", "DividerService")}
}

// BuildDividerPage renders the one-page separator that precedes an
// attachment in the merged pack: appendix letter, resolved title, category,
// original filename, uploader and timestamp, plus project context.
func (s *dividerService) BuildDividerPage(position int, attachment *types.Attachment, pctx PackContext) ([]byte, error) {
	if attachment == nil {
		return nil, fmt.Errorf("nil attachment for divider at position %d", position)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(25, 30, 25)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 64)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(pageW-50, 30, fmt.Sprintf("Appendix %s", AppendixLabel(position)), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(25, pdf.GetY(), pageW-25, pdf.GetY())
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(pageW-50, 12, tr(attachment.Title()), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if attachment.AppendixCategory != nil && *attachment.AppendixCategory != "" {
		pdf.SetFont("Helvetica", "I", 14)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(pageW-50, 8, tr(*attachment.AppendixCategory), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	pdf.Ln(20)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(60, 60, 60)
	rows := [][2]string{
		{"Original file", attachment.OriginalName},
		{"Uploaded by", attachment.UploaderName},
		{"Uploaded at", attachment.UploadedAt.Format("02 Jan 2006 15:04")},
		{"Project", pctx.ProjectName},
		{"Client", pctx.ClientName},
		{"Site address", pctx.SiteAddress},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(pageW-50-45, 7, tr(row[1]), "", 1, "L", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("render divider page %d: %w", position, err)
	}
	return out.Bytes(), nil
}
