package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

func fullTestPlan(t *testing.T) *reportPlan {
	t.Helper()
	member := &types.Member{ID: uuid.New(), Reference: "B-01", RequiredDFT: f64Ptr(110)}
	inspectedAt := time.Date(2026, time.February, 5, 10, 0, 0, 0, time.UTC)
	data := &reportData{
		project: testProject(),
		members: []*types.Member{member},
		inspections: []*types.Inspection{
			{
				ID:          uuid.New(),
				MemberID:    member.ID,
				Member:      member,
				InspectedAt: inspectedAt,
				Location:    "Grid A4, north chord",
				Status:      types.InspectionStatusPassed,
				AmbientTemp: f64Ptr(21),
				SteelTemp:   f64Ptr(18),
				DewPoint:    f64Ptr(11),
				DFTBatch:    &types.DFTBatch{Readings: datatypes.JSON(`[100, 115, 125]`)},
			},
		},
		ncrs: []*types.NCR{
			{ID: uuid.New(), Reference: "NCR-001", Member: member, Status: types.NCRStatusOpen, RaisedAt: inspectedAt, Description: "Holiday in primer coat near splice plate."},
		},
		simulated: []*types.SimulatedMemberSet{
			{
				ID:    uuid.New(),
				Label: "Demonstration dataset",
				Members: []*types.SimulatedMember{
					{ID: uuid.New(), Reference: "SIM-01", Readings: datatypes.JSON(`[95, 105, 115]`)},
				},
			},
		},
	}
	plan, err := buildReportPlan(data)
	if err != nil {
		t.Fatalf("buildReportPlan: %v", err)
	}
	plan.Standards = defaultStandardsSections()
	return plan
}

func TestRenderReport_Deterministic(t *testing.T) {
	plan := fullTestPlan(t)

	first, firstPages, err := renderReport(plan)
	if err != nil {
		t.Fatalf("renderReport: %v", err)
	}
	if !bytes.HasPrefix(first, []byte("%PDF")) {
		t.Fatalf("report is not a PDF")
	}
	if firstPages < 4 {
		t.Fatalf("full plan should span several pages, got %d", firstPages)
	}
	if got := pdfPageCount(t, first); got != firstPages {
		t.Fatalf("reported page count %d disagrees with document %d", firstPages, got)
	}

	_, secondPages, err := renderReport(plan)
	if err != nil {
		t.Fatalf("renderReport again: %v", err)
	}
	if secondPages != firstPages {
		t.Fatalf("same plan must yield same page count: %d vs %d", firstPages, secondPages)
	}
}

func TestRenderReport_EmptyProject(t *testing.T) {
	plan, err := buildReportPlan(&reportData{project: testProject()})
	if err != nil {
		t.Fatalf("buildReportPlan: %v", err)
	}
	plan.Standards = defaultStandardsSections()

	raw, pages, err := renderReport(plan)
	if err != nil {
		t.Fatalf("renderReport: %v", err)
	}
	if pages < 2 {
		t.Fatalf("cover and summary should still render, got %d pages", pages)
	}
	if got := pdfPageCount(t, raw); got != pages {
		t.Fatalf("page count mismatch: %d vs %d", pages, got)
	}
}
