package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

func testProject() *types.Project {
	return &types.Project{
		ID:           uuid.New(),
		Name:         "Harbour Bridge Stage 2",
		SiteAddress:  "1 Wharf Rd, Newcastle",
		ReportDate:   time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		Organization: &types.Organization{Name: "Steelcheck Inspections", Prefix: "SCI"},
		Client:       &types.Client{Name: "Coastal Constructions"},
	}
}

func TestBuildReportPlan_SummaryCounts(t *testing.T) {
	beamA := &types.Member{ID: uuid.New(), Reference: "B-01"}
	beamB := &types.Member{ID: uuid.New(), Reference: "B-02"}

	earlier := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	later := earlier.Add(48 * time.Hour)

	data := &reportData{
		project: testProject(),
		members: []*types.Member{beamA, beamB},
		inspections: []*types.Inspection{
			// B-01 failed first, passed on re-inspection. The latest
			// inspection decides its standing.
			{ID: uuid.New(), MemberID: beamA.ID, Member: beamA, InspectedAt: earlier, Status: types.InspectionStatusRepairRequired},
			{ID: uuid.New(), MemberID: beamA.ID, Member: beamA, InspectedAt: later, Status: types.InspectionStatusPassed},
		},
		ncrs: []*types.NCR{
			{ID: uuid.New(), Reference: "NCR-001", Status: types.NCRStatusOpen, RaisedAt: earlier},
			{ID: uuid.New(), Reference: "NCR-002", Status: types.NCRStatusClosed, RaisedAt: earlier},
		},
	}

	plan, err := buildReportPlan(data)
	if err != nil {
		t.Fatalf("buildReportPlan: %v", err)
	}

	s := plan.Summary
	if s.TotalMembers != 2 || s.InspectedCount != 1 {
		t.Fatalf("member counts: got total=%d inspected=%d", s.TotalMembers, s.InspectedCount)
	}
	if s.InspectedPct != "50.0%" {
		t.Fatalf("inspected pct: want=50.0%% got=%s", s.InspectedPct)
	}
	if s.Passed != 1 || s.RepairRequired != 0 {
		t.Fatalf("standing: got passed=%d repair=%d", s.Passed, s.RepairRequired)
	}
	if s.OpenNCRs != 1 {
		t.Fatalf("open NCRs: want=1 got=%d", s.OpenNCRs)
	}
	if plan.Cover.OrgName != "Steelcheck Inspections" || plan.Cover.ClientName != "Coastal Constructions" {
		t.Fatalf("cover identity: got %+v", plan.Cover)
	}
}

func TestBuildReportPlan_OmitsEmptySections(t *testing.T) {
	data := &reportData{project: testProject()}
	plan, err := buildReportPlan(data)
	if err != nil {
		t.Fatalf("buildReportPlan: %v", err)
	}
	if len(plan.NCRRows) != 0 {
		t.Fatalf("NCR rows should be empty, got %d", len(plan.NCRRows))
	}
	if len(plan.Simulated) != 0 {
		t.Fatalf("simulated sections should be empty, got %d", len(plan.Simulated))
	}
	if plan.Summary.InspectedPct != "0.0%" {
		t.Fatalf("zero-member pct: want=0.0%% got=%s", plan.Summary.InspectedPct)
	}
}

func TestBuildReportPlan_DFTRows(t *testing.T) {
	member := &types.Member{ID: uuid.New(), Reference: "C-07", RequiredDFT: f64Ptr(110)}
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
				Status:      types.InspectionStatusPassed,
				SteelTemp:   f64Ptr(18),
				DewPoint:    f64Ptr(11),
				DFTBatch:    &types.DFTBatch{Readings: datatypes.JSON(`[100, 120]`)},
			},
			{
				// No batch, so no DFT row.
				ID:          uuid.New(),
				MemberID:    member.ID,
				Member:      member,
				InspectedAt: inspectedAt.Add(time.Hour),
				Status:      types.InspectionStatusPassed,
			},
		},
	}

	plan, err := buildReportPlan(data)
	if err != nil {
		t.Fatalf("buildReportPlan: %v", err)
	}
	if len(plan.DFTRows) != 1 {
		t.Fatalf("DFT rows: want=1 got=%d", len(plan.DFTRows))
	}
	row := plan.DFTRows[0]
	if row.MemberRef != "C-07" {
		t.Fatalf("member ref: got %q", row.MemberRef)
	}
	if row.Average == nil || !almostEqual(*row.Average, 110) {
		t.Fatalf("average: got %v", row.Average)
	}
	if row.Verdict != VerdictPass {
		t.Fatalf("verdict: want=%s got=%s", VerdictPass, row.Verdict)
	}

	if len(plan.Details) != 2 {
		t.Fatalf("details: want=2 got=%d", len(plan.Details))
	}
	first := plan.Details[0]
	if !first.SpreadKnown || !almostEqual(first.Spread, 7) || !first.SpreadConforms {
		t.Fatalf("dew point spread on detail: %+v", first)
	}
	if !first.HasBatch || first.BatchStats.Count != 2 {
		t.Fatalf("batch stats on detail: %+v", first.BatchStats)
	}
}

func TestBuildReportPlan_SimulatedSections(t *testing.T) {
	data := &reportData{
		project: testProject(),
		simulated: []*types.SimulatedMemberSet{
			{
				ID:    uuid.New(),
				Label: "Demonstration dataset",
				Members: []*types.SimulatedMember{
					{ID: uuid.New(), Reference: "SIM-01", Readings: datatypes.JSON(`[90, 110]`)},
					{ID: uuid.New(), Reference: "SIM-02", Readings: datatypes.JSON(`[105]`)},
				},
			},
		},
	}
	plan, err := buildReportPlan(data)
	if err != nil {
		t.Fatalf("buildReportPlan: %v", err)
	}
	if len(plan.Simulated) != 1 {
		t.Fatalf("simulated sections: want=1 got=%d", len(plan.Simulated))
	}
	section := plan.Simulated[0]
	if section.Label != "Demonstration dataset" || len(section.Members) != 2 {
		t.Fatalf("section: %+v", section)
	}
	if !almostEqual(section.Members[0].Stats.Mean, 100) {
		t.Fatalf("sim stats mean: got %v", section.Members[0].Stats.Mean)
	}
}

func TestBuildReportPlan_MissingProject(t *testing.T) {
	if _, err := buildReportPlan(&reportData{}); err == nil {
		t.Fatalf("expected error for missing project")
	}
	if _, err := buildReportPlan(nil); err == nil {
		t.Fatalf("expected error for nil data")
	}
}
