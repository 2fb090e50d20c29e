package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

// reportData is everything ComposeReport gathers up front. The gathering
// queries run in parallel since they read disjoint record sets.
type reportData struct {
	project     *types.Project
	members     []*types.Member
	inspections []*types.Inspection
	ncrs        []*types.NCR
	simulated   []*types.SimulatedMemberSet
	badge       []byte
}

// reportPlan is the deterministic page plan derived from reportData. The
// renderer walks it top to bottom; identical input data always yields the
// same plan, hence the same page count and row order.
type reportPlan struct {
	Cover      coverData
	Summary    summaryData
	Standards  []StandardsSection
	DFTRows    []dftRow
	Simulated  []simSection // empty slice → section omitted
	NCRRows    []ncrRow     // empty slice → section omitted
	Details    []inspectionDetail
	FooterName string
	Badge      []byte
}

type coverData struct {
	OrgName     string
	ClientName  string
	ProjectName string
	SiteAddress string
	ReportDate  time.Time
}

type summaryData struct {
	TotalMembers   int
	InspectedCount int
	InspectedPct   string
	Passed         int
	RepairRequired int
	OpenNCRs       int
}

type dftRow struct {
	MemberRef   string
	InspectedAt time.Time
	Average     *float64
	RequiredDFT *float64
	Verdict     string
}

type simSection struct {
	Label   string
	Members []simMemberRow
}

type simMemberRow struct {
	Reference string
	Stats     readingStats
}

type ncrRow struct {
	Reference   string
	MemberRef   string
	Status      string
	RaisedAt    time.Time
	ClosedAt    *time.Time
	Description string
}

type inspectionDetail struct {
	MemberRef        string
	InspectedAt      time.Time
	Location         string
	Status           string
	AmbientTemp      *float64
	SteelTemp        *float64
	DewPoint         *float64
	RelativeHumidity *float64
	SpreadKnown      bool
	Spread           float64
	SpreadConforms   bool
	HasBatch         bool
	BatchStats       readingStats
}

func buildReportPlan(data *reportData) (*reportPlan, error) {
	if data == nil || data.project == nil {
		return nil, fmt.Errorf("missing project data")
	}
	project := data.project
	orgName := ""
	if project.Organization != nil {
		orgName = project.Organization.Name
	}
	clientName := ""
	if project.Client != nil {
		clientName = project.Client.Name
	}

	plan := &reportPlan{
		Cover: coverData{
			OrgName:     orgName,
			ClientName:  clientName,
			ProjectName: project.Name,
			SiteAddress: project.SiteAddress,
			ReportDate:  project.ReportDate,
		},
		FooterName: orgName,
		Badge:      data.badge,
	}

	// Executive summary. A member counts as inspected once it has at least
	// one inspection; its compliance standing follows its latest one.
	latest := map[uuid.UUID]*types.Inspection{}
	for _, insp := range data.inspections {
		prev, ok := latest[insp.MemberID]
		if !ok || insp.InspectedAt.After(prev.InspectedAt) {
			latest[insp.MemberID] = insp
		}
	}
	passed := 0
	repair := 0
	for _, insp := range latest {
		switch insp.Status {
		case types.InspectionStatusPassed:
			passed++
		case types.InspectionStatusRepairRequired:
			repair++
		}
	}
	openNCRs := 0
	for _, n := range data.ncrs {
		if n.Status == types.NCRStatusOpen {
			openNCRs++
		}
	}
	total := len(data.members)
	inspected := len(latest)
	pct := "0.0%"
	if total > 0 {
		pct = fmt.Sprintf("%.1f%%", float64(inspected)/float64(total)*100)
	}
	plan.Summary = summaryData{
		TotalMembers:   total,
		InspectedCount: inspected,
		InspectedPct:   pct,
		Passed:         passed,
		RepairRequired: repair,
		OpenNCRs:       openNCRs,
	}

	// DFT summary: one row per inspection carrying a batch, in inspection
	// order (repos return inspections sorted by time then id).
	for _, insp := range data.inspections {
		if insp.DFTBatch == nil {
			continue
		}
		readings, err := decodeReadings(insp.DFTBatch.Readings)
		if err != nil {
			return nil, fmt.Errorf("decode DFT readings for inspection %s: %w", insp.ID, err)
		}
		var avg *float64
		if len(readings) > 0 {
			stats := computeReadingStats(readings)
			avg = &stats.Mean
		}
		var required *float64
		memberRef := ""
		if insp.Member != nil {
			required = insp.Member.RequiredDFT
			memberRef = insp.Member.Reference
		}
		plan.DFTRows = append(plan.DFTRows, dftRow{
			MemberRef:   memberRef,
			InspectedAt: insp.InspectedAt,
			Average:     avg,
			RequiredDFT: required,
			Verdict:     dftVerdict(avg, required),
		})
	}

	// Simulated datasets, only when present.
	for _, set := range data.simulated {
		section := simSection{Label: set.Label}
		for _, m := range set.Members {
			readings, err := decodeReadings(m.Readings)
			if err != nil {
				return nil, fmt.Errorf("decode simulated readings for member %s: %w", m.ID, err)
			}
			section.Members = append(section.Members, simMemberRow{
				Reference: m.Reference,
				Stats:     computeReadingStats(readings),
			})
		}
		plan.Simulated = append(plan.Simulated, section)
	}

	// NCR table, only when NCRs exist.
	for _, n := range data.ncrs {
		memberRef := ""
		if n.Member != nil {
			memberRef = n.Member.Reference
		}
		plan.NCRRows = append(plan.NCRRows, ncrRow{
			Reference:   n.Reference,
			MemberRef:   memberRef,
			Status:      n.Status,
			RaisedAt:    n.RaisedAt,
			ClosedAt:    n.ClosedAt,
			Description: n.Description,
		})
	}

	// Per-inspection detail pages.
	for _, insp := range data.inspections {
		detail := inspectionDetail{
			InspectedAt:      insp.InspectedAt,
			Location:         insp.Location,
			Status:           insp.Status,
			AmbientTemp:      insp.AmbientTemp,
			SteelTemp:        insp.SteelTemp,
			DewPoint:         insp.DewPoint,
			RelativeHumidity: insp.RelativeHumidity,
		}
		if insp.Member != nil {
			detail.MemberRef = insp.Member.Reference
		}
		detail.Spread, detail.SpreadConforms, detail.SpreadKnown = dewPointSpread(insp.SteelTemp, insp.DewPoint)
		if insp.DFTBatch != nil {
			readings, err := decodeReadings(insp.DFTBatch.Readings)
			if err != nil {
				return nil, fmt.Errorf("decode DFT readings for inspection %s: %w", insp.ID, err)
			}
			detail.HasBatch = true
			detail.BatchStats = computeReadingStats(readings)
		}
		plan.Details = append(plan.Details, detail)
	}

	return plan, nil
}
