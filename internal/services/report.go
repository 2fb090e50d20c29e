package services

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/repos"
)

type ComposedReport struct {
	Bytes     []byte
	PageCount int
	Filename  string
}

type ReportService interface {
	ComposeReport(ctx context.Context, projectID uuid.UUID) (*ComposedReport, error)
}

type reportService struct {
	log             *logger.Logger
	projectRepo     repos.ProjectRepo
	memberRepo      repos.MemberRepo
	inspectionRepo  repos.InspectionRepo
	ncrRepo         repos.NCRRepo
	simulatedRepo   repos.SimulatedSetRepo
	brandingService BrandingService
	standards       []StandardsSection
}

func NewReportService(
	log *logger.Logger,
	projectRepo repos.ProjectRepo,
	memberRepo repos.MemberRepo,
	inspectionRepo repos.InspectionRepo,
	ncrRepo repos.NCRRepo,
	simulatedRepo repos.SimulatedSetRepo,
	brandingService BrandingService,
) ReportService {
	serviceLog := log.With("service", "ReportService")

	standards := defaultStandardsSections()
	if path := strings.TrimSpace(os.Getenv("REPORT_STANDARDS_PATH")); path != "" {
		loaded, err := loadStandardsSections(path)
		if err != nil {
			serviceLog.Warn("could not load standards sections, using defaults", "path", path, "error", err)
		} else {
			standards = loaded
		}
	}

	return &reportService{
		log:             serviceLog,
		projectRepo:     projectRepo,
		memberRepo:      memberRepo,
		inspectionRepo:  inspectionRepo,
		ncrRepo:         ncrRepo,
		simulatedRepo:   simulatedRepo,
		brandingService: brandingService,
		standards:       standards,
	}
}

// ComposeReport gathers the project's records once, builds the deterministic
// page plan and renders it. Any missing upstream record fails the whole
// report; no partial report is returned.
func (s *reportService) ComposeReport(ctx context.Context, projectID uuid.UUID) (*ComposedReport, error) {
	data, err := s.gather(ctx, projectID)
	if err != nil {
		return nil, err
	}

	plan, err := buildReportPlan(data)
	if err != nil {
		return nil, &DataUnavailableError{What: "report plan", Err: err}
	}
	plan.Standards = s.standards

	rendered, pageCount, err := renderReport(plan)
	if err != nil {
		return nil, err
	}

	orgPrefix := ""
	if data.project.Organization != nil {
		orgPrefix = data.project.Organization.Prefix
	}
	s.log.Info("report composed",
		"project_id", projectID,
		"pages", pageCount,
		"bytes", len(rendered),
	)
	return &ComposedReport{
		Bytes:     rendered,
		PageCount: pageCount,
		Filename:  ReportFilename(orgPrefix, data.project.Name, data.project.ReportDate),
	}, nil
}

// gather loads the project first (branding needs its org and client), then
// fans out over the remaining record sets. The reads are disjoint, so they
// run concurrently.
func (s *reportService) gather(ctx context.Context, projectID uuid.UUID) (*reportData, error) {
	project, err := s.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &DataUnavailableError{What: "project " + projectID.String(), Err: err}
		}
		return nil, &DataUnavailableError{What: "project", Err: err}
	}

	data := &reportData{project: project}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		members, err := s.memberRepo.GetByProjectID(gctx, nil, projectID)
		if err != nil {
			return &DataUnavailableError{What: "member register", Err: err}
		}
		data.members = members
		return nil
	})
	g.Go(func() error {
		inspections, err := s.inspectionRepo.GetByProjectID(gctx, nil, projectID)
		if err != nil {
			return &DataUnavailableError{What: "inspections", Err: err}
		}
		data.inspections = inspections
		return nil
	})
	g.Go(func() error {
		ncrs, err := s.ncrRepo.GetByProjectID(gctx, nil, projectID)
		if err != nil {
			return &DataUnavailableError{What: "NCR register", Err: err}
		}
		data.ncrs = ncrs
		return nil
	})
	g.Go(func() error {
		sets, err := s.simulatedRepo.GetByProjectID(gctx, nil, projectID)
		if err != nil {
			return &DataUnavailableError{What: "simulated datasets", Err: err}
		}
		data.simulated = sets
		return nil
	})
	g.Go(func() error {
		badge, err := s.brandingService.RenderCoverBadge(gctx, project.Organization, project.Client)
		if err != nil {
			// Branding is cosmetic; the report still renders without it.
			s.log.Warn("cover badge unavailable", "project_id", projectID, "error", err)
			return nil
		}
		data.badge = badge
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
