package services

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/clients/gcp"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/repos"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/utils"
)

// defaultMergePrefetchLimit bounds concurrent artifact downloads during
// merge; override with MERGE_PREFETCH_LIMIT.
const defaultMergePrefetchLimit = 4

type MergedPack struct {
	Bytes    []byte
	Filename string
}

// MergeService assembles the audit pack: the composed report followed by,
// for each active attachment in sequence order, its divider page and its
// pages. A single failure abandons the whole merge; no partial pack is ever
// returned.
type MergeService interface {
	MergePack(ctx context.Context, projectID uuid.UUID) (*MergedPack, error)
}

type mergeService struct {
	log               *logger.Logger
	projectRepo       repos.ProjectRepo
	reportService     ReportService
	attachmentService AttachmentService
	dividerService    DividerService
	bucketService     gcp.BucketService
	pdfConf           *model.Configuration
	prefetchLimit     int
}

func NewMergeService(
	log *logger.Logger,
	projectRepo repos.ProjectRepo,
	reportService ReportService,
	attachmentService AttachmentService,
	dividerService DividerService,
	bucketService gcp.BucketService,
) MergeService {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	prefetchLimit := utils.GetEnvAsInt("MERGE_PREFETCH_LIMIT", defaultMergePrefetchLimit, log)
	if prefetchLimit < 1 {
		prefetchLimit = 1
	}
	return &mergeService{
		log:               log.With("service", "MergeService"),
		projectRepo:       projectRepo,
		reportService:     reportService,
		attachmentService: attachmentService,
		dividerService:    dividerService,
		bucketService:     bucketService,
		pdfConf:           conf,
		prefetchLimit:     prefetchLimit,
	}
}

func (s *mergeService) MergePack(ctx context.Context, projectID uuid.UUID) (*MergedPack, error) {
	project, err := s.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		return nil, &DataUnavailableError{What: "project " + projectID.String(), Err: err}
	}

	// Composing.
	report, err := s.reportService.ComposeReport(ctx, projectID)
	if err != nil {
		return nil, err
	}

	attachments, err := s.attachmentService.ListActiveOrdered(ctx, projectID)
	if err != nil {
		return nil, &DataUnavailableError{What: "attachment list", Err: err}
	}

	// Iterating. Artifact binaries are prefetched concurrently as an
	// optimization, but results land in position-indexed slots so pack
	// assembly below stays strictly in sequence order. The first failure
	// cancels the group and aborts the merge.
	binaries := make([][]byte, len(attachments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.prefetchLimit)
	for i, attachment := range attachments {
		g.Go(func() error {
			key, err := s.attachmentService.EnsureConverted(gctx, attachment)
			if err != nil {
				return &MergeAbortedError{DisplayName: attachment.Title(), Stage: "convert", Err: err}
			}
			raw, err := s.bucketService.DownloadBytes(gctx, gcp.BucketCategoryAttachment, key)
			if err != nil {
				return &MergeAbortedError{
					DisplayName: attachment.Title(),
					Stage:       "download",
					Err:         &BinaryUnavailableError{Filename: attachment.OriginalName, Err: err},
				}
			}
			binaries[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("merge aborted", "project_id", projectID, "error", err)
		return nil, err
	}

	pctx := PackContext{ProjectName: project.Name, SiteAddress: project.SiteAddress}
	if project.Client != nil {
		pctx.ClientName = project.Client.Name
	}

	segments := make([]io.ReadSeeker, 0, 1+2*len(attachments))
	segments = append(segments, bytes.NewReader(report.Bytes))
	for i, attachment := range attachments {
		divider, err := s.dividerService.BuildDividerPage(i+1, attachment, pctx)
		if err != nil {
			return nil, &MergeAbortedError{DisplayName: attachment.Title(), Stage: "divider", Err: err}
		}
		segments = append(segments, bytes.NewReader(divider), bytes.NewReader(binaries[i]))
	}

	// Finalizing.
	var out bytes.Buffer
	if err := api.MergeRaw(segments, &out, false, s.pdfConf); err != nil {
		return nil, &MergeAbortedError{DisplayName: project.Name, Stage: "finalize", Err: err}
	}

	orgPrefix := ""
	if project.Organization != nil {
		orgPrefix = project.Organization.Prefix
	}
	pack := &MergedPack{
		Bytes:    out.Bytes(),
		Filename: PackFilename(orgPrefix, project.Name, time.Now().UTC()),
	}
	s.log.Info("audit pack merged",
		"project_id", projectID,
		"attachments", len(attachments),
		"report_pages", report.PageCount,
		"bytes", len(pack.Bytes),
	)
	return pack, nil
}
