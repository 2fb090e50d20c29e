package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/clients/gcp"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/repos"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

// addSequenceAttempts bounds retries when a racing upload claims the same
// sequence number first.
const addSequenceAttempts = 3

type AddAttachmentInput struct {
	ProjectID    uuid.UUID
	OriginalName string
	MimeType     string
	Raw          []byte
	UploadedBy   uuid.UUID
	UploaderName string
}

// AttachmentService owns the ordered, active set of attachment descriptors
// the merge engine consumes. Every mutation runs in one transaction; reorder
// swaps take row locks so concurrent reorders on a project serialize instead
// of losing updates.
type AttachmentService interface {
	Add(ctx context.Context, input AddAttachmentInput) (*types.Attachment, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	MoveUp(ctx context.Context, id uuid.UUID) ([]*types.Attachment, error)
	MoveDown(ctx context.Context, id uuid.UUID) ([]*types.Attachment, error)
	UpdateMetadata(ctx context.Context, id uuid.UUID, title, category *string) (*types.Attachment, error)
	ListActiveOrdered(ctx context.Context, projectID uuid.UUID) ([]*types.Attachment, error)
	EnsureConverted(ctx context.Context, attachment *types.Attachment) (string, error)
}

type attachmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	attachmentRepo repos.AttachmentRepo
	bucketService  gcp.BucketService
	normalizer     NormalizerService
}

func NewAttachmentService(
	db *gorm.DB,
	log *logger.Logger,
	attachmentRepo repos.AttachmentRepo,
	bucketService gcp.BucketService,
	normalizer NormalizerService,
) AttachmentService {
	return &attachmentService{
		db:             db,
		log:            log.With("service", "AttachmentService"),
		attachmentRepo: attachmentRepo,
		bucketService:  bucketService,
		normalizer:     normalizer,
	}
}

// SourceTypeForMime infers the attachment source type from the upload's
// content type. Anything that is not an image is treated as a PDF and must
// declare the PDF content type.
func SourceTypeForMime(mimeType string) (string, error) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mt, "image/"):
		return types.AttachmentSourceImage, nil
	case mt == "application/pdf":
		return types.AttachmentSourcePDF, nil
	default:
		return "", fmt.Errorf("unsupported attachment content type %q", mimeType)
	}
}

func (s *attachmentService) Add(ctx context.Context, input AddAttachmentInput) (*types.Attachment, error) {
	sourceType, err := SourceTypeForMime(input.MimeType)
	if err != nil {
		return nil, err
	}

	attachmentID := uuid.New()
	storageKey := fmt.Sprintf("attachments/%s/%s/%d_%s",
		input.ProjectID, attachmentID, time.Now().UnixNano(), input.OriginalName)
	if err := s.bucketService.UploadFile(ctx, gcp.BucketCategoryAttachment, storageKey, bytes.NewReader(input.Raw)); err != nil {
		return nil, fmt.Errorf("store attachment binary: %w", err)
	}

	conversionState := types.ConversionNone
	if sourceType == types.AttachmentSourceImage {
		conversionState = types.ConversionPending
	}

	attachment := &types.Attachment{
		ID:              attachmentID,
		ProjectID:       input.ProjectID,
		SourceType:      sourceType,
		MimeType:        input.MimeType,
		OriginalName:    input.OriginalName,
		StorageKey:      storageKey,
		ConversionState: conversionState,
		IsActive:        true,
		UploadedBy:      input.UploadedBy,
		UploaderName:    input.UploaderName,
		UploadedAt:      time.Now().UTC(),
	}

	// Sequence assignment takes the same row locks as reorders so
	// concurrent uploads to one project serialize. Uploads that race past
	// an empty (unlockable) active set hit the partial unique index on
	// (project_id, sequence_number); the loser retries with a fresh number.
	for attempt := 0; attempt < addSequenceAttempts; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			active, err := s.attachmentRepo.GetActiveByProjectIDForUpdate(ctx, tx, input.ProjectID)
			if err != nil {
				return err
			}
			next := 1
			if n := len(active); n > 0 {
				next = active[n-1].SequenceNumber + 1
			}
			attachment.SequenceNumber = next
			_, err = s.attachmentRepo.Create(ctx, tx, attachment)
			return err
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	// Convert images eagerly, but a failed conversion never fails the
	// upload itself; the merge step retries and aborts if still broken.
	if sourceType == types.AttachmentSourceImage {
		if _, err := s.convertAndStore(ctx, attachment, input.Raw); err != nil {
			s.log.Warn("eager image conversion failed",
				"attachment_id", attachment.ID,
				"file", attachment.OriginalName,
				"error", err,
			)
		}
	}
	return attachment, nil
}

// convertAndStore normalizes an image attachment, persists the derived
// artifact and records the resulting conversion state.
func (s *attachmentService) convertAndStore(ctx context.Context, attachment *types.Attachment, raw []byte) (string, error) {
	converted, size, err := s.normalizer.NormalizeImage(raw, attachment.OriginalName)
	if err != nil {
		if dbErr := s.attachmentRepo.SetConversion(ctx, nil, attachment.ID, types.ConversionFailed, nil); dbErr != nil {
			s.log.Error("could not record failed conversion", "attachment_id", attachment.ID, "error", dbErr)
		}
		attachment.ConversionState = types.ConversionFailed
		return "", err
	}

	convertedKey := fmt.Sprintf("attachments/%s/%s/converted_%d.pdf",
		attachment.ProjectID, attachment.ID, time.Now().UnixNano())
	if err := s.bucketService.UploadFile(ctx, gcp.BucketCategoryAttachment, convertedKey, bytes.NewReader(converted)); err != nil {
		return "", fmt.Errorf("store converted artifact: %w", err)
	}
	if err := s.attachmentRepo.SetConversion(ctx, nil, attachment.ID, types.ConversionReady, &convertedKey); err != nil {
		return "", err
	}
	attachment.ConvertedKey = &convertedKey
	attachment.ConversionState = types.ConversionReady
	s.log.Debug("image attachment converted",
		"attachment_id", attachment.ID,
		"converted_key", convertedKey,
		"bytes", size,
	)
	return convertedKey, nil
}

// EnsureConverted resolves the derived single-page PDF for an image
// attachment, converting on demand when the eager pass failed or never ran.
func (s *attachmentService) EnsureConverted(ctx context.Context, attachment *types.Attachment) (string, error) {
	if attachment.SourceType != types.AttachmentSourceImage {
		return attachment.StorageKey, nil
	}
	if attachment.ConversionState == types.ConversionReady && attachment.ConvertedKey != nil {
		return *attachment.ConvertedKey, nil
	}
	raw, err := s.bucketService.DownloadBytes(ctx, gcp.BucketCategoryAttachment, attachment.StorageKey)
	if err != nil {
		return "", &BinaryUnavailableError{Filename: attachment.OriginalName, Err: err}
	}
	return s.convertAndStore(ctx, attachment, raw)
}

func (s *attachmentService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.attachmentRepo.GetByID(ctx, tx, id); err != nil {
			return err
		}
		return s.attachmentRepo.Deactivate(ctx, tx, id)
	})
}

func (s *attachmentService) MoveUp(ctx context.Context, id uuid.UUID) ([]*types.Attachment, error) {
	return s.move(ctx, id, -1)
}

func (s *attachmentService) MoveDown(ctx context.Context, id uuid.UUID) ([]*types.Attachment, error) {
	return s.move(ctx, id, +1)
}

// move swaps sequence numbers with the adjacent active attachment in the
// current sort order. Boundary moves are no-ops that return the unchanged
// list.
func (s *attachmentService) move(ctx context.Context, id uuid.UUID, direction int) ([]*types.Attachment, error) {
	var out []*types.Attachment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attachment, err := s.attachmentRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if !attachment.IsActive {
			return fmt.Errorf("attachment %s is not active", id)
		}
		list, err := s.attachmentRepo.GetActiveByProjectIDForUpdate(ctx, tx, attachment.ProjectID)
		if err != nil {
			return err
		}
		idx := -1
		for i, a := range list {
			if a.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("attachment %s not in active set", id)
		}
		j := idx + direction
		if j < 0 || j >= len(list) {
			out = list
			return nil
		}
		a, b := list[idx], list[j]
		if err := s.attachmentRepo.SetSequence(ctx, tx, a.ID, b.SequenceNumber); err != nil {
			return err
		}
		if err := s.attachmentRepo.SetSequence(ctx, tx, b.ID, a.SequenceNumber); err != nil {
			return err
		}
		a.SequenceNumber, b.SequenceNumber = b.SequenceNumber, a.SequenceNumber
		list[idx], list[j] = b, a
		out = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *attachmentService) UpdateMetadata(ctx context.Context, id uuid.UUID, title, category *string) (*types.Attachment, error) {
	fields := map[string]interface{}{}
	if title != nil {
		if trimmed := strings.TrimSpace(*title); trimmed == "" {
			fields["display_title"] = nil
		} else {
			fields["display_title"] = trimmed
		}
	}
	if category != nil {
		if trimmed := strings.TrimSpace(*category); trimmed == "" {
			fields["appendix_category"] = nil
		} else {
			fields["appendix_category"] = trimmed
		}
	}

	var updated *types.Attachment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.attachmentRepo.UpdateMetadata(ctx, tx, id, fields); err != nil {
			return err
		}
		att, err := s.attachmentRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = att
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *attachmentService) ListActiveOrdered(ctx context.Context, projectID uuid.UUID) ([]*types.Attachment, error) {
	return s.attachmentRepo.GetActiveByProjectID(ctx, nil, projectID)
}
