package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"resumatch/resume-matcher/internal/errs"
	"resumatch/resume-matcher/internal/models"
	"resumatch/resume-matcher/internal/repositories"
)

const DefaultPageLimit = 5

type EvaluationService interface {
	Submit(ctx context.Context, resumePath, mediaType, jobDescription string) (*models.MatchResult, error)
	List(page, limit int) (*models.EvaluationPage, error)
	Delete(id uint) error
	Download(id uint) (path string, filename string, err error)
}

type evaluationService struct {
	evalRepo  repositories.EvaluationRepository
	extractor TextExtractor
	matcher   MatchClient
	storage   StorageService
}

func NewEvaluationService(
	evalRepo repositories.EvaluationRepository,
	extractor TextExtractor,
	matcher MatchClient,
	storage StorageService,
) EvaluationService {
	return &evaluationService{
		evalRepo:  evalRepo,
		extractor: extractor,
		matcher:   matcher,
		storage:   storage,
	}
}

// Submit runs the full pipeline for one uploaded resume: extract text, match
// it against the job description, persist the outcome next to the stored
// file. The stored file is kept on persistence failure so a successful match
// is not thrown away with it.
func (s *evaluationService) Submit(ctx context.Context, resumePath, mediaType, jobDescription string) (*models.MatchResult, error) {
	if resumePath == "" {
		return nil, fmt.Errorf("%w: resume file is required", errs.ErrValidation)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is required", errs.ErrValidation)
	}

	resumeText, err := s.extractor.ExtractText(resumePath, mediaType)
	if err != nil {
		return nil, err
	}

	req := BuildMatchRequest(resumeText, jobDescription)
	result, err := s.matcher.Match(ctx, req)
	if err != nil {
		return nil, err
	}

	suggestions, err := models.EncodeSuggestions(result.EditSuggestions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}

	eval := &models.Evaluation{
		CandidateName: result.CandidateName,
		JobTitle:      result.JobTitle,
		Score:         result.Score,
		Explanation:   result.Explanation,
		Suggestions:   suggestions,
		ResumePath:    &resumePath,
	}

	id, err := s.evalRepo.Save(eval)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}

	log.Printf("✅ Evaluation %d saved for %s (%s)\n", id, result.CandidateName, result.JobTitle)
	return result, nil
}

// List returns one page of evaluation history, most recent first. Page and
// limit fall back to sane defaults; a page past the end yields empty data.
func (s *evaluationService) List(page, limit int) (*models.EvaluationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	offset := (page - 1) * limit

	evals, err := s.evalRepo.List(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}

	total, err := s.evalRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}

	items := make([]models.EvaluationItem, 0, len(evals))
	for _, eval := range evals {
		suggestions, err := models.DecodeSuggestions(eval.Suggestions)
		if err != nil {
			return nil, fmt.Errorf("%w: evaluation %d: %v", errs.ErrPersistence, eval.ID, err)
		}

		items = append(items, models.EvaluationItem{
			ID:            eval.ID,
			CandidateName: eval.CandidateName,
			JobTitle:      eval.JobTitle,
			Score:         eval.Score,
			Explanation:   eval.Explanation,
			Suggestions:   suggestions,
			CreatedAt:     eval.CreatedAt,
		})
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.EvaluationPage{
		Data: items,
		Pagination: models.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}, nil
}

// Delete removes the backing file first (tolerating one already gone), then
// the row. Calling it again for the same id succeeds as a no-op.
func (s *evaluationService) Delete(id uint) error {
	eval, err := s.evalRepo.FindByID(id)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}

	if eval != nil && eval.ResumePath != nil && s.storage.Exists(*eval.ResumePath) {
		if err := s.storage.Remove(*eval.ResumePath); err != nil {
			log.Printf("⚠️  Failed to remove resume file for evaluation %d: %v\n", id, err)
		}
	}

	if err := s.evalRepo.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}

	return nil
}

// Download resolves the stored file for an evaluation. A missing record and
// a record whose file vanished out-of-band are distinct outcomes.
func (s *evaluationService) Download(id uint) (string, string, error) {
	eval, err := s.evalRepo.FindByID(id)
	if err != nil {
		return "", "", err
	}

	if eval.ResumePath == nil || *eval.ResumePath == "" {
		return "", "", fmt.Errorf("evaluation %d has no stored resume: %w", id, errs.ErrNotFound)
	}

	if !s.storage.Exists(*eval.ResumePath) {
		return "", "", fmt.Errorf("evaluation %d: %w", id, errs.ErrFileGone)
	}

	filename := fmt.Sprintf("resume_%s%s", sanitizeName(eval.CandidateName), filepath.Ext(*eval.ResumePath))
	return *eval.ResumePath, filename, nil
}

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

func sanitizeName(name string) string {
	clean := strings.Trim(nonAlphanumeric.ReplaceAllString(name, "_"), "_")
	if clean == "" {
		return "Unknown"
	}
	return clean
}
