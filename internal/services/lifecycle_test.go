package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"resumatch/resume-matcher/internal/config"
	"resumatch/resume-matcher/internal/errs"
	"resumatch/resume-matcher/internal/models"
	"resumatch/resume-matcher/internal/repositories"
)

type stubMatcher struct {
	result *models.MatchResult
	err    error
	calls  int
}

func (s *stubMatcher) Match(ctx context.Context, req CompletionRequest) (*models.MatchResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func goodMatch() *models.MatchResult {
	return &models.MatchResult{
		Score:           82,
		Explanation:     "Strong overlap on Go and distributed systems.",
		EditSuggestions: []string{"Quantify impact", "Mention Kubernetes"},
		CandidateName:   "Jane Doe",
		JobTitle:        "Senior Go Engineer",
	}
}

type lifecycleFixture struct {
	svc     EvaluationService
	repo    repositories.EvaluationRepository
	matcher *stubMatcher
	dir     string
}

func newLifecycleFixture(t *testing.T, matcher *stubMatcher) *lifecycleFixture {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Server:   config.ServerConfig{Env: "test"},
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "test.db")},
	}

	db, err := config.InitDatabase(cfg)
	require.NoError(t, err)

	repo := repositories.NewEvaluationRepository(db)
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDir())

	return &lifecycleFixture{
		svc:     NewEvaluationService(repo, NewTextExtractor(), matcher, storage),
		repo:    repo,
		matcher: matcher,
		dir:     dir,
	}
}

func (f *lifecycleFixture) writeResume(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSubmitHappyPath(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})
	resumePath := f.writeResume(t, "resume.txt", "Experienced backend engineer, 5 years Go and distributed systems")

	result, err := f.svc.Submit(context.Background(), resumePath, "text/plain", "Looking for a senior Go engineer")
	require.NoError(t, err)

	// Structural assertions on the payload
	require.GreaterOrEqual(t, result.Score, 0)
	require.LessOrEqual(t, result.Score, 100)
	require.NotEmpty(t, result.Explanation)
	require.NotEmpty(t, result.CandidateName)
	require.NotEmpty(t, result.JobTitle)
	require.GreaterOrEqual(t, len(result.EditSuggestions), 2)
	require.LessOrEqual(t, len(result.EditSuggestions), 3)

	// The row is persisted with the stored file path and suggestions intact
	count, err := f.repo.Count()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	rows, err := f.repo.List(1, 0)
	require.NoError(t, err)
	require.NotNil(t, rows[0].ResumePath)
	require.Equal(t, resumePath, *rows[0].ResumePath)

	suggestions, err := models.DecodeSuggestions(rows[0].Suggestions)
	require.NoError(t, err)
	require.Equal(t, result.EditSuggestions, suggestions)
}

func TestSubmitMissingFile(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})

	_, err := f.svc.Submit(context.Background(), "", "text/plain", "some job description")
	require.True(t, errors.Is(err, errs.ErrValidation))

	// No row inserted, no model call made
	count, err := f.repo.Count()
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
	require.Zero(t, f.matcher.calls)
}

func TestSubmitEmptyJobDescription(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})
	resumePath := f.writeResume(t, "resume.txt", "resume text")

	_, err := f.svc.Submit(context.Background(), resumePath, "text/plain", "   ")
	require.True(t, errors.Is(err, errs.ErrValidation))
	require.Zero(t, f.matcher.calls)
}

func TestSubmitPropagatesMatchErrorWithoutPersisting(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{err: errs.ErrModelContract})
	resumePath := f.writeResume(t, "resume.txt", "resume text")

	_, err := f.svc.Submit(context.Background(), resumePath, "text/plain", "jd")
	require.True(t, errors.Is(err, errs.ErrModelContract))

	count, err := f.repo.Count()
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	// The uploaded file is deliberately kept on failure
	_, statErr := os.Stat(resumePath)
	require.NoError(t, statErr)
}

func submitOne(t *testing.T, f *lifecycleFixture, name string) (uint, string) {
	t.Helper()
	resumePath := f.writeResume(t, name, "resume text")
	_, err := f.svc.Submit(context.Background(), resumePath, "text/plain", "jd")
	require.NoError(t, err)

	rows, err := f.repo.List(1, 0)
	require.NoError(t, err)
	return rows[0].ID, resumePath
}

func TestDeleteRemovesRowAndFile(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})
	id, resumePath := submitOne(t, f, "resume.txt")

	require.NoError(t, f.svc.Delete(id))

	_, err := f.repo.FindByID(id)
	require.True(t, errors.Is(err, errs.ErrNotFound))

	_, statErr := os.Stat(resumePath)
	require.True(t, os.IsNotExist(statErr))
}

func TestDeleteIsIdempotent(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})
	id, _ := submitOne(t, f, "resume.txt")

	require.NoError(t, f.svc.Delete(id))
	require.NoError(t, f.svc.Delete(id))
}

func TestDeleteToleratesFileRemovedOutOfBand(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})
	id, resumePath := submitOne(t, f, "resume.txt")

	require.NoError(t, os.Remove(resumePath))

	require.NoError(t, f.svc.Delete(id))

	_, err := f.repo.FindByID(id)
	require.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestDownloadHappyPath(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})
	id, resumePath := submitOne(t, f, "resume.pdf")

	path, filename, err := f.svc.Download(id)
	require.NoError(t, err)
	require.Equal(t, resumePath, path)
	require.Equal(t, "resume_Jane_Doe.pdf", filename)
}

func TestDownloadMissingRecord(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})

	_, _, err := f.svc.Download(999)
	require.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestDownloadFileGone(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})
	id, resumePath := submitOne(t, f, "resume.txt")

	require.NoError(t, os.Remove(resumePath))

	_, _, err := f.svc.Download(id)
	require.True(t, errors.Is(err, errs.ErrFileGone))
	require.False(t, errors.Is(err, errs.ErrNotFound))
}

func TestDownloadLegacyRowWithoutPath(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})

	id, err := f.repo.Save(&models.Evaluation{
		CandidateName: "Legacy",
		JobTitle:      "Position",
		Score:         50,
		Explanation:   "pre-column row",
		Suggestions:   `[]`,
	})
	require.NoError(t, err)

	_, _, downloadErr := f.svc.Download(id)
	require.True(t, errors.Is(downloadErr, errs.ErrNotFound))
}

func TestListPagination(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})
	for i := 0; i < 7; i++ {
		_, err := f.repo.Save(&models.Evaluation{
			CandidateName: "Candidate",
			JobTitle:      "Role",
			Score:         i * 10,
			Explanation:   "e",
			Suggestions:   `["a"]`,
		})
		require.NoError(t, err)
	}

	page, err := f.svc.List(1, 3)
	require.NoError(t, err)
	require.Len(t, page.Data, 3)
	require.EqualValues(t, 7, page.Pagination.Total)
	require.Equal(t, 3, page.Pagination.TotalPages)

	last, err := f.svc.List(3, 3)
	require.NoError(t, err)
	require.Len(t, last.Data, 1)

	// Past the end: empty data, not an error
	beyond, err := f.svc.List(5, 3)
	require.NoError(t, err)
	require.Empty(t, beyond.Data)
	require.Equal(t, 3, beyond.Pagination.TotalPages)
}

func TestListDefaults(t *testing.T) {
	f := newLifecycleFixture(t, &stubMatcher{result: goodMatch()})

	page, err := f.svc.List(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, page.Pagination.Page)
	require.Equal(t, DefaultPageLimit, page.Pagination.Limit)
	require.Equal(t, 0, page.Pagination.TotalPages)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces", "Jane Doe", "Jane_Doe"},
		{"punctuation", "O'Brien, Pat", "O_Brien_Pat"},
		{"already clean", "Alice", "Alice"},
		{"only symbols", "!!!", "Unknown"},
		{"empty", "", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sanitizeName(tt.in))
		})
	}
}
