package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

// mockCrawler implements driving.Crawler for testing.
type mockCrawler struct {
	summary   domain.Summary
	crawlErr  error
	refreshed []domain.Reference
	removed   []domain.Reference
}

func (m *mockCrawler) RunCrawl(_ context.Context) (domain.Summary, error) {
	return m.summary, m.crawlErr
}

func (m *mockCrawler) Refresh(_ context.Context, ref domain.Reference) error {
	m.refreshed = append(m.refreshed, ref)
	return nil
}

func (m *mockCrawler) Remove(_ context.Context, ref domain.Reference) error {
	m.removed = append(m.removed, ref)
	return nil
}

func setupCrawlerTest(mock *mockCrawler) func() {
	old := crawlerService
	crawlerService = mock
	return func() {
		crawlerService = old
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCrawlCmd_Use(t *testing.T) {
	assert.Equal(t, "crawl", crawlCmd.Use)
}

func TestCrawlCmd_PrintsSummary(t *testing.T) {
	mock := &mockCrawler{summary: domain.Summary{
		domain.KindProject: 2,
		domain.KindTask:    17,
	}}
	cleanup := setupCrawlerTest(mock)
	defer cleanup()

	out, err := execute(t, "crawl")
	require.NoError(t, err)

	assert.Contains(t, out, "19 records materialised")
	assert.Contains(t, out, "project")
	assert.Contains(t, out, "17")
}

func TestCrawlCmd_EmptySummary(t *testing.T) {
	cleanup := setupCrawlerTest(&mockCrawler{summary: domain.Summary{}})
	defer cleanup()

	out, err := execute(t, "crawl")
	require.NoError(t, err)
	assert.Contains(t, out, "No new records")
}

func TestCrawlCmd_Error(t *testing.T) {
	cleanup := setupCrawlerTest(&mockCrawler{crawlErr: errors.New("upstream down")})
	defer cleanup()

	_, err := execute(t, "crawl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestRefreshCmd_ParsesReference(t *testing.T) {
	mock := &mockCrawler{}
	cleanup := setupCrawlerTest(mock)
	defer cleanup()

	out, err := execute(t, "refresh", "task", "1234")
	require.NoError(t, err)

	require.Len(t, mock.refreshed, 1)
	assert.Equal(t, domain.Reference{ID: "1234", Kind: domain.KindTask}, mock.refreshed[0])
	assert.Contains(t, out, "Refreshed task 1234")
}

func TestRefreshCmd_RejectsUnknownKind(t *testing.T) {
	cleanup := setupCrawlerTest(&mockCrawler{})
	defer cleanup()

	_, err := execute(t, "refresh", "portfolio", "1234")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveCmd(t *testing.T) {
	mock := &mockCrawler{}
	cleanup := setupCrawlerTest(mock)
	defer cleanup()

	out, err := execute(t, "remove", "project", "99")
	require.NoError(t, err)

	require.Len(t, mock.removed, 1)
	assert.Equal(t, domain.Reference{ID: "99", Kind: domain.KindProject}, mock.removed[0])
	assert.Contains(t, out, "Removed project 99")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "workmirror version")
}
