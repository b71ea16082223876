package analysis

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"testing"

	"github.com/bennypn/ai-kop-indosat/model"
	"github.com/bennypn/ai-kop-indosat/service/inference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailText = "Installed 2024-01-01 Pole Name ABC123 Pole Height 9m Remark OK"

// singleGroupRegions is a page with one group containing a pole, a 10x10
// timestamp crop and a 90x20 detail crop.
func singleGroupRegions() []inference.Region {
	return []inference.Region{
		{Label: "group", Box: box(0, 0, 100, 100), Confidence: 0.95},
		{Label: "pole", Box: box(5, 5, 15, 15), Confidence: 0.9},
		{Label: "timestamp", Box: box(20, 20, 30, 30), Confidence: 0.85},
		{Label: "detail", Box: box(5, 40, 95, 60), Confidence: 0.88},
	}
}

func singleGroupExtractor() *fakeExtractor {
	return &fakeExtractor{bySize: map[string]string{
		"10x10": "2024-01-01",
		"90x20": detailText,
	}}
}

func newTestPDF(t *testing.T, repo *memRepo, totalPage int) model.PDF {
	t.Helper()
	pdf := model.PDF{
		PDFName:   "inspection",
		TotalPage: totalPage,
		Status:    model.StatusInProcess,
		Hash:      fmt.Sprintf("hash-%d", totalPage),
	}
	require.NoError(t, repo.CreatePDF(&pdf))
	return pdf
}

func TestAnalyzePDFSingleGroup(t *testing.T) {
	repo := newMemRepo()
	detector := &fakeDetector{byWidth: map[int][]inference.Region{120: singleGroupRegions()}}
	renderer := &fakeRenderer{pages: map[int]image.Image{1: testImage(120, 120)}}

	analyzer := NewAnalyzer(repo, detector, singleGroupExtractor(), renderer, nil)
	pdf := newTestPDF(t, repo, 1)

	require.NoError(t, analyzer.AnalyzePDF(context.Background(), pdf, nil))

	stored, err := repo.GetPDFByID(pdf.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, stored.Status)

	pages, err := repo.GetPDFPages(pdf.ID)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Page)
	assert.Equal(t, "inspection_page01.png", pages[0].PageName)

	pa, err := repo.GetPageAnalysis(pages[0].ID)
	require.NoError(t, err)
	require.NotNil(t, pa)

	groups, err := repo.GetGroupAnalyses(pa.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, 1, g.GroupID)
	assert.True(t, g.HasPole)
	assert.True(t, g.HasTimestamp)
	assert.True(t, g.HasDetail)
	assert.Greater(t, g.Similarity, 0.2)
	assert.True(t, g.GroupValid)
	assert.Equal(t, "2024-01-01", g.Timestamp)
	assert.Equal(t, detailText, g.Detail)
	assert.Equal(t, "ABC123", g.PoleName)
	assert.Equal(t, "OK", g.Remark)

	// Single group: the page average is that group's similarity.
	assert.Equal(t, math.Round(g.Similarity*100)/100, pa.AvgSimilarity)
	assert.Equal(t, pa.AvgSimilarity > 0.2, pa.PageValid)
}

func TestAnalyzePDFNoGroups(t *testing.T) {
	repo := newMemRepo()
	detector := &fakeDetector{byWidth: map[int][]inference.Region{
		120: {{Label: "pole", Box: box(5, 5, 15, 15)}},
	}}
	renderer := &fakeRenderer{pages: map[int]image.Image{1: testImage(120, 120)}}

	analyzer := NewAnalyzer(repo, detector, &fakeExtractor{}, renderer, nil)
	pdf := newTestPDF(t, repo, 1)

	require.NoError(t, analyzer.AnalyzePDF(context.Background(), pdf, nil))

	pages, _ := repo.GetPDFPages(pdf.ID)
	require.Len(t, pages, 1)

	pa, err := repo.GetPageAnalysis(pages[0].ID)
	require.NoError(t, err)
	require.NotNil(t, pa)
	assert.Equal(t, 0.0, pa.AvgSimilarity)
	assert.False(t, pa.PageValid)

	groups, _ := repo.GetGroupAnalyses(pa.ID)
	assert.Empty(t, groups)
}

func TestAnalyzePDFIdempotent(t *testing.T) {
	repo := newMemRepo()
	detector := &fakeDetector{byWidth: map[int][]inference.Region{120: singleGroupRegions()}}
	renderer := &fakeRenderer{pages: map[int]image.Image{1: testImage(120, 120)}}

	analyzer := NewAnalyzer(repo, detector, singleGroupExtractor(), renderer, nil)
	pdf := newTestPDF(t, repo, 1)

	require.NoError(t, analyzer.AnalyzePDF(context.Background(), pdf, nil))
	pageCreates, groupCreates := repo.pageCreates, repo.groupCreates

	// Second run recomputes but persists nothing new.
	require.NoError(t, analyzer.AnalyzePDF(context.Background(), pdf, nil))

	assert.Equal(t, pageCreates, repo.pageCreates)
	assert.Equal(t, groupCreates, repo.groupCreates)
	assert.Len(t, repo.analyses, 1)
	assert.Len(t, repo.groups, 1)
}

func TestAnalyzePDFResumesAfterFailure(t *testing.T) {
	repo := newMemRepo()
	renderer := &fakeRenderer{pages: map[int]image.Image{
		1: testImage(120, 120),
		2: testImage(200, 200),
	}}
	failing := &fakeDetector{
		byWidth: map[int][]inference.Region{120: singleGroupRegions()},
		errOn:   map[int]error{200: errors.New("model crashed")},
	}

	analyzer := NewAnalyzer(repo, failing, singleGroupExtractor(), renderer, nil)
	pdf := newTestPDF(t, repo, 2)

	err := analyzer.AnalyzePDF(context.Background(), pdf, nil)
	require.Error(t, err)

	stored, _ := repo.GetPDFByID(pdf.ID)
	assert.Equal(t, model.StatusFailed, stored.Status)

	// First page's committed results survive the failure.
	pages, _ := repo.GetPDFPages(pdf.ID)
	require.Len(t, pages, 1)
	firstGroupCreates := repo.groupCreates

	// Re-run with a healthy detector: only the missing page is persisted.
	working := &fakeDetector{byWidth: map[int][]inference.Region{
		120: singleGroupRegions(),
		200: {{Label: "group", Box: box(0, 0, 150, 150)}},
	}}
	analyzer = NewAnalyzer(repo, working, singleGroupExtractor(), renderer, nil)

	require.NoError(t, analyzer.AnalyzePDF(context.Background(), *stored, nil))

	stored, _ = repo.GetPDFByID(pdf.ID)
	assert.Equal(t, model.StatusCompleted, stored.Status)

	pages, _ = repo.GetPDFPages(pdf.ID)
	assert.Len(t, pages, 2)

	// Page 1's group was not re-inserted; page 2 added exactly one.
	assert.Equal(t, firstGroupCreates+1, repo.groupCreates)
	assert.Len(t, repo.analyses, 2)
}

func TestAnalyzePDFUploadsPages(t *testing.T) {
	repo := newMemRepo()
	detector := &fakeDetector{byWidth: map[int][]inference.Region{120: singleGroupRegions()}}
	renderer := &fakeRenderer{pages: map[int]image.Image{1: testImage(120, 120)}}
	blobs := &fakeBlobs{}

	analyzer := NewAnalyzer(repo, detector, singleGroupExtractor(), renderer, blobs)
	pdf := newTestPDF(t, repo, 1)

	require.NoError(t, analyzer.AnalyzePDF(context.Background(), pdf, nil))

	pages, _ := repo.GetPDFPages(pdf.ID)
	require.Len(t, pages, 1)
	assert.Equal(t, fmt.Sprintf("https://cdn.test/pages/%d/inspection_page01.png", pdf.ID), pages[0].URL)
}
