package analysis

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/bennypn/ai-kop-indosat/model"
	"github.com/bennypn/ai-kop-indosat/utils"
	"github.com/disintegration/imaging"
)

type groupResult struct {
	correlation GroupCorrelation
	timestamp   string
	detail      string
	similarity  float64
	valid       bool
}

// analyzePage runs the per-page pipeline: persist (or reuse) the rendered
// page, detect regions, correlate and score each group, then commit the
// analysis rows. Nothing is written for the page's analysis until the whole
// computation has succeeded.
func (a *Analyzer) analyzePage(ctx context.Context, pdf *model.PDF, pageNum int, img image.Image) error {
	encoded, err := utils.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("failed to encode page image: %v", err)
	}

	page, err := a.ensurePage(ctx, pdf, pageNum, encoded)
	if err != nil {
		return err
	}

	regions, err := a.detector.Detect(ctx, img)
	if err != nil {
		return fmt.Errorf("detection failed: %v", err)
	}

	results, err := a.scoreGroups(ctx, img, CorrelateGroups(regions))
	if err != nil {
		return err
	}

	similarities := make([]float64, 0, len(results))
	for _, r := range results {
		similarities = append(similarities, r.similarity)
	}
	avg := PageAverage(similarities)

	pageAnalysis := &model.PageAnalysis{
		PageID:        page.ID,
		AvgSimilarity: avg,
		PageValid:     PageValid(avg),
	}
	if err := a.repo.EnsurePageAnalysis(pageAnalysis); err != nil {
		return fmt.Errorf("failed to persist page analysis: %v", err)
	}

	existing, err := a.repo.GetGroupIDs(pageAnalysis.ID)
	if err != nil {
		return fmt.Errorf("failed to load existing groups: %v", err)
	}

	for i, r := range results {
		groupID := i + 1
		if _, ok := existing[groupID]; ok {
			slog.Debug("Group already persisted, skipping", "page_id", page.ID, "group_id", groupID)
			continue
		}
		group := &model.GroupAnalysis{
			AnalysisID:   pageAnalysis.ID,
			GroupID:      groupID,
			Similarity:   r.similarity,
			Timestamp:    r.timestamp,
			Detail:       r.detail,
			HasPole:      r.correlation.HasPole,
			HasTimestamp: r.correlation.HasTimestamp,
			HasDetail:    r.correlation.HasDetail,
			PoleName:     ExtractPoleName(r.detail),
			Remark:       ExtractRemark(r.detail),
			GroupValid:   r.valid,
		}
		if err := a.repo.CreateGroupAnalysis(group); err != nil {
			return fmt.Errorf("failed to persist group %d: %v", groupID, err)
		}
		groupSimilarity.Observe(r.similarity)
	}

	pagesAnalyzed.Inc()
	groupsDetected.Observe(float64(len(results)))
	return nil
}

// ensurePage reuses a page row with byte-identical rendered content and
// creates one otherwise, uploading the PNG to the blob store first when
// uploads are enabled.
func (a *Analyzer) ensurePage(ctx context.Context, pdf *model.PDF, pageNum int, encoded []byte) (*model.PDFPage, error) {
	hash := utils.SHA256Hex(encoded)
	page, err := a.repo.FindPageByContentHash(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to look up page by content: %v", err)
	}
	if page != nil {
		return page, nil
	}

	pageName := fmt.Sprintf("%s_page%02d.png", pdf.PDFName, pageNum)

	url := ""
	if a.blobs != nil {
		url, err = a.blobs.Put(ctx, fmt.Sprintf("pages/%d/%s", pdf.ID, pageName), encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to upload page image: %v", err)
		}
	}

	page = &model.PDFPage{
		PDFID:       pdf.ID,
		Page:        pageNum,
		PageName:    pageName,
		ContentHash: hash,
		URL:         url,
	}
	if err := a.repo.CreatePage(page); err != nil {
		return nil, fmt.Errorf("failed to persist page: %v", err)
	}
	return page, nil
}

// scoreGroups OCRs the timestamp/detail crops of each correlated group and
// scores them. Extraction is skipped entirely for leaves that were not found.
func (a *Analyzer) scoreGroups(ctx context.Context, img image.Image, groups []GroupCorrelation) ([]groupResult, error) {
	results := make([]groupResult, 0, len(groups))
	for _, g := range groups {
		r := groupResult{correlation: g}

		var err error
		if g.HasTimestamp {
			r.timestamp, err = a.extractor.Extract(ctx, imaging.Crop(img, g.TimestampBox.Rect()))
			if err != nil {
				return nil, fmt.Errorf("timestamp extraction failed: %v", err)
			}
		}
		if g.HasDetail {
			r.detail, err = a.extractor.Extract(ctx, imaging.Crop(img, g.DetailBox.Rect()))
			if err != nil {
				return nil, fmt.Errorf("detail extraction failed: %v", err)
			}
		}

		r.similarity = Similarity(r.timestamp, r.detail)
		r.valid = GroupValid(g.HasPole, g.HasTimestamp, g.HasDetail, r.similarity)
		results = append(results, r)
	}
	return results, nil
}
