package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bennypn/ai-kop-indosat/model"
	"github.com/bennypn/ai-kop-indosat/service/inference"
	"github.com/bennypn/ai-kop-indosat/service/pdfimage"
	"github.com/bennypn/ai-kop-indosat/service/storage"
)

// Analyzer runs the document pipeline. All collaborators are injected by
// the composition root; the blob store may be nil when uploads are disabled.
type Analyzer struct {
	repo      Repository
	detector  inference.Detector
	extractor inference.TextExtractor
	renderer  pdfimage.Renderer
	blobs     storage.BlobStore
}

func NewAnalyzer(
	repo Repository,
	detector inference.Detector,
	extractor inference.TextExtractor,
	renderer pdfimage.Renderer,
	blobs storage.BlobStore,
) *Analyzer {
	return &Analyzer{
		repo:      repo,
		detector:  detector,
		extractor: extractor,
		renderer:  renderer,
		blobs:     blobs,
	}
}

// AnalyzePDF processes every page of the document in order. Pages within one
// document run strictly sequentially; the detector and extractor are not
// assumed reentrant within a document task.
//
// Re-invocation on a partially analyzed document is safe: committed pages and
// groups are detected through the idempotent repository operations and only
// the missing work is performed.
func (a *Analyzer) AnalyzePDF(ctx context.Context, pdf model.PDF, data []byte) error {
	slog.Info("Starting PDF analysis", "pdf_id", pdf.ID, "pdf_name", pdf.PDFName, "total_page", pdf.TotalPage)
	documentsStarted.Inc()

	if pdf.Status != model.StatusInProcess {
		if err := a.repo.UpdatePDFStatus(pdf.ID, model.StatusInProcess); err != nil {
			return fmt.Errorf("failed to update status: %v", err)
		}
	}

	pages, err := a.renderer.RenderPages(data)
	if err != nil {
		a.fail(pdf.ID)
		return fmt.Errorf("failed to render pages: %v", err)
	}

	for pageNum := 1; pageNum <= pdf.TotalPage; pageNum++ {
		img, ok := pages[pageNum]
		if !ok {
			a.fail(pdf.ID)
			return fmt.Errorf("page %d missing from rendered output", pageNum)
		}
		if err := a.analyzePage(ctx, &pdf, pageNum, img); err != nil {
			slog.Error("Page analysis failed", "pdf_id", pdf.ID, "page", pageNum, "err", err)
			a.fail(pdf.ID)
			return fmt.Errorf("failed to analyze page %d: %v", pageNum, err)
		}
	}

	if err := a.repo.UpdatePDFStatus(pdf.ID, model.StatusCompleted); err != nil {
		return fmt.Errorf("failed to update status: %v", err)
	}
	documentsCompleted.Inc()
	slog.Info("PDF analysis completed", "pdf_id", pdf.ID)
	return nil
}

func (a *Analyzer) fail(pdfID uint) {
	documentsFailed.Inc()
	if err := a.repo.UpdatePDFStatus(pdfID, model.StatusFailed); err != nil {
		slog.Error("Failed to mark PDF as failed", "pdf_id", pdfID, "err", err)
	}
}
