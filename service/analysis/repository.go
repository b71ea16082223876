package analysis

import (
	"github.com/bennypn/ai-kop-indosat/model"
)

// Repository is the persistence gateway consumed by the pipeline. Lookup
// methods return (nil, nil) when no row exists; Ensure/Create methods are
// idempotent under the model uniqueness invariants, so re-running analysis
// never duplicates committed rows.
type Repository interface {
	GetPDFByHash(hash string) (*model.PDF, error)
	GetPDFByID(id uint) (*model.PDF, error)
	CreatePDF(pdf *model.PDF) error
	UpdatePDFStatus(id uint, status model.PDFStatus) error

	GetPDFPages(pdfID uint) ([]model.PDFPage, error)
	FindPageByContentHash(hash string) (*model.PDFPage, error)
	CreatePage(page *model.PDFPage) error

	EnsurePageAnalysis(a *model.PageAnalysis) error
	GetPageAnalysis(pageID uint) (*model.PageAnalysis, error)
	GetGroupIDs(analysisID uint) (map[int]struct{}, error)
	CreateGroupAnalysis(g *model.GroupAnalysis) error
	GetGroupAnalyses(analysisID uint) ([]model.GroupAnalysis, error)
}
