package analysis

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/bennypn/ai-kop-indosat/model"
	"github.com/bennypn/ai-kop-indosat/service/inference"
)

// memRepo is an in-memory Repository with the same uniqueness semantics as
// the MySQL-backed store.
type memRepo struct {
	mu     sync.Mutex
	nextID uint

	pdfs     map[uint]*model.PDF
	pages    []*model.PDFPage
	analyses []*model.PageAnalysis
	groups   []*model.GroupAnalysis

	pageCreates  int
	groupCreates int
}

func newMemRepo() *memRepo {
	return &memRepo{pdfs: make(map[uint]*model.PDF)}
}

func (r *memRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *memRepo) GetPDFByHash(hash string) (*model.PDF, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pdfs {
		if p.Hash == hash {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetPDFByID(id uint) (*model.PDF, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pdfs[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memRepo) CreatePDF(pdf *model.PDF) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pdfs {
		if p.Hash == pdf.Hash {
			return fmt.Errorf("duplicate hash %s", pdf.Hash)
		}
	}
	pdf.ID = r.id()
	c := *pdf
	r.pdfs[pdf.ID] = &c
	return nil
}

func (r *memRepo) UpdatePDFStatus(id uint, status model.PDFStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pdfs[id]; ok {
		p.Status = status
	}
	return nil
}

func (r *memRepo) GetPDFPages(pdfID uint) ([]model.PDFPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PDFPage
	for _, p := range r.pages {
		if p.PDFID == pdfID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memRepo) FindPageByContentHash(hash string) (*model.PDFPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pages {
		if p.ContentHash == hash {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memRepo) CreatePage(page *model.PDFPage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pages {
		if p.PDFID == page.PDFID && p.Page == page.Page {
			return fmt.Errorf("duplicate page %d for pdf %d", page.Page, page.PDFID)
		}
	}
	page.ID = r.id()
	c := *page
	r.pages = append(r.pages, &c)
	r.pageCreates++
	return nil
}

func (r *memRepo) EnsurePageAnalysis(a *model.PageAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.analyses {
		if ex.PageID == a.PageID {
			*a = *ex
			return nil
		}
	}
	a.ID = r.id()
	c := *a
	r.analyses = append(r.analyses, &c)
	return nil
}

func (r *memRepo) GetPageAnalysis(pageID uint) (*model.PageAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.analyses {
		if a.PageID == pageID {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetGroupIDs(analysisID uint) (map[int]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := make(map[int]struct{})
	for _, g := range r.groups {
		if g.AnalysisID == analysisID {
			set[g.GroupID] = struct{}{}
		}
	}
	return set, nil
}

func (r *memRepo) CreateGroupAnalysis(g *model.GroupAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.groups {
		if ex.AnalysisID == g.AnalysisID && ex.GroupID == g.GroupID {
			return nil
		}
	}
	g.ID = r.id()
	c := *g
	r.groups = append(r.groups, &c)
	r.groupCreates++
	return nil
}

func (r *memRepo) GetGroupAnalyses(analysisID uint) ([]model.GroupAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.GroupAnalysis
	for _, g := range r.groups {
		if g.AnalysisID == analysisID {
			out = append(out, *g)
		}
	}
	return out, nil
}

// fakeDetector returns regions keyed by page image width, so tests can give
// each page its own detector output.
type fakeDetector struct {
	byWidth map[int][]inference.Region
	errOn   map[int]error
}

func (d *fakeDetector) Detect(_ context.Context, img image.Image) ([]inference.Region, error) {
	w := img.Bounds().Dx()
	if err, ok := d.errOn[w]; ok {
		return nil, err
	}
	return d.byWidth[w], nil
}

// fakeExtractor maps crop dimensions to OCR text. Crop boxes in each test
// get distinct sizes, so dimensions identify the region.
type fakeExtractor struct {
	bySize map[string]string
}

func (e *fakeExtractor) Extract(_ context.Context, img image.Image) (string, error) {
	key := fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	return e.bySize[key], nil
}

// fakeRenderer serves pre-rendered page images.
type fakeRenderer struct {
	pages map[int]image.Image
}

func (r *fakeRenderer) PageCount([]byte) (int, error) {
	return len(r.pages), nil
}

func (r *fakeRenderer) RenderPages([]byte) (map[int]image.Image, error) {
	return r.pages, nil
}

func testImage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// fakeBlobs records uploads and hands back deterministic URLs.
type fakeBlobs struct {
	mu   sync.Mutex
	puts []string
}

func (b *fakeBlobs) Put(_ context.Context, path string, _ []byte) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts = append(b.puts, path)
	return "https://cdn.test/" + path, nil
}
