package dao

import (
	"errors"

	"github.com/bennypn/ai-kop-indosat/model"
	"gorm.io/gorm"
)

func (Store) GetPDFPages(pdfID uint) ([]model.PDFPage, error) {
	var pages []model.PDFPage
	if err := DB.Where("pdf_id = ?", pdfID).
		Order("page ASC").
		Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// FindPageByContentHash looks up a page whose rendered PNG bytes are
// identical to a previously stored one. Returns nil when absent.
func (Store) FindPageByContentHash(hash string) (*model.PDFPage, error) {
	var page model.PDFPage
	if err := DB.Where("content_hash = ?", hash).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (Store) CreatePage(page *model.PDFPage) error {
	return DB.Create(page).Error
}
