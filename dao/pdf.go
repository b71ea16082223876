package dao

import (
	"errors"

	"github.com/bennypn/ai-kop-indosat/model"
	"gorm.io/gorm"
)

// Store implements the repository consumed by the analysis service on top
// of the shared gorm handle.
type Store struct{}

func (Store) GetPDFByHash(hash string) (*model.PDF, error) {
	var pdf model.PDF
	if err := DB.Where("hash = ?", hash).First(&pdf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pdf, nil
}

func (Store) GetPDFByID(id uint) (*model.PDF, error) {
	var pdf model.PDF
	if err := DB.Where("id = ?", id).First(&pdf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pdf, nil
}

func (Store) CreatePDF(pdf *model.PDF) error {
	return DB.Create(pdf).Error
}

func (Store) UpdatePDFStatus(id uint, status model.PDFStatus) error {
	return DB.Model(&model.PDF{}).
		Where("id = ?", id).
		Update("status", status).Error
}
