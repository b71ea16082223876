package model

import "time"

type PDFStatus string

const (
	// 分析进行中
	StatusInProcess PDFStatus = "in_process"

	// 所有页面分析完成
	StatusCompleted PDFStatus = "completed"

	// 某一页处理失败，可重新触发恢复
	StatusFailed PDFStatus = "failed"
)

// PDF 一份上传的巡检文档，按内容哈希去重
type PDF struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	PDFName   string    `gorm:"not null" json:"pdf_name"`
	TotalPage int       `gorm:"not null" json:"total_page"`
	Status    PDFStatus `gorm:"not null;default:in_process" json:"status"`

	// SHA-256 of the raw PDF bytes; identical content maps to one row
	Hash string `gorm:"not null;uniqueIndex;size:64" json:"hash"`

	// Raw PDF bytes, kept so an inquiry can resume analysis without re-upload
	Content []byte `gorm:"type:longblob" json:"-"`
}

func (PDF) TableName() string {
	return "pdfs"
}

// PDFPage 文档中的一页，渲染为PNG后存储
type PDFPage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	PDFID     uint      `gorm:"not null;uniqueIndex:idx_pdf_page" json:"pdf_id"`

	// 1-based page index within the document
	Page     int    `gorm:"not null;uniqueIndex:idx_pdf_page" json:"page"`
	PageName string `gorm:"not null" json:"page_name"`

	// SHA-256 of the encoded PNG; byte-identical renders are reused
	ContentHash string `gorm:"not null;index;size:64" json:"content_hash"`

	// Public URL of the uploaded PNG on OSS, empty when upload is disabled
	URL string `json:"url"`
}

func (PDFPage) TableName() string {
	return "pdf_pages"
}

// PageAnalysis 页级分析结果，每页最多一行
type PageAnalysis struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	PageID        uint      `gorm:"not null;uniqueIndex" json:"page_id"`
	AvgSimilarity float64   `gorm:"not null" json:"avg_similarity"`
	PageValid     bool      `gorm:"not null" json:"page_valid"`
}

func (PageAnalysis) TableName() string {
	return "page_analysis"
}

// GroupAnalysis 单个group区域的分析结果
type GroupAnalysis struct {
	ID         uint `gorm:"primarykey" json:"id"`
	AnalysisID uint `gorm:"column:anal_id;not null;uniqueIndex:idx_analysis_group" json:"anal_id"`

	// 1-based, assigned in detection order within the page
	GroupID      int     `gorm:"not null;uniqueIndex:idx_analysis_group" json:"group_id"`
	Similarity   float64 `gorm:"not null" json:"similarity"`
	Timestamp    string  `gorm:"type:text" json:"timestamp"`
	Detail       string  `gorm:"type:text" json:"detail"`
	HasPole      bool    `gorm:"not null" json:"has_pole"`
	HasTimestamp bool    `gorm:"not null" json:"has_timestamp"`
	HasDetail    bool    `gorm:"not null" json:"has_detail"`
	PoleName     string  `json:"pole_name"`
	Remark       string  `gorm:"type:text" json:"remark"`
	GroupValid   bool    `gorm:"not null" json:"group_valid"`
}

func (GroupAnalysis) TableName() string {
	return "page_analysis_group"
}
