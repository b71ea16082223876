package controller

import "errors"

// Error messages for the upload surface are part of the client contract,
// hence the literal casing.
var (
	ErrNoPDFUploaded = errors.New("No PDF uploaded")
	ErrNoFilename    = errors.New("No filename provided")
	ErrEmptyFile     = errors.New("Empty file")
	ErrPDFNotFound   = errors.New("PDF not found")

	ErrAnalyzePDF = errors.New("failed to analyze PDF")
	ErrInquiryPDF = errors.New("failed to load analysis results")
)
