package controller

import (
	"io"
	"log/slog"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bennypn/ai-kop-indosat/model"
	"github.com/bennypn/ai-kop-indosat/response"
	"github.com/bennypn/ai-kop-indosat/service/analysis"
	"github.com/bennypn/ai-kop-indosat/service/pdfimage"
	"github.com/bennypn/ai-kop-indosat/utils"
	"github.com/gin-gonic/gin"
)

type AnalysisController struct {
	repo      analysis.Repository
	scheduler *analysis.Scheduler
	renderer  pdfimage.Renderer
}

func NewAnalysisController(repo analysis.Repository, scheduler *analysis.Scheduler, renderer pdfimage.Renderer) *AnalysisController {
	return &AnalysisController{
		repo:      repo,
		scheduler: scheduler,
		renderer:  renderer,
	}
}

// Analyze accepts a multipart PDF upload and schedules background analysis.
// Identical content is never processed twice: re-uploads short-circuit to
// the known document's status.
func (ac *AnalysisController) Analyze(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{Error: ErrNoPDFUploaded.Error()})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{Error: ErrNoFilename.Error()})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read upload", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: ErrAnalyzePDF.Error()})
		return
	}
	if len(data) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{Error: ErrEmptyFile.Error()})
		return
	}

	pdfName := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	hash := utils.SHA256Hex(data)

	existing, err := ac.repo.GetPDFByHash(hash)
	if err != nil {
		slog.Error("Failed to look up PDF by hash", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: ErrAnalyzePDF.Error()})
		return
	}
	if existing != nil {
		ac.respondExisting(c, existing, data)
		return
	}

	totalPage, err := ac.renderer.PageCount(data)
	if err != nil {
		slog.Error("Failed to count PDF pages", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: ErrAnalyzePDF.Error()})
		return
	}

	pdf := model.PDF{
		PDFName:   pdfName,
		TotalPage: totalPage,
		Status:    model.StatusInProcess,
		Hash:      hash,
		Content:   data,
	}
	if err := ac.repo.CreatePDF(&pdf); err != nil {
		// A concurrent upload of the same content may have won the insert;
		// the unique hash index makes this safe to resolve by re-reading.
		existing, lookupErr := ac.repo.GetPDFByHash(hash)
		if lookupErr != nil || existing == nil {
			slog.Error("Failed to create PDF", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: ErrAnalyzePDF.Error()})
			return
		}
		ac.respondExisting(c, existing, data)
		return
	}

	ac.scheduler.Schedule(pdf, data)
	slog.Info("PDF accepted for analysis", "pdf_id", pdf.ID, "pdf_name", pdf.PDFName, "total_page", totalPage)

	c.JSON(http.StatusOK, response.AnalyzeResponse{
		PDFID:     pdf.ID,
		PDFName:   pdf.PDFName,
		Status:    "started",
		Message:   "PDF accepted for analysis",
		TotalPage: totalPage,
	})
}

// respondExisting handles re-uploads of known content: completed documents
// report their status, anything else is re-triggered and resumes.
func (ac *AnalysisController) respondExisting(c *gin.Context, pdf *model.PDF, data []byte) {
	if pdf.Status == model.StatusCompleted {
		c.JSON(http.StatusOK, response.AnalyzeResponse{
			PDFID:   pdf.ID,
			PDFName: pdf.PDFName,
			Status:  string(model.StatusCompleted),
			Message: "PDF has already been analyzed",
		})
		return
	}

	ac.scheduler.Schedule(*pdf, data)
	c.JSON(http.StatusOK, response.AnalyzeResponse{
		PDFID:   pdf.ID,
		PDFName: pdf.PDFName,
		Status:  string(model.StatusInProcess),
		Message: "Previous analysis was incomplete, resuming",
	})
}

// Inquiry reports progress and partial results for a document. A document
// that is not completed yet is re-triggered, which resumes any analysis a
// crash or failure left unfinished.
func (ac *AnalysisController) Inquiry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("pdf_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorResponse{Error: ErrPDFNotFound.Error()})
		return
	}

	pdf, err := ac.repo.GetPDFByID(uint(id))
	if err != nil {
		slog.Error("Failed to load PDF", "pdf_id", id, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: ErrInquiryPDF.Error()})
		return
	}
	if pdf == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorResponse{Error: ErrPDFNotFound.Error()})
		return
	}

	pages, err := ac.repo.GetPDFPages(pdf.ID)
	if err != nil {
		slog.Error("Failed to load pages", "pdf_id", pdf.ID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: ErrInquiryPDF.Error()})
		return
	}

	progress := 0
	if pdf.TotalPage > 0 {
		progress = len(pages) * 100 / pdf.TotalPage
	}

	if pdf.Status != model.StatusCompleted && len(pdf.Content) > 0 {
		ac.scheduler.Schedule(*pdf, pdf.Content)
	}

	result := make([]response.PageResult, 0, len(pages))
	sumAvg := 0.0
	for _, page := range pages {
		pageAnalysis, err := ac.repo.GetPageAnalysis(page.ID)
		if err != nil {
			slog.Error("Failed to load page analysis", "page_id", page.ID, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: ErrInquiryPDF.Error()})
			return
		}
		if pageAnalysis == nil {
			continue
		}

		groups, err := ac.repo.GetGroupAnalyses(pageAnalysis.ID)
		if err != nil {
			slog.Error("Failed to load group analyses", "page_id", page.ID, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: ErrInquiryPDF.Error()})
			return
		}

		groupResults := make([]response.GroupResult, 0, len(groups))
		for _, g := range groups {
			groupResults = append(groupResults, response.GroupResult{
				GroupID:      g.GroupID,
				Similarity:   g.Similarity,
				Timestamp:    g.Timestamp,
				Detail:       g.Detail,
				HasPole:      g.HasPole,
				HasTimestamp: g.HasTimestamp,
				HasDetail:    g.HasDetail,
				PoleName:     g.PoleName,
				Remark:       g.Remark,
				Valid:        g.GroupValid,
			})
		}

		sumAvg += pageAnalysis.AvgSimilarity
		result = append(result, response.PageResult{
			Page:          page.Page,
			PageID:        page.ID,
			PageName:      page.PageName,
			AvgSimilarity: pageAnalysis.AvgSimilarity,
			PageValid:     pageAnalysis.PageValid,
			Groups:        groupResults,
		})
	}

	message := "Analysis still in progress"
	if pdf.Status == model.StatusCompleted {
		message = "PDF analyzed successfully"
	} else if pdf.Status == model.StatusFailed {
		message = "Analysis failed, partial results shown"
	}

	c.JSON(http.StatusOK, response.InquiryResponse{
		PDFID:            pdf.ID,
		PDFName:          pdf.PDFName,
		Progress:         progress,
		Status:           string(pdf.Status),
		SumAvgSimilarity: math.Round(sumAvg*100) / 100,
		Message:          message,
		Result:           result,
	})
}
