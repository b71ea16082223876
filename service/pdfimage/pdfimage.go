// Package pdfimage turns scanned PDF pages into upscaled RGB rasters.
//
// Inspection documents are scans, so each page carries one full-page
// embedded image. Pages are rendered by extracting that image with pdfcpu
// and upscaling it so text crops stay legible for OCR.
package pdfimage

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ScaleFactor is the fixed upscaling applied to every rendered page.
const ScaleFactor = 2.5

// Renderer exposes the page operations the pipeline needs from a PDF.
type Renderer interface {
	PageCount(data []byte) (int, error)
	RenderPages(data []byte) (map[int]image.Image, error)
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) PageCount(data []byte) (int, error) {
	path, cleanup, err := writeTemp(data)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %v", err)
	}
	return count, nil
}

// RenderPages extracts the page images of the whole document, keyed by
// 1-based page number, each upscaled by ScaleFactor.
func (s *Service) RenderPages(data []byte) (map[int]image.Image, error) {
	path, cleanup, err := writeTemp(data)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	outDir, err := os.MkdirTemp("", "pdf-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(outDir)

	if err := api.ExtractImagesFile(path, outDir, nil, nil); err != nil {
		return nil, fmt.Errorf("failed to extract page images: %v", err)
	}

	pages := make(map[int]image.Image)
	err = filepath.Walk(outDir, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		pageNum, ok := parsePageFromFilename(info.Name())
		if !ok {
			return nil
		}
		img, err := loadImage(p)
		if err != nil {
			return nil
		}
		// One scan per page; keep the first image encountered.
		if _, exists := pages[pageNum]; !exists {
			pages[pageNum] = upscale(img)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect page images: %v", err)
	}
	return pages, nil
}

func upscale(img image.Image) image.Image {
	b := img.Bounds()
	w := int(math.Round(float64(b.Dx()) * ScaleFactor))
	h := int(math.Round(float64(b.Dy()) * ScaleFactor))
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// parsePageFromFilename reads the page number out of pdfcpu's extract
// naming scheme (page_1_Im0.png and similar).
func parsePageFromFilename(name string) (int, bool) {
	if !strings.HasPrefix(name, "page_") {
		return 0, false
	}
	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func writeTemp(data []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %v", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("failed to write temp file: %v", err)
	}
	f.Close()
	return f.Name(), func() { os.Remove(f.Name()) }, nil
}
