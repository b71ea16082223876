package main

import (
	"log/slog"
	"os"

	"github.com/bennypn/ai-kop-indosat/config"
	"github.com/bennypn/ai-kop-indosat/controller"
	"github.com/bennypn/ai-kop-indosat/dao"
	"github.com/bennypn/ai-kop-indosat/router"
	"github.com/bennypn/ai-kop-indosat/service/analysis"
	"github.com/bennypn/ai-kop-indosat/service/inference"
	"github.com/bennypn/ai-kop-indosat/service/pdfimage"
	"github.com/bennypn/ai-kop-indosat/service/storage"
)

func main() {
	if err := config.Load(); err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	if err := dao.Init(); err != nil {
		slog.Error("Failed to initialize database", "err", err)
		os.Exit(1)
	}

	repo := dao.Store{}
	renderer := pdfimage.NewService()

	var blobs storage.BlobStore
	if config.Cfg.OSS.BucketName != "" {
		blobs = storage.NewOSSStore()
	}

	analyzer := analysis.NewAnalyzer(
		repo,
		inference.NewHTTPDetector(),
		inference.NewHTTPTextExtractor(),
		renderer,
		blobs,
	)
	scheduler := analysis.NewScheduler(analyzer, analysis.NewMemoryRunGuard(), config.Cfg.Analysis.MaxWorkers)

	ac := controller.NewAnalysisController(repo, scheduler, renderer)

	r := router.Register(ac)
	if err := r.Run(":" + config.Cfg.Server.Port); err != nil {
		slog.Error("Server exited", "err", err)
		os.Exit(1)
	}
}
