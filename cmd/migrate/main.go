// Standalone schema migration, for environments where the service account
// has no DDL rights and migrations run separately from deploys.
package main

import (
	"log/slog"
	"os"

	"github.com/bennypn/ai-kop-indosat/config"
	"github.com/bennypn/ai-kop-indosat/dao"
)

func main() {
	if err := config.Load(); err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	if err := dao.Init(); err != nil {
		slog.Error("Migration failed", "err", err)
		os.Exit(1)
	}

	slog.Info("Migration completed")
}
