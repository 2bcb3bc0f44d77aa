package main

import (
	"log/slog"
	"os"

	"github.com/Vikash02022000/FinSight/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	if err := application.Run(); err != nil {
		slog.Error("application exited with error", "error", err)
		os.Exit(1)
	}
}
