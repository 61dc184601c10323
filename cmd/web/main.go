package main

import (
	"talenthub_backend/internal/app"
	"talenthub_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("server exited", "error", err.Error())
	}
}
