package main

import (
	"context"
	"os"

	"github.com/fhuszti/imgbatch/internal/logger"
)

func main() {
	if err := execute(); err != nil {
		logger.Errorf(context.Background(), "❌  %v", err)
		os.Exit(1)
	}
}
