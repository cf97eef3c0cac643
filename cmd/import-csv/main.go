package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"receptari/internal/ingest"
	"receptari/pkg/database"
)

func main() {
	var csvIn = flag.String("csv", "recetas_traducidas.csv", "input CSV path for recipes")
	flag.Parse()

	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	loader := ingest.NewLoader(logger)
	n, err := loader.Run(ctx, db, *csvIn)
	if err != nil {
		logger.Fatal("import failed", zap.String("csv", *csvIn), zap.Error(err))
	}

	logger.Info("import complete", zap.String("csv", *csvIn), zap.Int("rows", n))
}
