package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finadvisor/internal/common"
	"finadvisor/internal/invest"
	"finadvisor/internal/llm/gemini"
	"finadvisor/internal/llm/groq"
	"finadvisor/internal/ocr"
	"finadvisor/internal/scrape"
	"finadvisor/internal/server"
	"finadvisor/internal/videos"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("finadvisord.exit", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return err
	}

	catalog, err := invest.LoadCatalog()
	if err != nil {
		return err
	}

	advisor := gemini.NewClient(gemini.Config{
		APIKey:  cfg.LLM.GeminiAPIKey,
		BaseURL: cfg.LLM.GeminiBaseURL,
		Model:   cfg.LLM.GeminiModel,
		Timeout: cfg.LLM.RequestTimeout,
	}, logger)
	analyzer := groq.NewClient(groq.Config{
		APIKey:      cfg.LLM.GroqAPIKey,
		BaseURL:     cfg.LLM.GroqBaseURL,
		Model:       cfg.LLM.GroqModel,
		Temperature: &cfg.LLM.GroqTemp,
		Timeout:     cfg.LLM.RequestTimeout,
	}, logger)
	videoSearch := videos.NewClient(videos.Config{
		APIKey:     cfg.Videos.APIKey,
		BaseURL:    cfg.Videos.BaseURL,
		MaxResults: cfg.Videos.MaxResults,
	}, logger)
	extractor := ocr.NewExtractor(ocr.Config{
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Tesseract:   cfg.OCR.Tesseract,
		TessdataDir: cfg.OCR.TessdataDir,
		DPI:         cfg.OCR.DPI,
		MaxPages:    cfg.OCR.MaxPages,
		Workers:     cfg.OCR.Workers,
	}, logger)

	srv := server.New(server.Deps{
		Logger:    logger,
		Catalog:   catalog,
		Advisor:   advisor,
		Analyzer:  analyzer,
		Videos:    videoSearch,
		Extractor: extractor,

		MutualFunds:   scrape.NewMutualFundsFetcher(logger),
		LIC:           scrape.NewLICFetcher(logger),
		PostOffice:    scrape.NewPostOfficeFetcher(logger),
		GoldPrices:    scrape.NewGoldPricesFetcher(logger),
		CityGoldRates: scrape.NewCityGoldRatesFetcher(logger),

		UploadDir:      cfg.Upload.Dir,
		MaxBodySize:    cfg.Upload.MaxBodySize,
		FrontendOrigin: cfg.Server.FrontendOrigin,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http.listen", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("http.shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
