package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"finadvisor/constants"
	"finadvisor/internal/common"
)

func (e *Extractor) extractPDF(ctx context.Context, path string) (Result, error) {
	tmpDir, err := os.MkdirTemp("", "fa-pp-*")
	if err != nil {
		return Result{SourceType: constants.PDF}, err
	}
	defer func(dir string) {
		if err := os.RemoveAll(dir); err != nil {
			e.logger.Warn("failed to remove temp dir", "dir", dir, "error", err)
		}
	}(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png -l <maxPages> <in.pdf> <tmp/page>
	// -l stops rasterization after the page cap; pages beyond it are silently
	// ignored, not reported.
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-r", fmt.Sprintf("%d", e.cfg.DPI),
		"-png",
		"-l", fmt.Sprintf("%d", e.cfg.MaxPages),
		path, prefix)
	if err != nil {
		return Result{SourceType: constants.PDF}, fmt.Errorf("pdftoppm: %w (%s)", err, strings.TrimSpace(string(errb)))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return Result{SourceType: constants.PDF}, fmt.Errorf("pdftoppm produced no pages: %w", common.ErrInternal)
	}

	// OCR pages with a bounded worker pool; output order follows page order.
	texts := make([]string, len(matches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, img := range matches {
		g.Go(func() error {
			txt, err := e.tesseractOCR(gctx, img)
			if err != nil {
				return err
			}
			texts[i] = txt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{SourceType: constants.PDF}, err
	}

	return Result{
		Text:       strings.Join(texts, "\n"),
		Pages:      len(matches),
		SourceType: constants.PDF,
	}, nil
}
