package ocr

import (
	"context"
	"fmt"
	"strings"

	"finadvisor/constants"
)

func (e *Extractor) extractImage(ctx context.Context, path string) (Result, error) {
	txt, err := e.tesseractOCR(ctx, path)
	if err != nil {
		return Result{SourceType: constants.IMAGE}, err
	}
	return Result{
		Text:       txt,
		Pages:      1,
		SourceType: constants.IMAGE,
	}, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, error) {
	args := []string{path, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, strings.TrimSpace(string(errb)))
	}
	return string(out), nil
}
