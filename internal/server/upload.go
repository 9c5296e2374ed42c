package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"finadvisor/constants"
	"finadvisor/internal/llm"
)

// handleUpload accepts a financial document (PDF or image), extracts its text
// via OCR and returns the model's structured analysis. The file is stored
// under a generated name, never the client-supplied one, and is removed when
// processing finishes regardless of outcome.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.deps.MaxBodySize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" || header.Size == 0 {
		writeError(w, http.StatusBadRequest, "No selected file")
		return
	}
	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if !constants.IsAllowedExt(ext) {
		writeError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	path := filepath.Join(s.deps.UploadDir, uuid.New().String()+"."+ext)
	if err := saveUpload(file, path); err != nil {
		s.log.Error("upload.save_error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store uploaded file")
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			s.log.Warn("upload.cleanup_error", "path", path, "error", err)
		}
	}()

	res, err := s.deps.Extractor.Extract(r.Context(), path)
	if err != nil {
		s.log.Error("upload.extract_error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to extract text from the file")
		return
	}
	if strings.TrimSpace(res.Text) == "" {
		writeError(w, http.StatusBadRequest, "No readable text found in the file")
		return
	}

	analysis, err := s.deps.Analyzer.Analyze(r.Context(), res.Text)
	if err != nil {
		if errors.Is(err, llm.ErrNotFinancial) {
			writeError(w, http.StatusBadRequest, llm.NotFinancialResponse)
			return
		}
		s.log.Error("upload.analyze_error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to analyze the document")
		return
	}

	s.log.Info("upload.analyzed",
		"format", res.SourceType,
		"pages", res.Pages,
		"document_type", analysis.DocumentType,
	)
	writeJSON(w, http.StatusOK, map[string]any{"analysis": analysis})
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
