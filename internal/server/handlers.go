package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"pagewatch/internal/artifact"
	"pagewatch/internal/common"
	"pagewatch/internal/models"
)

type screenshotRequest struct {
	URL string `json:"url"`
}

type diffRequest struct {
	FileA string `json:"fileA"`
	FileB string `json:"fileB"`
}

func (s *Server) handleCronScreenshot(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.RunBatch(r.Context())
	if err != nil {
		if errors.Is(err, common.ErrInvalidConfiguration) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Msg("Batch run failed")
		writeError(w, http.StatusInternalServerError, "batch run failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]models.URLOutcome{"results": result.Results})
}

func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	var req screenshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	buf, err := s.renderer.CaptureFullPage(r.Context(), req.URL)
	if err != nil {
		s.logger.Error().Err(err).Str("url", req.URL).Msg("Capture failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := artifact.Filename(artifact.KindScreenshot, req.URL, s.now())
	if _, err := s.store.Save(buf, filename); err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("Failed to store screenshot")
		writeError(w, http.StatusInternalServerError, "failed to store screenshot")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"path": artifact.PublicPath(filename)})
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FileA == "" || req.FileB == "" {
		writeError(w, http.StatusBadRequest, "fileA and fileB are required")
		return
	}

	bufA, err := s.store.Read(req.FileA)
	if err != nil {
		s.respondReadError(w, req.FileA, err)
		return
	}
	bufB, err := s.store.Read(req.FileB)
	if err != nil {
		s.respondReadError(w, req.FileB, err)
		return
	}

	result, diffImage, err := s.comparator.Compare(bufA, bufB)
	if err != nil {
		var dimErr *common.DimensionMismatchError
		if errors.As(err, &dimErr) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Msg("Comparison failed")
		writeError(w, http.StatusInternalServerError, "comparison failed")
		return
	}

	diffFilename := artifact.DiffFilename(req.FileA, req.FileB, s.now())
	if _, err := s.store.Save(diffImage, diffFilename); err != nil {
		s.logger.Error().Err(err).Str("filename", diffFilename).Msg("Failed to store diff")
		writeError(w, http.StatusInternalServerError, "failed to store diff")
		return
	}
	result.Path = artifact.PublicPath(diffFilename)

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListScreenshots(w http.ResponseWriter, r *http.Request) {
	files, err := s.store.List()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list artifacts")
		writeError(w, http.StatusInternalServerError, "failed to list artifacts")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"files": files})
}

func (s *Server) handleTestEmail(w http.ResponseWriter, r *http.Request) {
	err := s.notifier.SendChangeNotification(r.Context(), "https://example.com", 12.34, artifact.PublicPath("diff-sample.png"))
	if err != nil {
		if errors.Is(err, common.ErrInvalidConfiguration) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Msg("Test notification failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "test notification sent"})
}

func (s *Server) respondReadError(w http.ResponseWriter, filename string, err error) {
	if errors.Is(err, common.ErrNotFound) {
		writeError(w, http.StatusNotFound, "file not found: "+filename)
		return
	}
	s.logger.Error().Err(err).Str("filename", filename).Msg("Failed to read artifact")
	writeError(w, http.StatusInternalServerError, "failed to read artifact")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
