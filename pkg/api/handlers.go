package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mechbay/mechtbl/pkg/codec"
	"github.com/mechbay/mechtbl/pkg/config"
	"github.com/mechbay/mechtbl/pkg/datafile"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	infos := make([]TableInfo, 0, len(s.defs))
	for _, def := range s.defs {
		kind := def.Kind
		if kind == "" {
			kind = "record"
		}
		infos = append(infos, TableInfo{File: def.File, Kind: kind, Fields: len(def.Fields)})
	}
	sendSuccess(w, infos)
}

func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")

	def, err := config.FindTable(s.defs, file)
	if err != nil {
		sendError(w, err.Error(), http.StatusNotFound)
		return
	}
	format, err := def.Build()
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	start := time.Now()
	records, err := datafile.ReadFile(filepath.Join(s.config.DataDir, def.File), format)
	s.metrics.RecordDecode(def.File, len(records), err == nil, time.Since(start))
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			sendError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, codec.ErrFormatMismatch),
			errors.Is(err, codec.ErrTruncatedInput),
			errors.Is(err, codec.ErrMalformedField):
			sendError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			sendError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	sendSuccess(w, map[string]interface{}{
		"file":    def.File,
		"count":   len(records),
		"records": records,
	})
}
