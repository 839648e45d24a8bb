package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RxDataLab/go-yfinance"
)

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if err := yfinance.ValidateTicker(ticker); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind, err := yfinance.ParseStatementKind(chi.URLParam(r, "kind"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	period := s.cfg.DefaultPeriod
	if p := r.URL.Query().Get("period"); p != "" {
		if period, err = yfinance.ParsePeriodType(p); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	stmt, _, err := yfinance.FetchStatement(r.Context(), s.fetcher, s.cfg.StatementBaseURL, ticker, kind, period)
	if err != nil {
		s.log.Warn("statement fetch failed", "ticker", ticker, "kind", kind, "error", err)
		jsonError(w, err.Error(), fetchStatus(err))
		return
	}

	if _, err := s.store.SaveStatement(r.Context(), stmt); err != nil {
		s.log.Error("failed to persist statement", "ticker", ticker, "kind", kind, "error", err)
	}

	writeJSON(w, http.StatusOK, stmt)
}

func (s *Server) handleStatementHistory(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if err := yfinance.ValidateTicker(ticker); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			jsonError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := s.store.ListStatements(r.Context(), ticker, limit)
	if err != nil {
		s.log.Error("failed to list statements", "ticker", ticker, "error", err)
		jsonError(w, "failed to list statements", http.StatusInternalServerError)
		return
	}
	if records == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if err := yfinance.ValidateTicker(ticker); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	quote, err := yfinance.FetchQuote(r.Context(), s.fetcher, s.cfg.QuoteBaseURL, ticker)
	if err != nil {
		s.log.Warn("quote fetch failed", "ticker", ticker, "error", err)
		jsonError(w, err.Error(), fetchStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// fetchStatus maps fetch failures onto gateway statuses
func fetchStatus(err error) int {
	if errors.Is(err, yfinance.ErrMalformedURL) {
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
