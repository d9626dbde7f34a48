package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cargohub/cargokb/internal/convert"
	"github.com/cargohub/cargokb/internal/rag"
)

type queryRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

type queryResponse struct {
	Answered  bool     `json:"answered"`
	Answer    string   `json:"answer,omitempty"`
	Citations []string `json:"citations,omitempty"`
	Score     float64  `json:"score,omitempty"`
}

// handleQuery answers a question from the knowledge base, or reports that no
// confident answer exists.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}

	reply, err := s.responder.Answer(req.Question, req.TopK)
	if err != nil {
		if errors.Is(err, rag.ErrNotFitted) {
			jsonError(w, "index not loaded", http.StatusServiceUnavailable)
			return
		}
		jsonError(w, "query failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := queryResponse{}
	if reply != nil {
		resp.Answered = true
		resp.Answer = reply.Text
		resp.Citations = reply.Citations
		resp.Score = reply.Score
	}
	writeJSON(w, http.StatusOK, resp)
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// handleChat runs one support-chat turn: return/cancel intents act on the
// cargo store, other messages are answered from the knowledge base.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" || strings.TrimSpace(req.Message) == "" {
		jsonError(w, "user_id and message are required", http.StatusBadRequest)
		return
	}

	reply, err := s.chat.Handle(r.Context(), req.UserID, req.Message)
	if err != nil {
		jsonError(w, "chat failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

type corpusDocStats struct {
	Document string            `json:"document"`
	Headings []convert.Heading `json:"headings"`
}

// handleCorpusStats reports the heading outline of every corpus document.
func (s *Server) handleCorpusStats(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.cfg.CorpusDir)
	if err != nil {
		jsonError(w, "read corpus: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]corpusDocStats, 0, len(names))
	for _, name := range names {
		src, err := os.ReadFile(filepath.Join(s.cfg.CorpusDir, name))
		if err != nil {
			jsonError(w, "read corpus document: "+err.Error(), http.StatusInternalServerError)
			return
		}
		docs = append(docs, corpusDocStats{Document: name, Headings: convert.Outline(src)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}
