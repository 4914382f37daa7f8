package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexiusacademia/gotb/internal/calculator"
	"github.com/alexiusacademia/gotb/internal/loads"
	"github.com/alexiusacademia/gotb/internal/report"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var errMissingField = errors.New("missing field")

type errorResponse struct {
	Error string `json:"error"`
}

type sessionResponse struct {
	ID string `json:"id"`
	calculator.Snapshot
}

type sectionRequest struct {
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

type materialRequest struct {
	ID string `json:"id"`
}

// loadsRequest takes either line loads directly or area load components
// with the beam spacing in metres.
type loadsRequest struct {
	NormalLoad *float64          `json:"normal_load"`
	RatedLoad  *float64          `json:"rated_load"`
	Components *loads.Components `json:"components"`
	Spacing    *float64          `json:"spacing"`
}

type spanRequest struct {
	Span *float64 `json:"span"`
}

// writeJSON encodes v before anything is sent, so a value that cannot be
// encoded answers 500 instead of a truncated response
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"response encoding error"}` + "\n"))
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// respond writes v as JSON and logs failures
func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		s.log.Error("write response: %v", err)
	}
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) listMaterials(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.materials)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, e, err := s.store.Create()
	if err != nil {
		s.log.Error("create session: %v", err)
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	s.respond(w, http.StatusCreated, sessionResponse{ID: id.String(), Snapshot: e.session.Snapshot()})
}

// lookup resolves the {id} route variable; it writes the error response
// itself and returns ok=false when the session cannot be used
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (uuid.UUID, *entry, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return uuid.Nil, nil, false
	}
	e, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return uuid.Nil, nil, false
	}
	return id, e, true
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id, e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	s.respond(w, http.StatusOK, sessionResponse{ID: id.String(), Snapshot: e.session.Snapshot()})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil || !s.store.Delete(id) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.log.Info("session %s deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// update decodes the request body into req and applies it to the session
// with apply. Rejected values answer 422 and leave the session unchanged.
func (s *Server) update(w http.ResponseWriter, r *http.Request, req any, apply func(*calculator.Session) error) {
	id, e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := decode(r, req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := apply(e.session); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, errMissingField) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	s.respond(w, http.StatusOK, sessionResponse{ID: id.String(), Snapshot: e.session.Snapshot()})
}

func (s *Server) putSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	s.update(w, r, &req, func(sess *calculator.Session) error {
		if req.Width == nil || req.Height == nil {
			return fmt.Errorf("%w: width and height are required", errMissingField)
		}
		return sess.SetDimensions(*req.Width, *req.Height)
	})
}

func (s *Server) putMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	s.update(w, r, &req, func(sess *calculator.Session) error {
		if req.ID == "" {
			return fmt.Errorf("%w: id is required", errMissingField)
		}
		return sess.SelectMaterial(req.ID)
	})
}

func (s *Server) putLoads(w http.ResponseWriter, r *http.Request) {
	var req loadsRequest
	s.update(w, r, &req, func(sess *calculator.Session) error {
		if req.Components != nil {
			if req.Spacing == nil {
				return fmt.Errorf("%w: spacing is required with components", errMissingField)
			}
			line, err := loads.TimberFactors.Combine(*req.Components, *req.Spacing)
			if err != nil {
				return err
			}
			return sess.SetLoads(line.Normal, line.Rated)
		}
		if req.NormalLoad == nil || req.RatedLoad == nil {
			return fmt.Errorf("%w: normal_load and rated_load are required", errMissingField)
		}
		return sess.SetLoads(*req.NormalLoad, *req.RatedLoad)
	})
}

func (s *Server) putSpan(w http.ResponseWriter, r *http.Request) {
	var req spanRequest
	s.update(w, r, &req, func(sess *calculator.Session) error {
		if req.Span == nil {
			return fmt.Errorf("%w: span is required", errMissingField)
		}
		return sess.SetSpan(*req.Span)
	})
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	id, e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	meta := report.Meta{
		Title:   q.Get("title"),
		Project: q.Get("project"),
		Author:  q.Get("author"),
	}

	e.mu.Lock()
	rep, err := report.FromSession(e.session, meta)
	e.mu.Unlock()
	if err != nil {
		s.log.Error("report for %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "report generation error")
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, rep); err != nil {
		s.log.Error("report for %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "report generation error")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}
