// SPDX-License-Identifier: MIT

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/config"
	"github.com/katalvlaran/propel/export"
	"github.com/katalvlaran/propel/polar"
	"github.com/katalvlaran/propel/propulsion"
	"github.com/katalvlaran/propel/results"
)

// Server answers sweep requests against one run configuration and one
// frozen polar store. A fresh propulsion system is built per request.
type Server struct {
	cfg     *config.Config
	polars  *polar.Store
	archive *results.Store
	opts    Options
	log     l.Wrapper
	limiter *clientLimiter
}

// New returns a server. archive may be nil; sweeps are then not stored
// and the run routes answer 503.
func New(cfg *config.Config, polars *polar.Store, archive *results.Store, opts ...Option) *Server {
	o := gatherOptions(opts...)

	return &Server{
		cfg:     cfg,
		polars:  polars,
		archive: archive,
		opts:    o,
		log:     o.logger.WithFields(l.StringField(l.ClsKey, "httpapi.Server")),
		limiter: newClientLimiter(o.rate, o.burst, o.clientTTL),
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(s.opts.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.limiter.middleware)
	api.HandleFunc("/solve", s.solve).Methods(http.MethodPost)
	api.HandleFunc("/runs", s.runs).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", s.run).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}/report.pdf", s.report).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}/sweep.xlsx", s.workbook).Methods(http.MethodGet)

	// Subroutes share the /api prefix matcher, which makes mux drop a method
	// mismatch and answer 404; a trailing route per path answers 405 instead.
	for _, path := range []string{"/solve", "/runs", "/runs/{id}", "/runs/{id}/report.pdf", "/runs/{id}/sweep.xlsx"} {
		api.HandleFunc(path, methodNotAllowed)
	}

	return r
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// SolveRequest is the body of POST /api/solve. Empty Points runs the
// sweep of the run file.
type SolveRequest struct {
	Name   string                      `json:"name"`
	Points []propulsion.OperatingPoint `json:"points"`
}

// Point is an outcome with its point-level error spelled out.
type Point struct {
	propulsion.Outcome
	Error string `json:"error,omitempty"`
}

// RunResponse is returned by POST /api/solve and GET /api/runs/{id}.
type RunResponse struct {
	Run    *results.Run `json:"run,omitempty"`
	Points []Point      `json:"points"`
}

func points(outcomes []propulsion.Outcome) []Point {
	out := make([]Point, len(outcomes))
	for i, o := range outcomes {
		out[i] = Point{Outcome: o}
		if o.Err != nil {
			out[i].Error = o.Err.Error()
		}
	}

	return out
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, DefaultMaxBody)).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if len(req.Points) == 0 {
		req.Points = s.cfg.Sweep
	}
	if len(req.Points) == 0 {
		http.Error(w, ErrNoPoints.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		req.Name = s.cfg.Name
	}

	sys, err := s.cfg.System(s.polars, config.Runtime{Logger: s.opts.logger, Metrics: s.opts.metrics})
	if err != nil {
		s.log.WithFields(l.ErrorField(err)).Error("build system")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opts.solveTimeout)
	defer cancel()
	outcomes := sys.Sweep(ctx, req.Points)

	resp := RunResponse{Points: points(outcomes)}
	if s.archive != nil {
		run, err := s.archive.SaveRun(r.Context(), req.Name, outcomes)
		if err != nil {
			s.log.WithFields(l.ErrorField(err)).Error("save run")
			http.Error(w, "archive failure", http.StatusInternalServerError)
			return
		}
		resp.Run = &run
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) runs(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		http.Error(w, ErrNoArchive.Error(), http.StatusServiceUnavailable)
		return
	}
	runs, err := s.archive.Runs(r.Context())
	if err != nil {
		s.log.WithFields(l.ErrorField(err)).Error("list runs")
		http.Error(w, "archive failure", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []results.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// load resolves {id} into a run and its outcomes, answering the error
// itself when it returns false.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (results.Run, []propulsion.Outcome, bool) {
	if s.archive == nil {
		http.Error(w, ErrNoArchive.Error(), http.StatusServiceUnavailable)
		return results.Run{}, nil, false
	}
	id := mux.Vars(r)["id"]
	run, err := s.archive.Run(r.Context(), id)
	if err == nil {
		var outcomes []propulsion.Outcome
		if outcomes, err = s.archive.Outcomes(r.Context(), id); err == nil {
			return run, outcomes, true
		}
	}
	if errors.Is(err, results.ErrRunNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
	} else {
		s.log.WithFields(l.StringField("run", id), l.ErrorField(err)).Error("load run")
		http.Error(w, "archive failure", http.StatusInternalServerError)
	}

	return results.Run{}, nil, false
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) {
	run, outcomes, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, RunResponse{Run: &run, Points: points(outcomes)})
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	run, outcomes, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+run.ID+`.pdf"`)
	if err := export.WriteReport(w, run, outcomes); err != nil {
		s.log.WithFields(l.StringField("run", run.ID), l.ErrorField(err)).Error("report")
	}
}

func (s *Server) workbook(w http.ResponseWriter, r *http.Request) {
	run, outcomes, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+run.ID+`.xlsx"`)
	if err := export.WriteWorkbook(w, outcomes, nil); err != nil {
		s.log.WithFields(l.StringField("run", run.ID), l.ErrorField(err)).Error("workbook")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
