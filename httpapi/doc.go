// Package httpapi serves sweeps over HTTP.
//
// Routes (github.com/gorilla/mux):
//
//	POST /api/solve                  run a sweep, archive it, return outcomes
//	GET  /api/runs                   list archived runs, newest first
//	GET  /api/runs/{id}              one run with its outcomes
//	GET  /api/runs/{id}/report.pdf   one-page pdf summary
//	GET  /api/runs/{id}/sweep.xlsx   workbook of the run
//	GET  /metrics                    Prometheus exposition
//	GET  /healthz                    liveness
//
// Every /api route passes a per-client token bucket
// (golang.org/x/time/rate). Idle buckets expire from a go-cache map.
package httpapi
