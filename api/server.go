/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

// Package api exposes the catalog as read-only JSON API under /api/v2/ and accepts assessments of cipher suite
// offers. Prometheus metrics are served under /metrics.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/telemetry"
	"github.com/siemens/GoCsInfo/utils"
)

const PathPrefix = "/api/v2"

type Server struct {
	logger  utils.Logger
	catalog *directory.Catalog
	timeout time.Duration // Maximum duration of a single assessment
}

func NewServer(logger utils.Logger, catalog *directory.Catalog, timeout time.Duration) (*Server, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	telemetry.InitMetrics()
	return &Server{
		logger:  logger,
		catalog: catalog,
		timeout: timeout,
	}, nil
}

// Router builds the route table. Fixed path segments are registered before variable ones, because the first
// matching route wins.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.Use(s.countRequests)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v2 := r.PathPrefix(PathPrefix).Subrouter()
	v2.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	v2.HandleFunc("/cs/", s.handleSuites).Methods(http.MethodGet)
	v2.HandleFunc("/cs/security/{tier}/", s.handleSuitesByTier).Methods(http.MethodGet)
	v2.HandleFunc("/cs/software/{software}/", s.handleSuitesBySoftware).Methods(http.MethodGet)
	v2.HandleFunc("/cs/tls/{version}/", s.handleSuitesByTlsVersion).Methods(http.MethodGet)
	v2.HandleFunc("/cs/{category}/{term}/", s.handleSuitesByAlgorithm).Methods(http.MethodGet)
	v2.HandleFunc("/cs/{name}/", s.handleSuite).Methods(http.MethodGet)

	v2.HandleFunc("/algo/", s.handleAlgorithms).Methods(http.MethodGet)
	v2.HandleFunc("/algo/type/{category}/", s.handleAlgorithmsByCategory).Methods(http.MethodGet)
	v2.HandleFunc("/algo/sev/{severity}/", s.handleAlgorithmsBySeverity).Methods(http.MethodGet)

	v2.HandleFunc("/vuln/", s.handleVulnerabilities).Methods(http.MethodGet)
	v2.HandleFunc("/vuln/sev/{severity}/", s.handleVulnerabilitiesBySeverity).Methods(http.MethodGet)
	v2.HandleFunc("/vuln/cs/{name}/", s.handleSuiteVulnerabilities).Methods(http.MethodGet)
	v2.HandleFunc("/vuln/{name}/", s.handleVulnerability).Methods(http.MethodGet)

	v2.HandleFunc("/rfc/", s.handleRfcs).Methods(http.MethodGet)
	v2.HandleFunc("/rfc/{number:[0-9]+}/", s.handleRfc).Methods(http.MethodGet)

	v2.HandleFunc("/assess/", s.handleAssess).Methods(http.MethodPost)

	return r
}

// ListenAndServe serves the API until the context is cancelled and shuts down gracefully afterwards
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errServe := make(chan error, 1)
	go func() {
		s.logger.Infof("Serving API on '%s'.", addr)
		errServe <- srv.ListenAndServe()
	}()

	select {
	case err := <-errServe:
		return err
	case <-ctx.Done():
		s.logger.Infof("Shutting down API.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errShutdown := srv.Shutdown(shutdownCtx)
		if err := <-errServe; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return errShutdown
	}
}

// statusRecorder remembers the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// countRequests counts requests by route template, so path values do not blow up the label space
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		telemetry.ApiRequests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
	})
}
