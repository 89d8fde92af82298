/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/siemens/GoCsInfo/assessment"
	"github.com/siemens/GoCsInfo/directory"
)

// Upper limit for assessment request bodies
const maxBodySize = 1 << 20

// Offer as submitted for assessment
type offerRequest struct {
	TlsVersion  string `json:"tls_version"`
	OpensslName string `json:"openssl_name"`
	KeySize     int    `json:"key_size"`
	Preferred   bool   `json:"preferred"`
}

// RFC together with the cipher suites it defines
type rfcDetails struct {
	*directory.Rfc
	CipherSuites []string `json:"cipher_suites"`
}

type assessRequest struct {
	Target  string         `json:"target"`
	Ciphers []offerRequest `json:"ciphers"`
}

func writeJson(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates catalog errors into status codes. Details of internal errors are logged, not returned.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, directory.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.logger.Errorf("API request failed: %s", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// writeSuites writes a list of cipher suites. Empty lists are not found, if the filter asked for specific ones.
func (s *Server) writeSuites(w http.ResponseWriter, r *http.Request, f directory.Filter, emptyNotFound bool) {
	f.Search = r.URL.Query().Get("search")
	f.Descending = r.URL.Query().Get("order") == "desc"
	suites, err := s.catalog.Suites(r.Context(), f)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if emptyNotFound && len(suites) == 0 {
		http.Error(w, "No matching cipher suites", http.StatusNotFound)
		return
	}
	writeJson(w, http.StatusOK, suites)
}

// handleIndex lists the available route templates
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	routes := make([]string, 0)
	_ = s.Router().Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tpl, err := route.GetPathTemplate()
		if err != nil || !strings.HasPrefix(tpl, PathPrefix+"/") || tpl == PathPrefix+"/" {
			return nil
		}
		routes = append(routes, tpl)
		return nil
	})
	sort.Strings(routes)
	writeJson(w, http.StatusOK, routes)
}

func (s *Server) handleSuites(w http.ResponseWriter, r *http.Request) {
	s.writeSuites(w, r, directory.Filter{}, false)
}

func (s *Server) handleSuitesByTier(w http.ResponseWriter, r *http.Request) {
	tier, err := directory.ParseTier(mux.Vars(r)["tier"])
	if err != nil || tier == directory.TierUnrated {
		http.Error(w, "Illegal security rating", http.StatusBadRequest)
		return
	}
	s.writeSuites(w, r, directory.Filter{Tiers: []directory.Tier{tier}}, true)
}

func (s *Server) handleSuitesBySoftware(w http.ResponseWriter, r *http.Request) {
	software, err := directory.ParseSoftware(mux.Vars(r)["software"])
	if err != nil {
		http.Error(w, "Illegal software library", http.StatusBadRequest)
		return
	}
	s.writeSuites(w, r, directory.Filter{Software: software}, false)
}

func (s *Server) handleSuitesByTlsVersion(w http.ResponseWriter, r *http.Request) {
	version, err := directory.ParseTlsVersion(mux.Vars(r)["version"])
	if err != nil || version < directory.Tlsv1_0 {
		http.Error(w, "Illegal TLS version", http.StatusBadRequest)
		return
	}
	s.writeSuites(w, r, directory.Filter{TlsVersion: version}, true)
}

func (s *Server) handleSuitesByAlgorithm(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	category, err := directory.ParseCategory(vars["category"])
	if err != nil {
		http.Error(w, "Illegal algorithm type", http.StatusBadRequest)
		return
	}
	s.writeSuites(w, r, directory.Filter{Category: category, Term: vars["term"]}, true)
}

func (s *Server) handleSuite(w http.ResponseWriter, r *http.Request) {
	cs, err := s.catalog.Store().GetCipherSuite(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, cs)
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	algorithms, err := s.catalog.Algorithms(r.Context(), 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, algorithms)
}

func (s *Server) handleAlgorithmsByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := directory.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		http.Error(w, "Illegal algorithm type", http.StatusBadRequest)
		return
	}
	algorithms, err := s.catalog.Algorithms(r.Context(), category)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, algorithms)
}

func (s *Server) handleAlgorithmsBySeverity(w http.ResponseWriter, r *http.Request) {
	severity, err := directory.ParseSeverity(mux.Vars(r)["severity"])
	if err != nil {
		http.Error(w, "Illegal severity", http.StatusBadRequest)
		return
	}
	algorithms, err := s.catalog.AlgorithmsBySeverity(r.Context(), severity)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, algorithms)
}

func (s *Server) handleVulnerabilities(w http.ResponseWriter, r *http.Request) {
	vulnerabilities, err := s.catalog.Vulnerabilities(r.Context(), 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, vulnerabilities)
}

func (s *Server) handleVulnerabilitiesBySeverity(w http.ResponseWriter, r *http.Request) {
	severity, err := directory.ParseSeverity(mux.Vars(r)["severity"])
	if err != nil {
		http.Error(w, "Illegal severity", http.StatusBadRequest)
		return
	}
	vulnerabilities, err := s.catalog.Vulnerabilities(r.Context(), severity)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, vulnerabilities)
}

func (s *Server) handleSuiteVulnerabilities(w http.ResponseWriter, r *http.Request) {
	vulnerabilities, err := s.catalog.SuiteVulnerabilities(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, vulnerabilities)
}

func (s *Server) handleVulnerability(w http.ResponseWriter, r *http.Request) {
	v, err := s.catalog.Store().GetVulnerability(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, v)
}

func (s *Server) handleRfcs(w http.ResponseWriter, r *http.Request) {
	rfcs, err := s.catalog.Rfcs(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, rfcs)
}

func (s *Server) handleRfc(w http.ResponseWriter, r *http.Request) {

	// The route pattern only admits digits, but the number may still overflow
	number, errConv := strconv.Atoi(mux.Vars(r)["number"])
	if errConv != nil {
		http.Error(w, "Illegal RFC number", http.StatusBadRequest)
		return
	}
	rfc, err := s.catalog.Store().GetRfc(r.Context(), number)
	if err != nil {
		s.writeError(w, err)
		return
	}
	suites, err := s.catalog.RfcSuites(r.Context(), number)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, rfcDetails{Rfc: rfc, CipherSuites: suites})
}

// handleAssess rates a list of cipher suites a TLS endpoint accepted
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	offers := make([]assessment.Offer, 0, len(req.Ciphers))
	for _, c := range req.Ciphers {
		version, errVersion := directory.ParseTlsVersion(c.TlsVersion)
		if errVersion != nil {
			http.Error(w, "Illegal TLS version '"+c.TlsVersion+"'", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(c.OpensslName) == "" {
			http.Error(w, "Cipher suite name missing", http.StatusBadRequest)
			return
		}
		offers = append(offers, assessment.Offer{
			Version:     version,
			OpensslName: strings.TrimSpace(c.OpensslName),
			KeySize:     c.KeySize,
			Preferred:   c.Preferred,
		})
	}

	assessor, errNew := assessment.NewAssessor(s.logger, s.catalog, req.Target)
	if errNew != nil {
		http.Error(w, "Invalid assessment: "+errNew.Error(), http.StatusBadRequest)
		return
	}
	result := assessor.RunOffers(r.Context(), offers, s.timeout)
	if result.Exception {
		http.Error(w, "Assessment failed", http.StatusInternalServerError)
		return
	}
	writeJson(w, http.StatusOK, result)
}
