/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/siemens/GoCsInfo/directory"
	"github.com/siemens/GoCsInfo/feeds"
	"github.com/siemens/GoCsInfo/storage/sqlite"
	"github.com/siemens/GoCsInfo/utils"
)

const (
	BackendMemory = "memory"
	BackendSqlite = "sqlite"
)

// Duration decodes TOML strings like "30s" or "5m"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, errParse := time.ParseDuration(strings.TrimSpace(string(text)))
	if errParse != nil {
		return fmt.Errorf("invalid duration '%s': %w", text, errParse)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	Debug   bool    `toml:"debug"`
	Storage Storage `toml:"storage"`
	Catalog Catalog `toml:"catalog"`
	Feeds   Feeds   `toml:"feeds"`
	Api     Api     `toml:"api"`
	Neo4j   Neo4j   `toml:"neo4j"`
}

type Storage struct {
	Backend    string `toml:"backend"` // memory or sqlite
	SqlitePath string `toml:"sqlite_path"`
}

type Catalog struct {
	Workers int `toml:"workers"` // Parallel classifications during a rating refresh
}

type Feeds struct {
	IanaUrl      string   `toml:"iana_url"`
	UserAgent    string   `toml:"user_agent"`
	Proxy        string   `toml:"proxy"`
	Timeout      Duration `toml:"timeout"`
	NtlmDomain   string   `toml:"ntlm_domain"`
	NtlmUser     string   `toml:"ntlm_user"`
	NtlmPassword string   `toml:"ntlm_password"`
}

type Api struct {
	Listen  string   `toml:"listen"`
	Timeout Duration `toml:"timeout"` // Read and write timeout of the server
}

type Neo4j struct {
	Uri      string `toml:"uri"` // Graph export is disabled if empty
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

// Default returns a configuration usable without any config file
func Default() *Config {
	return &Config{
		Storage: Storage{
			Backend:    BackendSqlite,
			SqlitePath: "csinfo.db",
		},
		Catalog: Catalog{
			Workers: 4,
		},
		Feeds: Feeds{
			IanaUrl:   feeds.IanaCsvUrl,
			UserAgent: "GoCsInfo",
			Timeout:   Duration{30 * time.Second},
		},
		Api: Api{
			Listen:  "127.0.0.1:8080",
			Timeout: Duration{15 * time.Second},
		},
		Neo4j: Neo4j{
			User:     "neo4j",
			Database: "neo4j",
		},
	}
}

// Load decodes a TOML file on top of the defaults. An empty path returns the defaults. Secrets may be passed via
// environment variables instead of the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if errFile := utils.IsValidFile(path); errFile != nil {
			return nil, errFile
		}
		meta, errDecode := toml.DecodeFile(path, cfg)
		if errDecode != nil {
			return nil, fmt.Errorf("could not decode config file '%s': %w", path, errDecode)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config keys in '%s': %v", path, undecoded)
		}
	}
	cfg.ApplyEnvOverrides()
	if errValidate := cfg.Validate(); errValidate != nil {
		return nil, fmt.Errorf("invalid config: %w", errValidate)
	}
	return cfg, nil
}

// ApplyEnvOverrides reads secrets from the environment:
//   - CSINFO_NTLM_PASSWORD: overrides feeds.ntlm_password
//   - CSINFO_NEO4J_URI: overrides neo4j.uri
//   - CSINFO_NEO4J_PASSWORD: overrides neo4j.password
func (c *Config) ApplyEnvOverrides() {
	if password := os.Getenv("CSINFO_NTLM_PASSWORD"); password != "" {
		c.Feeds.NtlmPassword = password
	}
	if uri := os.Getenv("CSINFO_NEO4J_URI"); uri != "" {
		c.Neo4j.Uri = uri
	}
	if password := os.Getenv("CSINFO_NEO4J_PASSWORD"); password != "" {
		c.Neo4j.Password = password
	}
}

// ValidationError is a configuration value that cannot be used
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks all configuration values and returns every problem found
func (c *Config) Validate() error {
	var errs ValidationErrors

	// Storage
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendSqlite:
		if strings.TrimSpace(c.Storage.SqlitePath) == "" {
			errs = append(errs, ValidationError{"storage.sqlite_path", "required for sqlite backend"})
		}
	default:
		errs = append(errs, ValidationError{
			"storage.backend", fmt.Sprintf("invalid backend '%s', must be one of: memory, sqlite", c.Storage.Backend),
		})
	}

	// Catalog
	if c.Catalog.Workers < 1 {
		errs = append(errs, ValidationError{"catalog.workers", "must be at least 1"})
	}

	// Feeds
	if _, errUrl := url.ParseRequestURI(c.Feeds.IanaUrl); errUrl != nil {
		errs = append(errs, ValidationError{"feeds.iana_url", fmt.Sprintf("invalid url '%s'", c.Feeds.IanaUrl)})
	}
	if _, errProxy := c.Feeds.ProxyUrl(); errProxy != nil {
		errs = append(errs, ValidationError{"feeds.proxy", errProxy.Error()})
	}
	if c.Feeds.Timeout.Duration <= 0 {
		errs = append(errs, ValidationError{"feeds.timeout", "must be positive"})
	}
	if !utils.ValidOrEmptyCredentials(c.Feeds.NtlmDomain, c.Feeds.NtlmUser, c.Feeds.NtlmPassword) {
		errs = append(errs, ValidationError{"feeds.ntlm_user", "incomplete credentials"})
	}

	// Api
	if strings.TrimSpace(c.Api.Listen) == "" {
		errs = append(errs, ValidationError{"api.listen", "must not be empty"})
	}
	if c.Api.Timeout.Duration <= 0 {
		errs = append(errs, ValidationError{"api.timeout", "must be positive"})
	}

	// Neo4j
	if c.Neo4j.Uri != "" {
		if _, errUri := url.Parse(c.Neo4j.Uri); errUri != nil || !strings.Contains(c.Neo4j.Uri, "://") {
			errs = append(errs, ValidationError{"neo4j.uri", fmt.Sprintf("invalid uri '%s'", c.Neo4j.Uri)})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ProxyUrl returns the parsed proxy, or nil if none is configured
func (f *Feeds) ProxyUrl() (*url.URL, error) {
	if strings.TrimSpace(f.Proxy) == "" {
		return nil, nil
	}
	proxy, errParse := url.Parse(f.Proxy)
	if errParse != nil || proxy.Host == "" {
		return nil, fmt.Errorf("invalid proxy '%s'", f.Proxy)
	}
	return proxy, nil
}

// Requester returns an HTTP requester for downloading feeds
func (f *Feeds) Requester() (*utils.Requester, error) {
	proxy, errProxy := f.ProxyUrl()
	if errProxy != nil {
		return nil, errProxy
	}
	return utils.NewRequester(f.UserAgent, f.NtlmDomain, f.NtlmUser, f.NtlmPassword, proxy, f.Timeout.Duration), nil
}

// OpenStore opens the configured store. The returned function releases it.
func (s *Storage) OpenStore(logger utils.Logger) (directory.Store, func() error, error) {
	switch s.Backend {
	case BackendMemory:
		return directory.NewMemoryStore(), func() error { return nil }, nil
	case BackendSqlite:
		store, errOpen := sqlite.Open(logger, s.SqlitePath)
		if errOpen != nil {
			return nil, nil, errOpen
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("invalid backend '%s'", s.Backend)
	}
}
