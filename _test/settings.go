/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package _test

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Settings necessary for some unit tests
var settings *Settings
var settingsErr error // Indicates if settings initialization failed
var once sync.Once

// Settings holds all necessary unittest settings
type Settings struct {
	PathDataDir   string // Path to sample data used by unit tests
	HttpUserAgent string // HTTP user agent to use during unit tests
	Neo4jUri      string // neo4j instance to export to, e.g. neo4j://localhost:7687
	Neo4jUser     string // ...
	Neo4jPassword string // ...
}

// GetSettings returns the unit test settings. Neo4j may be configured via the environment variables CSINFO_NEO4J_URI,
// CSINFO_NEO4J_USER and CSINFO_NEO4J_PASSWORD.
func GetSettings() (*Settings, error) {

	// Initialize unit test settings if not done yet
	once.Do(func() {

		// Get absolute path to test folder
		_, filename, _, _ := runtime.Caller(0)
		workingDir := filepath.Dir(filename)

		// Create a new instance of the unit test settings, that might need to be adapted before running unit tests
		settings = &Settings{
			PathDataDir:   filepath.Join(workingDir, "data"),
			HttpUserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0",
			Neo4jUri:      os.Getenv("CSINFO_NEO4J_URI"),      // must be set to enable respective neo4j unit tests!
			Neo4jUser:     os.Getenv("CSINFO_NEO4J_USER"),     // must be set to enable respective neo4j unit tests!
			Neo4jPassword: os.Getenv("CSINFO_NEO4J_PASSWORD"), // must be set to enable respective neo4j unit tests!
		}

		// Check if settings are valid
		fi, errData := os.Stat(settings.PathDataDir)
		if errData != nil || !fi.IsDir() {
			settingsErr = fmt.Errorf("invalid sample data path")
			return
		}
	})

	// Return previously initialized unit test settings
	return settings, settingsErr
}

// DataFile returns the path of a sample data file
func (s *Settings) DataFile(name string) string {
	return filepath.Join(s.PathDataDir, name)
}
