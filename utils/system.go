/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package utils

import (
	"fmt"
	"os"
)

// IsValidFolder checks whether a given path is existing and a folder
func IsValidFolder(path string) error {
	if path != "" { // Empty path = current folder, which is always valid
		fi, err := os.Stat(path)
		if os.IsNotExist(err) {
			return fmt.Errorf("path not existing: %s", path)
		} else if err != nil {
			return err
		} else if !fi.IsDir() {
			return fmt.Errorf("path not a folder: %s", path)
		}
	}
	return nil
}

// IsValidFile checks whether a given path is existing and a file
func IsValidFile(path string) error {
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path not existing: %s", path)
	}
	if fi != nil && fi.IsDir() {
		return fmt.Errorf("path not a file: %s", path)
	}
	return nil
}

// ReadInputFile validates the path and returns the file's content.
func ReadInputFile(path string) ([]byte, error) {
	if errValid := IsValidFile(path); errValid != nil {
		return nil, errValid
	}
	data, errRead := os.ReadFile(path)
	if errRead != nil {
		return nil, fmt.Errorf("could not read '%s': %w", path, errRead)
	}
	return data, nil
}
