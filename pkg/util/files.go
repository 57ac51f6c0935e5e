// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package util

import (
	"bufio"
	"errors"
	"os"
	"strings"
)

// COMMENT_PREFIX marks lines in an input file which are ignored.
const COMMENT_PREFIX = "#"

// ReadInputFile reads an input file as a sequence of lines, skipping blank
// lines and comments.  A missing file is treated as empty.
func ReadInputFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	// Check whether file exists
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	} else if err != nil {
		return nil, err
	}
	//
	defer file.Close()
	//
	var (
		lines   []string
		scanner = bufio.NewScanner(file)
	)
	// Read file line-by-line
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		//
		if line != "" && !strings.HasPrefix(line, COMMENT_PREFIX) {
			lines = append(lines, line)
		}
	}
	//
	return lines, scanner.Err()
}
