// Copyright 2026 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package vectors provides a corpus of filter inputs
// and their expected outputs under the default options.
package vectors

import (
	_ "embed"
	"encoding/json"
)

// Vector is a single input and its expected output.
type Vector struct {
	Section string
	Input   string
	Output  string
}

//go:embed vectors.json
var vectorData []byte

// Load returns the corpus.
func Load() ([]Vector, error) {
	var corpus []Vector
	if err := json.Unmarshal(vectorData, &corpus); err != nil {
		return nil, err
	}
	return corpus, nil
}
