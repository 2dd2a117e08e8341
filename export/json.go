// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package export serializes point collections. Writers receive the
// collection as a read-only view and never mutate it.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"m4o.io/coordex/model"
)

// DefaultIndent is the JSON indentation applied when the caller does not
// choose one.
const DefaultIndent = 2

// RecordSource is the read-only view writers need; *model.PointCollection
// satisfies it.
type RecordSource interface {
	Records() []model.PointRecord
}

// WriteJSON renders the records of src as a JSON array, indented by
// indent spaces. An indent of zero renders compact output.
func WriteJSON(w io.Writer, src RecordSource, indent int) error {
	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	records := src.Records()
	if records == nil {
		records = []model.PointRecord{}
	}

	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}

	return nil
}
