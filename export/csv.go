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

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the fixed column schema of CSV output.
var csvHeader = []string{"name", "gpxpoint", "latitude", "longitude", "mgrs"}

// WriteCSV renders the records of src as CSV with a header row. Column
// order matches the JSON field order.
func WriteCSV(w io.Writer, src RecordSource) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, r := range src.Records() {
		row := []string{
			r.Name,
			r.Category.String(),
			strconv.FormatFloat(float64(r.Lat), 'f', -1, 64),
			strconv.FormatFloat(float64(r.Lon), 'f', -1, 64),
			r.MGRS,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("error flushing CSV: %w", err)
	}

	return nil
}
