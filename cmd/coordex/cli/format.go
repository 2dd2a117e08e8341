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

package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// FormatJSON and FormatCSV are the accepted values of the --format flag.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// -- output format Value
type formatValue struct {
	value *string
}

// NewFormatValue creates a cobra Value object for an output format.
func NewFormatValue(def string, p *string) pflag.Value {
	fv := &formatValue{
		value: p,
	}
	*fv.value = def

	return fv
}

func (f *formatValue) Set(val string) error {
	switch val {
	case FormatJSON, FormatCSV:
		*f.value = val
		return nil
	default:
		return fmt.Errorf("unknown format %q, expected %q or %q", val, FormatJSON, FormatCSV)
	}
}

func (f *formatValue) Type() string {
	return "format"
}

func (f *formatValue) String() string {
	return *f.value
}
