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

package coordex

import (
	"fmt"

	"m4o.io/coordex/model"
)

// UnsupportedFormatError reports a source file whose detected content type
// is not a recognized geospatial format. It is returned before any parsing
// begins.
type UnsupportedFormatError struct {
	Path        string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q for %s", e.ContentType, e.Path)
}

// AssemblyError reports a point that could not be converted into a
// PointRecord. It wraps the originating conversion or validation error.
type AssemblyError struct {
	Category model.Category
	Index    int
	Err      error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("cannot assemble %s %d: %v", e.Category, e.Index, e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }
