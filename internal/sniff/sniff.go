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

// Package sniff detects the content type of geospatial source files and
// transparently unwraps compressed sources.
package sniff

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MIME types reported by Detect.
const (
	TypeGPX     = "application/gpx+xml"
	TypeXML     = "application/xml"
	TypeUnknown = "application/octet-stream"
)

// sniffLen bounds how far into the document the root element is searched
// for. GPX prologs are short; anything larger is not a GPX file.
const sniffLen = 4096

// Detect reports the MIME type of the file at path, looking through any
// compression framing. Detection reads the file head only; it never
// parses the document.
func Detect(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	r, err := WrapReader(bufio.NewReader(f))
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}

	head := make([]byte, sniffLen)

	n, err := io.ReadFull(r, head)
	if err != nil && n == 0 {
		// unreadable or empty; fall back to the extension
		return byExtension(path), nil
	}

	return byContent(head[:n], path), nil
}

func byContent(head []byte, path string) string {
	trimmed := bytes.TrimLeft(head, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("<")) {
		return byExtension(path)
	}

	if rootElement(trimmed) == "gpx" {
		return TypeGPX
	}

	return TypeXML
}

// rootElement returns the local name of the first non-declaration,
// non-comment element in the document head.
func rootElement(head []byte) string {
	for len(head) > 0 {
		i := bytes.IndexByte(head, '<')
		if i < 0 || i+1 >= len(head) {
			return ""
		}

		head = head[i+1:]

		switch head[0] {
		case '?', '!':
			// declaration, comment, or doctype; skip to its end
			j := bytes.IndexByte(head, '>')
			if j < 0 {
				return ""
			}

			head = head[j+1:]
		default:
			end := bytes.IndexAny(head, " \t\r\n>/")
			if end < 0 {
				end = len(head)
			}

			name := string(head[:end])
			if k := strings.IndexByte(name, ':'); k >= 0 {
				name = name[k+1:]
			}

			return name
		}
	}

	return ""
}

func byExtension(path string) string {
	name := strings.ToLower(filepath.Base(path))

	// strip compression suffixes so file.gpx.gz detects as GPX
	for _, suffix := range []string{".gz", ".zst", ".xz", ".lz4"} {
		name = strings.TrimSuffix(name, suffix)
	}

	switch filepath.Ext(name) {
	case ".gpx":
		return TypeGPX
	case ".xml":
		return TypeXML
	default:
		return TypeUnknown
	}
}
