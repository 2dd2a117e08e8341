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

package sniff

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// Compression framing magic numbers.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicXz   = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
	magicLz4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// WrapReader returns a reader that transparently decompresses gzip, zstd,
// xz, and lz4 framed sources; uncompressed sources pass through unchanged.
// The framing is recognized by magic number, never by file name.
func WrapReader(r *bufio.Reader) (io.Reader, error) {
	head, err := r.Peek(6)
	if err != nil {
		// too short to carry any framing; let the parser report it
		return r, nil
	}

	var factory func(io.Reader) (io.Reader, error)

	switch {
	case bytes.HasPrefix(head, magicGzip):
		factory = func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		}
	case bytes.HasPrefix(head, magicZstd):
		factory = func(r io.Reader) (io.Reader, error) {
			// decode on the calling goroutine; the returned reader has
			// no Close and must not hold worker goroutines
			return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		}
	case bytes.HasPrefix(head, magicXz):
		factory = func(r io.Reader) (io.Reader, error) {
			return xz.NewReader(r)
		}
	case bytes.HasPrefix(head, magicLz4):
		factory = func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		}
	default:
		return r, nil
	}

	rdr, err := factory(r)
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}

	return rdr, nil
}
