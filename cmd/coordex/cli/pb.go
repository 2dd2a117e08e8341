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
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// progressReader pairs a delegate ReadCloser with the ProgressBar tracking
// it.
type progressReader struct {
	r   io.ReadCloser
	bar *pb.ProgressBar
}

// WrapInputFile wraps a regular input file with a ProgressBar that tracks
// the bytes read relative to the file's size. The bar renders on stderr so
// stdout stays machine readable.
func WrapInputFile(f *os.File) (io.ReadCloser, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	bar := pb.New(int(fi.Size())).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
	bar.Output = os.Stderr
	bar.Start()

	return progressReader{
		r:   bar.NewProxyReader(f),
		bar: bar,
	}, nil
}

func (pr progressReader) Read(p []byte) (int, error) {
	return pr.r.Read(p)
}

// Close closes the delegate and retires the bar, clearing its line so the
// summary that follows starts at the left margin.
func (pr progressReader) Close() error {
	pr.bar.NotPrint = true
	pr.bar.Finish()

	fmt.Fprint(os.Stderr, "\033[2K\r")

	return pr.r.Close()
}
