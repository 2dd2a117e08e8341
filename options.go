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
	"runtime"

	"m4o.io/coordex/internal/sniff"
)

// Detector reports the MIME type of the file at path. It is consulted
// before parsing begins; unsupported types are rejected up front.
type Detector func(path string) (string, error)

// DefaultNCpu provides the default number of CPUs used for conversions.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// processorOptions provides optional configuration parameters for
// Processor construction.
type processorOptions struct {
	nCPU   uint16 // the number of CPUs to use for conversions
	detect Detector
}

// Option configures how we set up the processor.
type Option func(*processorOptions)

// WithNCpus lets you set the number of CPUs to use for conversions.
func WithNCpus(n uint16) Option {
	return func(o *processorOptions) {
		o.nCPU = max(n, 1)
	}
}

// WithDetector lets you replace the content-type detector consulted before
// parsing. The default detector sniffs magic bytes and falls back to the
// file extension.
func WithDetector(d Detector) Option {
	return func(o *processorOptions) {
		o.detect = d
	}
}

// defaultProcessorConfig provides a default configuration for processors.
func defaultProcessorConfig() processorOptions {
	return processorOptions{
		nCPU:   DefaultNCpu(),
		detect: sniff.Detect,
	}
}
