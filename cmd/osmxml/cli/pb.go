// Copyright 2025 the original author or authors.
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

// Progress tracks the number of entities written relative to the total on
// stderr.  A nil *Progress is valid and does nothing.
type Progress struct {
	bar *pb.ProgressBar
	out io.Writer
}

// StartProgress starts a progress bar counting up to total entities.
func StartProgress(total int) *Progress {
	bar := pb.New(total).SetWidth(79)
	bar.Output = os.Stderr
	bar.ShowSpeed = true
	bar.Start()

	return &Progress{bar: bar, out: os.Stderr}
}

// Set reports that n entities have been written.
func (p *Progress) Set(n int) {
	if p == nil {
		return
	}

	p.bar.Set(n)
}

// Finish stops the bar and clears the terminal line of progress output.
func (p *Progress) Finish() {
	if p == nil {
		return
	}

	// make sure newline is not printed by Finish()
	p.bar.Output = nil
	p.bar.NotPrint = true

	p.bar.Finish()

	fmt.Fprintf(p.out, "\033[2K\r") // clear status bar
}
