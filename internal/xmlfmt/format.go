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

// Package xmlfmt renders the small subset of XML needed for OSM documents
// with byte-exact output.
package xmlfmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNonFinite is returned when a NaN or infinite value is formatted.
var ErrNonFinite = errors.New("value is not finite")

// ErrNegativePrecision is returned for a precision below zero.
var ErrNegativePrecision = errors.New("precision is negative")

// FormatFixed renders v with exactly precision digits after the decimal
// point and then strips every '0' from both ends of the result.
//
// The strip is literal: 52.0 at precision 5 yields "52.", 0.5 yields ".5"
// and 0 yields ".".  At precision 0 there is no decimal point to stop the
// strip, so 100 yields "1".
func FormatFixed(v float64, precision int) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("cannot format %v: %w", v, ErrNonFinite)
	}

	if precision < 0 {
		return "", fmt.Errorf("cannot format with precision %d: %w", precision, ErrNegativePrecision)
	}

	return strings.Trim(strconv.FormatFloat(v, 'f', precision, 64), "0"), nil
}

// FormatID renders an identifier as a signed decimal.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
