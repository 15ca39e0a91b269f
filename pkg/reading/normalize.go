// Copyright (c) 2025, The yaspe Authors. All rights reserved.
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

package reading

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberFormat is the thousands/decimal separator pair used to read floats.
type NumberFormat struct {
	Thousands rune `json:"thousands" yaml:"thousands"`
	Decimal   rune `json:"decimal" yaml:"decimal"`
}

var (
	// USFormat reads "1,234.5" as 1234.5.
	USFormat = NumberFormat{Thousands: ',', Decimal: '.'}

	// EuropeanFormat reads "1.234,5" as 1234.5.
	EuropeanFormat = NumberFormat{Thousands: '.', Decimal: ','}
)

// ParseNumberFormat builds a NumberFormat from separator strings,
// e.g. from flags or a config file. Empty values fall back to USFormat.
func ParseNumberFormat(thousands, decimal string) (NumberFormat, error) {
	f := USFormat
	if thousands != "" {
		r := []rune(thousands)
		if len(r) != 1 {
			return NumberFormat{}, fmt.Errorf("thousands separator must be one character, got %q", thousands)
		}
		f.Thousands = r[0]
	}
	if decimal != "" {
		r := []rune(decimal)
		if len(r) != 1 {
			return NumberFormat{}, fmt.Errorf("decimal separator must be one character, got %q", decimal)
		}
		f.Decimal = r[0]
	}
	return f, f.Validate()
}

// Validate checks that the separators are distinct and not digits.
func (f NumberFormat) Validate() error {
	if f.Thousands == f.Decimal {
		return fmt.Errorf("thousands and decimal separators must differ, both are %q", f.Decimal)
	}
	if f.Decimal >= '0' && f.Decimal <= '9' || f.Thousands >= '0' && f.Thousands <= '9' {
		return fmt.Errorf("separators cannot be digits")
	}
	return nil
}

// Normalizer converts raw tokens into typed Readings.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	format NumberFormat
}

// NewNormalizer returns a Normalizer reading floats with the given format.
func NewNormalizer(format NumberFormat) *Normalizer {
	return &Normalizer{format: format}
}

// Format returns the separator pair in use.
func (n *Normalizer) Format() NumberFormat {
	return n.format
}

// Parse returns an integer Reading if s is a plain integer, a float Reading
// if it is a number in the configured format, and s unchanged otherwise.
func (n *Normalizer) Parse(s string) Reading {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int64(v)
	}
	if f, ok := n.atof(s); ok {
		return Float64(f)
	}
	return Str(s)
}

// ParseAIX is Parse with AIX magnitude suffixes: K and S scale by 1,000,
// M by 1,000,000, and the scaled value is truncated to an integer.
// S (service time in seconds) is scaled the same as K; consumers rely on it.
func (n *Normalizer) ParseAIX(s string) Reading {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int64(v)
	}
	for _, sfx := range []struct {
		mark  string
		scale float64
	}{
		{"K", 1e3},
		{"M", 1e6},
		{"S", 1e3},
	} {
		i := strings.Index(s, sfx.mark)
		if i < 0 {
			continue
		}
		f, err := strconv.ParseFloat(s[:i], 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Str(s)
		}
		return Int64(int64(f * sfx.scale))
	}
	if f, ok := n.atof(s); ok {
		return Float64(f)
	}
	return Str(s)
}

// ParseAll applies Parse to every token.
func (n *Normalizer) ParseAll(tokens []string) []Reading {
	out := make([]Reading, len(tokens))
	for i, t := range tokens {
		out[i] = n.Parse(t)
	}
	return out
}

// ParseAllAIX applies ParseAIX to every token.
func (n *Normalizer) ParseAllAIX(tokens []string) []Reading {
	out := make([]Reading, len(tokens))
	for i, t := range tokens {
		out[i] = n.ParseAIX(t)
	}
	return out
}

// atof drops thousands separators and maps the decimal separator to '.'.
// NaN is kept (it marks a missing cell); infinities are not numbers here.
func (n *Normalizer) atof(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case n.format.Thousands:
			continue
		case n.format.Decimal:
			b.WriteByte('.')
		default:
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
