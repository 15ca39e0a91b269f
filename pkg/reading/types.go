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
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Cell lists the Go types a table cell can carry.
type Cell interface {
	~int64 | ~float64 | ~string
}

// Kind tells which of the three cell types a Reading holds.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindFloat
	KindText
)

// Reading is one cell of a section table. Rows mix integers, floats and
// residual text, so cells are held behind this interface.
type Reading interface {
	Kind() Kind
	Any() any
	String() string

	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Scalar is the only Reading implementation.
type Scalar[T Cell] struct {
	V T
}

// Kind reports the cell type of s.
func (s Scalar[T]) Kind() Kind {
	switch any(s.V).(type) {
	case int64:
		return KindInt
	case float64:
		return KindFloat
	default:
		return KindText
	}
}

func (s Scalar[T]) Any() any { return s.V }

// String renders the cell for CSV and table output: floats in their
// shortest exact form, everything else as is.
func (s Scalar[T]) String() string {
	if f, ok := any(s.V).(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(s.V)
}

// Cells encode as bare values in both JSON and YAML.

func (s Scalar[T]) MarshalJSON() ([]byte, error) { return json.Marshal(s.V) }

func (s Scalar[T]) MarshalYAML() (any, error) { return s.V, nil }

func (s *Scalar[T]) UnmarshalJSON(data []byte) error { return json.Unmarshal(data, &s.V) }

func (s *Scalar[T]) UnmarshalYAML(node *yaml.Node) error { return node.Decode(&s.V) }

func Int(v int) Reading         { return &Scalar[int64]{V: int64(v)} }
func Int64(v int64) Reading     { return &Scalar[int64]{V: v} }
func Float64(v float64) Reading { return &Scalar[float64]{V: v} }
func Str(v string) Reading      { return &Scalar[string]{V: v} }

// ToReading wraps a decoded value. Types other than int, int64, float64 and
// string are kept as their text.
func ToReading(v any) Reading {
	switch val := v.(type) {
	case int:
		return Int(val)
	case int64:
		return Int64(val)
	case float64:
		return Float64(val)
	case string:
		return Str(val)
	}
	return Str(fmt.Sprint(v))
}

// IsMissing reports whether r stands for "no value": nil or a NaN float.
func IsMissing(r Reading) bool {
	if r == nil {
		return true
	}
	f, ok := r.Any().(float64)
	return ok && math.IsNaN(f)
}
