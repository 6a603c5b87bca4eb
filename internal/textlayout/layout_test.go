/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// tallProvider reports the basic face with an extra line gap.
type tallProvider struct{}

func (tallProvider) Resolve() (font.Face, Metrics) {
	_, m := BasicProvider{}.Resolve()
	m.LineGap += 10
	return basicfont.Face7x13, m
}

func TestBasicMeasure_Deterministic(t *testing.T) {
	// Face7x13 advances 7px per glyph; ascent 11, descent 2.
	s := Basic.Measure("Hello")
	if s.W != 35 || s.H != 13 {
		t.Fatalf("Measure(Hello) = %+v, want 35x13", s)
	}
	if again := Basic.Measure("Hello"); again != s {
		t.Fatalf("measure not deterministic: %+v vs %+v", s, again)
	}
}

func TestBasicMeasure_MultiLine(t *testing.T) {
	one := Basic.Measure("abcd")
	two := Basic.Measure("ab\nabcd")
	if two.W != one.W {
		t.Fatalf("width should be the widest line: %v vs %v", two.W, one.W)
	}
	if two.H <= one.H {
		t.Fatalf("two lines should be taller: %v vs %v", two.H, one.H)
	}
}

func TestBasicMeasure_Empty(t *testing.T) {
	if s := Basic.Measure(""); s.W != 0 || s.H != 13 {
		t.Fatalf("Measure(\"\") = %+v", s)
	}
}

func TestFaceMeasurer_UsesProvider(t *testing.T) {
	m := FaceMeasurer{Provider: tallProvider{}}
	one := Basic.Measure("a\nb")
	tall := m.Measure("a\nb")
	if tall.W != one.W || tall.H != one.H+10 {
		t.Fatalf("Measure with provider = %+v, basic = %+v", tall, one)
	}
}
