/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	if r.Contains(Pt{9.5, 20}) || r.Contains(Pt{50, 70.5}) {
		t.Fatalf("points outside should not be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Pt{150, 200}.Sub(Pt{50, 100})
	if p != (Pt{100, 100}) {
		t.Fatalf("Sub = %+v", p)
	}
	if q := p.Add(Pt{-100, 5}); q != (Pt{0, 105}) {
		t.Fatalf("Add = %+v", q)
	}
}

func TestUnionAndRectAt(t *testing.T) {
	u := R(0, 0, 10, 10).Union(R(20, -5, 5, 5))
	if u != R(0, -5, 25, 15) {
		t.Fatalf("Union = %+v", u)
	}
	r := RectAt(Pt{3, 4}, Size{W: 5, H: 6})
	if r.Min() != (Pt{3, 4}) || r.Max() != (Pt{8, 10}) || r.Size() != (Size{5, 6}) {
		t.Fatalf("RectAt = %+v", r)
	}
	if !R(0, 0, 0, 5).Empty() || R(0, 0, 1, 1).Empty() {
		t.Fatalf("Empty mismatch")
	}
}

func TestFloatRound(t *testing.T) {
	if got := FloatRound(1.23456, 2); got != 1.23 {
		t.Fatalf("FloatRound = %v", got)
	}
	if got := FloatRound(1.5, -1); got != 1.5 {
		t.Fatalf("negative places should be identity, got %v", got)
	}
}
