//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package types

import (
	"strconv"
	"strings"
)

// Value represents a centipawn evaluation or search score.
type Value int16

// MaxDepth bounds the recursion of the search and the mate-distance encoding.
const MaxDepth = 128

const (
	ValueZero               Value = 0
	ValueDraw               Value = 0
	ValueOne                Value = 1
	ValueInf                Value = 15_000
	ValueNA                 Value = -ValueInf - 1
	ValueMax                Value = 10_000
	ValueMin                Value = -ValueMax
	ValueCheckMate          Value = ValueMax
	ValueCheckMateThreshold Value = ValueCheckMate - MaxDepth - 1
)

// IsValid reports whether v lies within the legal evaluation range.
func (v Value) IsValid() bool {
	return v >= ValueMin && v <= ValueMax
}

func absInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// IsCheckMateValue reports whether v encodes a forced mate score.
func (v Value) IsCheckMateValue() bool {
	return absInt(int(v)) > int(ValueCheckMateThreshold) && absInt(int(v)) <= int(ValueCheckMate)
}

// String renders v the way UCI "info score" expects: "cp N" or "mate N".
func (v Value) String() string {
	var sb strings.Builder
	switch {
	case v.IsCheckMateValue():
		sb.WriteString("mate ")
		if v < ValueZero {
			sb.WriteString("-")
		}
		pliesToMate := int(ValueCheckMate) - absInt(int(v))
		sb.WriteString(strconv.Itoa((pliesToMate + 1) / 2))
	case v == ValueNA:
		sb.WriteString("N/A")
	default:
		sb.WriteString("cp ")
		sb.WriteString(strconv.Itoa(int(v)))
	}
	return sb.String()
}
