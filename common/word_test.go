// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import "testing"

func TestWord(t *testing.T) {
	var tests = []struct {
		bytes  []byte
		result uint16
	}{
		{bytes: []byte{0x00, 0x00}, result: 0x0000},
		{bytes: []byte{0x34, 0x12}, result: 0x3412},
		{bytes: []byte{0x75, 0x27}, result: 0x7527},
		{bytes: []byte{0xff, 0xff, 0x01}, result: 0xffff},
	}
	for _, test := range tests {
		res := Word(test.bytes)
		if res != test.result {
			t.Errorf("Word(%#v)!=0x%x received 0x%x", test.bytes, test.result, res)
		}
	}
}

func TestPutWord(t *testing.T) {
	for _, v := range []uint16{0, 1, 0x00ff, 0xff00, 0x7527, 0x8000, 0xffff} {
		b := make([]byte, 2)
		PutWord(b, v)
		if b[0] != byte(v>>8) || b[1] != byte(v&0xff) {
			t.Errorf("PutWord(0x%x) wrote %#v", v, b)
		}
		if got := Word(b); got != v {
			t.Errorf("Word(PutWord(0x%x))=0x%x", v, got)
		}
	}
}

func TestInt16(t *testing.T) {
	var tests = []struct {
		v      uint16
		result int16
	}{
		{v: 0, result: 0},
		{v: 1, result: 1},
		{v: 32767, result: 32767},
		{v: 32768, result: -32768},
		{v: 65535, result: -1},
		{v: 0xfff6, result: -10},
	}
	for _, test := range tests {
		if res := Int16(test.v); res != test.result {
			t.Errorf("Int16(%d)!=%d received %d", test.v, test.result, res)
		}
	}
	// Exhaustive check against the arithmetic definition.
	for v := 0; v <= 0xffff; v++ {
		want := v
		if v > 32767 {
			want = v - 65536
		}
		if got := int(Int16(uint16(v))); got != want {
			t.Fatalf("Int16(%d)=%d expected %d", v, got, want)
		}
	}
}
