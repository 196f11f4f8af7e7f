// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, decoding the 16 bit big-endian registers found in TI power
// monitors.
package common

// Word returns the first two bytes of b as a big-endian 16 bit value, which
// is the order register words travel on the wire.
func Word(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

// PutWord writes v into b[:2], high byte first.
func PutWord(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

// Int16 reinterprets a raw register word as a two's complement value. Words
// above 32767 map to v-65536.
func Int16(v uint16) int16 {
	return int16(v)
}
