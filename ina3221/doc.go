// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ina3221 controls a Texas Instruments INA3221 triple channel shunt
// and bus voltage monitor over an i2c bus.
//
// The device is configured once, when the Dev is created, for continuous
// shunt and bus conversions on all three channels. Every accessor is then a
// single register read.
//
// Scaling is fixed: 1mV per bus voltage LSB, 5µV per shunt voltage LSB
// (reported in mV) and a 100Ω shunt for the current calculation.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/ina3221.pdf
package ina3221
