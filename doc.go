// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package devices is a container for device drivers.
//
// The ina3221 package drives the TI INA3221 triple channel power monitor and
// cmd/ina3221 reads it from the command line.
package devices
