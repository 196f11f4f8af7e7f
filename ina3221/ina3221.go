// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ina3221

import (
	"fmt"
	"io"
	"sync"

	"github.com/GermanBionicSystems/devices/common"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
)

// Channel selects one of the three monitored inputs. Values outside
// Channel1..Channel3 are not rejected; they address registers past the
// channel block and the result is whatever the device returns.
type Channel int

const (
	Channel1 Channel = 1
	Channel2 Channel = 2
	Channel3 Channel = 3
)

const (
	// DefaultAddress is the address with A0 tied to GND.
	DefaultAddress i2c.Addr = 0x40
	// DefaultBus is the bus opened by Open when no name is given.
	DefaultBus = "1"

	// ShuntResistance is the shunt value, in ohms, used by Current.
	ShuntResistance = 100

	busVoltageScale   = 0.001 // V per LSB
	shuntVoltageScale = 0.005 // mV per LSB
)

// Configuration register bits.
const (
	ConfigReset      uint16 = 0x8000
	ConfigEnableCh1  uint16 = 0x4000
	ConfigEnableCh2  uint16 = 0x2000
	ConfigEnableCh3  uint16 = 0x1000
	ConfigAvg1       uint16 = 0x0400
	ConfigVBusCT2    uint16 = 0x0100
	ConfigVShCT2     uint16 = 0x0020
	ConfigMode2      uint16 = 0x0004
	ConfigMode1      uint16 = 0x0002
	ConfigMode0      uint16 = 0x0001
	ConfigContinuous uint16 = ConfigMode2 | ConfigMode1 | ConfigMode0

	// DefaultConfig enables all channels in continuous shunt and bus mode.
	DefaultConfig = ConfigEnableCh1 | ConfigEnableCh2 | ConfigEnableCh3 |
		ConfigAvg1 | ConfigVBusCT2 | ConfigVShCT2 | ConfigContinuous
)

const (
	regConfig         uint8 = 0x00 // CONFIGURATION REGISTER (R/W)
	regShuntVoltage1  uint8 = 0x01 // CHANNEL 1 SHUNT VOLTAGE (R)
	regBusVoltage1    uint8 = 0x02 // CHANNEL 1 BUS VOLTAGE (R)
	regManufacturerID uint8 = 0xFE // MANUFACTURER ID (R)
	regDieID          uint8 = 0xFF // DIE ID (R)
)

// Reading is one channel's measurements expressed as physical quantities.
type Reading struct {
	Bus     physic.ElectricPotential
	Shunt   physic.ElectricPotential
	Current physic.ElectricCurrent
}

func (r Reading) String() string {
	return fmt.Sprintf("%s %s %s", r.Bus, r.Shunt, r.Current)
}

// Dev is a handle to an INA3221.
type Dev struct {
	d      *i2c.Dev
	closer io.Closer
	mu     sync.Mutex
}

// New returns a Dev on bus at addr and writes DefaultConfig to the device.
//
// The caller keeps ownership of bus.
func New(bus i2c.Bus, addr i2c.Addr) (*Dev, error) {
	dev := &Dev{d: &i2c.Dev{Bus: bus, Addr: uint16(addr)}}
	if err := dev.init(); err != nil {
		return nil, err
	}
	return dev, nil
}

// Open opens the i2c bus named busName through i2creg and returns a Dev on
// it. An empty name opens DefaultBus. The bus is released by Close.
func Open(busName string, addr i2c.Addr) (*Dev, error) {
	if busName == "" {
		busName = DefaultBus
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("ina3221: error opening bus %q %w", busName, err)
	}
	dev, err := New(bus, addr)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	dev.closer = bus
	return dev, nil
}

func (dev *Dev) init() error {
	if err := dev.writeRegister(regConfig, DefaultConfig); err != nil {
		return fmt.Errorf("ina3221: error writing configuration %w", err)
	}
	return nil
}

// writeRegister sends data high byte first after the register address.
func (dev *Dev) writeRegister(reg uint8, data uint16) error {
	w := []byte{reg, 0, 0}
	common.PutWord(w[1:], data)
	return dev.d.Tx(w, nil)
}

func (dev *Dev) readRegister(reg uint8) (uint16, error) {
	r := make([]byte, 2)
	if err := dev.d.Tx([]byte{reg}, r); err != nil {
		return 0, err
	}
	return common.Word(r), nil
}

func (dev *Dev) readSigned(reg uint8) (int16, error) {
	v, err := dev.readRegister(reg)
	if err != nil {
		return 0, fmt.Errorf("ina3221: error reading register 0x%02x %w", reg, err)
	}
	return common.Int16(v), nil
}

func busVoltageRegister(ch Channel) uint8 {
	return regBusVoltage1 + uint8((ch-1)*2)
}

func shuntVoltageRegister(ch Channel) uint8 {
	return regShuntVoltage1 + uint8((ch-1)*2)
}

// BusVoltageRaw returns the signed bus voltage register of ch.
func (dev *Dev) BusVoltageRaw(ch Channel) (int16, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.readSigned(busVoltageRegister(ch))
}

// ShuntVoltageRaw returns the signed shunt voltage register of ch.
func (dev *Dev) ShuntVoltageRaw(ch Channel) (int16, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.readSigned(shuntVoltageRegister(ch))
}

// BusVoltage returns the bus voltage of ch in volts.
func (dev *Dev) BusVoltage(ch Channel) (float64, error) {
	raw, err := dev.BusVoltageRaw(ch)
	if err != nil {
		return 0, err
	}
	return float64(raw) * busVoltageScale, nil
}

// ShuntVoltage returns the shunt voltage of ch in millivolts.
func (dev *Dev) ShuntVoltage(ch Channel) (float64, error) {
	raw, err := dev.ShuntVoltageRaw(ch)
	if err != nil {
		return 0, err
	}
	return float64(raw) * shuntVoltageScale, nil
}

// Current returns the current through the shunt of ch in milliamps.
func (dev *Dev) Current(ch Channel) (float64, error) {
	shunt, err := dev.ShuntVoltage(ch)
	if err != nil {
		return 0, err
	}
	return shunt / ShuntResistance * 1000, nil
}

// Measure reads the shunt and bus voltage registers of ch and returns them,
// with the derived current, as physic values.
func (dev *Dev) Measure(ch Channel) (Reading, error) {
	var r Reading
	dev.mu.Lock()
	defer dev.mu.Unlock()
	shunt, err := dev.readSigned(shuntVoltageRegister(ch))
	if err != nil {
		return r, err
	}
	bus, err := dev.readSigned(busVoltageRegister(ch))
	if err != nil {
		return r, err
	}
	r.Bus = physic.ElectricPotential(bus) * physic.MilliVolt
	// 0.005mV per LSB.
	r.Shunt = physic.ElectricPotential(shunt) * 5 * physic.MicroVolt
	// 0.005mV / 100 * 1000 = 0.05mA per LSB.
	r.Current = physic.ElectricCurrent(shunt) * 50 * physic.MicroAmpere
	return r, nil
}

// Configuration returns the content of the configuration register.
func (dev *Dev) Configuration() (uint16, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := dev.readRegister(regConfig)
	if err != nil {
		return 0, fmt.Errorf("ina3221: error reading configuration %w", err)
	}
	return v, nil
}

// Reset issues a software reset, which returns every register to its power
// on value, then writes DefaultConfig again.
func (dev *Dev) Reset() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := dev.writeRegister(regConfig, ConfigReset); err != nil {
		return fmt.Errorf("ina3221: error resetting %w", err)
	}
	return dev.init()
}

// ManufacturerID returns the manufacturer ID register. It reads 0x5449 ("TI").
func (dev *Dev) ManufacturerID() (uint16, error) {
	return dev.readID(regManufacturerID)
}

// DieID returns the die ID register. It reads 0x3220.
func (dev *Dev) DieID() (uint16, error) {
	return dev.readID(regDieID)
}

func (dev *Dev) readID(reg uint8) (uint16, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	id, err := dev.readRegister(reg)
	if err != nil {
		return 0, fmt.Errorf("ina3221: error reading id %w", err)
	}
	return id, nil
}

// Halt implements conn.Resource. The device converts continuously and the
// driver runs nothing in the background, so there is nothing to stop.
func (dev *Dev) Halt() error {
	return nil
}

// Close releases the bus if it was opened by Open.
func (dev *Dev) Close() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.closer == nil {
		return nil
	}
	err := dev.closer.Close()
	dev.closer = nil
	return err
}

func (dev *Dev) String() string {
	return fmt.Sprintf("ina3221: %s", dev.d.String())
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = Reading{}
