// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// ina3221 reads an INA3221 once and prints the result.
//
// By default it prints the current on channel 2. Use -c 0 to print the bus
// voltage, shunt voltage and current of all three channels.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/GermanBionicSystems/devices/ina3221"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/host/v3"
)

var (
	positive = color.NRGBA{0x00, 0xc0, 0x00, 0xff}
	negative = color.NRGBA{0xc0, 0x00, 0x00, 0xff}
)

// block returns a colored cell showing the direction of the current.
func block(p *ansi256.Palette, current float64) string {
	c := positive
	if current < 0 {
		c = negative
	}
	return p.Block(c) + "\033[0m"
}

func printCurrent(w io.Writer, p *ansi256.Palette, dev *ina3221.Dev, ch ina3221.Channel) error {
	current, err := dev.Current(ch)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s Current (Channel %d): %v mA\n", block(p, current), ch, current)
	return err
}

func printAll(w io.Writer, p *ansi256.Palette, dev *ina3221.Dev) error {
	for _, ch := range []ina3221.Channel{ina3221.Channel1, ina3221.Channel2, ina3221.Channel3} {
		r, err := dev.Measure(ch)
		if err != nil {
			return err
		}
		current := float64(r.Current) / 1e6
		if _, err := fmt.Fprintf(w, "%s Channel %d: %-10s %-10s %s\n", block(p, current), ch, r.Bus, r.Shunt, r.Current); err != nil {
			return err
		}
	}
	return nil
}

func mainImpl() error {
	busName := flag.String("b", ina3221.DefaultBus, "I²C bus to use")
	addr := flag.Uint("a", uint(ina3221.DefaultAddress), "I²C address of the device")
	channel := flag.Int("c", 2, "channel to read, 1 to 3, or 0 for all of them")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *addr > 0x7f {
		return fmt.Errorf("invalid address 0x%x", *addr)
	}

	state, err := host.Init()
	if err != nil {
		return err
	}
	log.Printf("drivers loaded: %d", len(state.Loaded))

	dev, err := ina3221.Open(*busName, i2c.Addr(*addr))
	if err != nil {
		return err
	}
	defer dev.Close()
	log.Printf("using %s", dev)

	w := colorable.NewColorableStdout()
	if *channel == 0 {
		return printAll(w, ansi256.Default, dev)
	}
	return printCurrent(w, ansi256.Default, dev, ina3221.Channel(*channel))
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "ina3221: %s.\n", err)
		os.Exit(1)
	}
}
