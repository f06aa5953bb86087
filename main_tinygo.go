//go:build tinygo

package main

import (
	"log"
	"machine"
	"time"

	"tftpanel/app"
	"tftpanel/fonts"
	"tftpanel/hal"
	"tftpanel/tft"
	"tftpanel/touch"
)

// touch controller wiring, board specific
const (
	touchCSPin  = machine.D10
	touchIRQPin = machine.D9
)

func main() {
	machine.SPI2.Configure(machine.SPIConfig{
		SCK:       machine.TFT_SCK_PIN,
		SDO:       machine.TFT_SDO_PIN,
		SDI:       machine.TFT_SDI_PIN,
		LSBFirst:  false,
		Mode:      machine.SPI_MODE0,
		Frequency: 40e6,
	})

	board := hal.NewMachineBoard(&machine.SPI2, hal.MachinePins{
		DC:      machine.TFT_DC_PIN,
		RST:     machine.NoPin,
		BL:      machine.TFT_BL_PIN,
		CS:      machine.TFT_CS_PIN,
		TouchCS: touchCSPin,
		IRQ:     touchIRQPin,
	})
	b := board.Bus()

	panel := tft.New(b, board.CS, board.DC, board.BL, board.RST, tft.DefaultConfig())
	if err := panel.Configure(); err != nil {
		log.Fatal("configure display: ", err)
	}

	tp, err := touch.New(b, board.TouchCS, board.IRQ, touch.Config{Calibration: touch.DefaultCalibration()})
	if err != nil {
		log.Fatal(err)
	}

	demo := app.NewDemo(panel, app.DemoConfig{Font: fonts.Basic7x13, Pause: time.Second})
	if err := demo.Run("all"); err != nil {
		log.Print(err)
	}

	if err := splash(panel, "/logo.bmp"); err != nil {
		log.Print("splash: ", err)
	}
	time.Sleep(2 * time.Second)

	sketch := app.NewSketchpad(panel, tp, app.SketchConfig{Font: fonts.Basic7x13})
	if err := sketch.Start(); err != nil {
		log.Fatal(err)
	}
	for {
		if _, err := sketch.Step(); err != nil {
			log.Print(err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// splash streams a 24-bit BMP from the SD card to the top-left corner.
func splash(panel *tft.TFTPanel, name string) error {
	f, err := hal.OpenSD(&machine.SPI2, hal.SDPins{
		SCK: machine.SD_SCK_PIN,
		SDO: machine.SD_SDO_PIN,
		SDI: machine.SD_SDI_PIN,
		CS:  machine.SD_CS_PIN,
	}, name)
	if err != nil {
		return err
	}
	defer f.Close()

	bi, err := tft.ReadBMPHeader(f)
	if err != nil {
		return err
	}
	return panel.DisplayBitmap(0, 0, bi, f)
}
