//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	"tinygo.org/x/drivers"

	"tftpanel/app"
	"tftpanel/fonts"
	"tftpanel/hal"
	"tftpanel/tft"
	"tftpanel/touch"
)

func main() {
	pcfg := hal.DefaultPeriphConfig()
	flag.StringVar(&pcfg.SPI, "spi", pcfg.SPI, "SPI port name, empty for the first one.")
	flag.Var(&pcfg.Hz, "hz", "SPI clock, e.g. 32MHz.")
	flag.StringVar(&pcfg.DC, "dc", pcfg.DC, "Data/command pin.")
	flag.StringVar(&pcfg.RST, "rst", pcfg.RST, "Reset pin, empty when not wired.")
	flag.StringVar(&pcfg.BL, "bl", pcfg.BL, "Backlight pin, empty when not wired.")
	flag.StringVar(&pcfg.CS, "cs", pcfg.CS, "Display chip select pin, empty when driven by the port.")
	flag.StringVar(&pcfg.TouchCS, "tcs", pcfg.TouchCS, "Touch chip select pin.")
	flag.StringVar(&pcfg.IRQ, "irq", pcfg.IRQ, "Touch interrupt pin, empty when not wired.")
	model := flag.String("model", "ili9341", "Display controller (ili9341, ili9488).")
	rotation := flag.Int("rotation", 3, "Clock-wise rotation in quarter turns.")
	calPath := flag.String("calibration", "", "Touch calibration JSON file.")
	demos := flag.String("demo", "all", "Comma separated demos to play, empty for none.")
	splash := flag.String("splash", "", "BMP or PNG image shown before the sketchpad.")
	verbose := flag.Bool("v", false, "Log source locations.")
	flag.Parse()

	log.SetPrefix("tftpanel: ")
	if *verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := tft.DefaultConfig()
	m, ok := tft.Models[*model]
	if !ok {
		log.Fatalf("unknown model %q", *model)
	}
	cfg.Model = m
	cfg.Rotation = drivers.Rotation(*rotation)

	if err := run(ctx, pcfg, cfg, *calPath, *demos, *splash); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}

func run(ctx context.Context, pcfg hal.PeriphConfig, cfg tft.Config, calPath, demos, splash string) error {
	board, err := hal.OpenPeriph(pcfg)
	if err != nil {
		return err
	}
	defer board.Close()

	cal := touch.DefaultCalibration()
	if calPath != "" {
		if cal, err = loadCalibration(calPath); err != nil {
			return err
		}
	}

	b := board.Bus()
	panel := tft.New(b, board.CS, board.DC, board.BL, board.RST, cfg)
	if err := panel.Configure(); err != nil {
		return fmt.Errorf("configure display: %w", err)
	}
	w, h := panel.Size()
	log.Printf("%s %dx%d ready, max transfer %d bytes", cfg.Model.Name, w, h, b.MaxTxSize())

	tp, err := touch.New(b, board.TouchCS, board.IRQ, touch.Config{Calibration: cal})
	if err != nil {
		return err
	}

	if demos != "" {
		demo := app.NewDemo(panel, app.DemoConfig{Font: fonts.Basic7x13, Pause: time.Second})
		if err := demo.Run(strings.Split(demos, ",")...); err != nil {
			return err
		}
	}

	if splash != "" {
		if err := showSplash(panel, splash); err != nil {
			return err
		}
		time.Sleep(2 * time.Second)
	}

	sketch := app.NewSketchpad(panel, tp, app.SketchConfig{Font: fonts.Basic7x13})
	if err := sketch.Start(); err != nil {
		return err
	}
	log.Print("sketchpad running, interrupt to quit")

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := sketch.Step(); err != nil {
				return err
			}
		}
	}
}

func loadCalibration(path string) (touch.Calibration, error) {
	f, err := os.Open(path)
	if err != nil {
		return touch.Calibration{}, err
	}
	defer f.Close()
	return touch.LoadCalibration(f)
}

// showSplash decodes a BMP or PNG file and draws it centered.
func showSplash(panel *tft.TFTPanel, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("splash %s: %w", path, err)
	}
	log.Printf("splash %s: %s %v", path, format, img.Bounds().Size())

	w, h := panel.Size()
	x := max(int(w)-img.Bounds().Dx(), 0) / 2
	y := max(int(h)-img.Bounds().Dy(), 0) / 2
	if err := panel.FillScreen(tft.Black); err != nil {
		return err
	}
	return panel.DrawImage(uint16(x), uint16(y), img)
}
