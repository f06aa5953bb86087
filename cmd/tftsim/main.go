//go:build !tinygo

// Command tftsim runs the demos and the sketchpad against the emulated
// panel in a desktop window. The left mouse button acts as the pen.
package main

import (
	"flag"
	"image"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"tftpanel/app"
	"tftpanel/bus"
	"tftpanel/fonts"
	"tftpanel/internal/sim"
	"tftpanel/tft"
	"tftpanel/touch"
)

type game struct {
	sim    *sim.Sim
	cal    touch.Calibration
	sketch *app.Sketchpad
	width  int
	height int
	frame  *image.RGBA
}

func (g *game) Update() error {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if x >= 0 && y >= 0 && x < g.width && y < g.height {
			// the touch frame is portrait, the display landscape
			rawX, rawY := g.cal.Unmap(uint16(y), uint16(x))
			g.sim.Press(rawX, rawY)
		}
	} else {
		g.sim.Release()
	}
	_, err := g.sketch.Step()
	return err
}

func (g *game) Draw(screen *ebiten.Image) {
	g.frame = g.sim.Frame(g.frame)
	screen.WritePixels(g.frame.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	scale := flag.Int("scale", 2, "Window scale factor.")
	demos := flag.String("demo", "all", "Comma separated demos to play before the sketchpad, empty for none.")
	maxTx := flag.Int("maxtx", bus.DefaultMaxTxSize, "Largest single SPI transfer.")
	verbose := flag.Bool("v", false, "Log source locations.")
	flag.Parse()

	log.SetPrefix("tftsim: ")
	if *verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	s := sim.New(320, 240)
	b := bus.New(s, bus.Config{MaxTxSize: *maxTx, Delay: s.Delay})
	panel := tft.New(b, s.DisplayCS, s.DC, s.BL, s.RST, tft.DefaultConfig())
	if err := panel.Configure(); err != nil {
		log.Fatal(err)
	}

	cal := touch.DefaultCalibration()
	tp, err := touch.New(b, s.TouchCS, s.IRQ, touch.Config{Calibration: cal})
	if err != nil {
		log.Fatal(err)
	}

	if *demos != "" {
		demo := app.NewDemo(panel, app.DemoConfig{
			Font:  fonts.Basic7x13,
			Sleep: func(time.Duration) {},
		})
		if err := demo.Run(strings.Split(*demos, ",")...); err != nil {
			log.Fatal(err)
		}
	}

	sketch := app.NewSketchpad(panel, tp, app.SketchConfig{Font: fonts.Basic7x13})
	if err := sketch.Start(); err != nil {
		log.Fatal(err)
	}

	w, h := panel.Size()
	sc := max(*scale, 1)
	g := &game{
		sim:    s,
		cal:    cal,
		sketch: sketch,
		width:  int(w),
		height: int(h),
	}
	ebiten.SetWindowTitle("tftsim")
	ebiten.SetWindowSize(g.width*sc, g.height*sc)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	if n := s.Violations(); n > 0 {
		log.Printf("%d bus select violations", n)
	}
}
