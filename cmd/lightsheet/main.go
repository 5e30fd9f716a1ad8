package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/alecthomas/kong"

	"github.com/lukaszgryglicki/lightsheet/internal/lightsheet"
	"github.com/lukaszgryglicki/lightsheet/internal/logger"
)

type Globals struct {
	Debug   bool `help:"Verbose debug logging." env:"DEBUG"`
	Profile bool `help:"Write a CPU profile to cpu.out." env:"PROFILE"`
	PNG     bool `help:"Also save 16-bit PNG slices of the effective PSF." env:"PNG"`
	RAW     bool `help:"Also save float64 raw volumes." env:"RAW"`
	GIF     bool `help:"Also save an animated GIF of the effective PSF." env:"GIF"`
	Plot    bool `help:"Save the MTF profile plot." env:"PLOT" default:"true" negatable:""`
}

type SimulateCmd struct {
	Config string `arg:"" name:"config" help:"System config (.json, .yaml)." type:"existingfile"`
	Out    string `short:"o" help:"Output directory." default:"out"`
	Quiet  bool   `short:"q" help:"Log progress instead of drawing a bar."`
}

func (c *SimulateCmd) Run(g *Globals) error {
	if c.Quiet {
		return lightsheet.Run(c.Config, c.Out, lightsheet.LogProgress)
	}
	bar := lightsheet.NewTerminalProgress(os.Stderr, "dipoles ")
	defer bar.Finish()
	return lightsheet.Run(c.Config, c.Out, bar)
}

type SpecsCmd struct {
	Config string `arg:"" name:"config" help:"System config (.json, .yaml)." type:"existingfile"`
}

func (c *SpecsCmd) Run(g *Globals) error {
	return lightsheet.PrintSpecs(c.Config, os.Stdout)
}

var CLI struct {
	Globals

	Simulate SimulateCmd `cmd:"" help:"Simulate PSF and MTF of a light-sheet system."`
	Specs    SpecsCmd    `cmd:"" help:"Print the derived system specs."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("lightsheet"),
		kong.Description("Polarized PSF/MTF simulator for multi-element light-sheet microscopes."),
		kong.UsageOnError(),
	)

	lightsheet.PNG = CLI.PNG
	lightsheet.RAW = CLI.RAW
	lightsheet.GIF = CLI.GIF
	lightsheet.Plot = CLI.Plot
	if err := logger.Init(CLI.Debug); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if CLI.Profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	if err := ctx.Run(&CLI.Globals); err != nil {
		fmt.Printf("Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}
