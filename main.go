package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/veandco/go-sdl2/sdl"

	"objdemo/demo"
	"objdemo/emu"
	"objdemo/emu/log"
	"objdemo/hw"
)

const version = "0.1.0"

func main() {
	args := parseArgs(os.Args[1:])

	switch args.mode {
	case versionMode:
		fmt.Println("objdemo", version)
	case tilesMode:
		tilesMain()
	case headlessMode:
		headlessMain(args.Headless, loadConfig(args.Config))
	case dumpMode:
		dumpMain(args.Dump, loadConfig(args.Config))
	case runMode:
		runMain(args.Run, loadConfig(args.Config))
	}
}

func loadConfig(path string) emu.Config {
	if path == "" {
		return emu.LoadConfigOrDefault()
	}
	cfg, err := emu.LoadConfig(path)
	checkf(err, "failed to load config %s", path)
	return cfg
}

// runMain shows the demo in a window, until it's closed.
func runMain(args Run, cfg emu.Config) {
	if args.Monitor != nil {
		cfg.Video.Monitor = *args.Monitor
	}
	if args.Scale != 0 {
		cfg.Video.Scale = args.Scale
	}
	if args.Unthrottled {
		cfg.Emulation.Unthrottled = true
	}
	cfg.Check()

	var exitcode int
	sdl.Main(func() {
		win, err := hw.NewWindow(hw.WindowConfig{
			Title:        "objdemo",
			Scale:        cfg.Video.Scale,
			Monitor:      cfg.Video.Monitor,
			DisableVSync: cfg.Video.DisableVSync,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create window: %v\n", err)
			exitcode = 1
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := emu.New(cfg, win, 0).Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "emulation error: %v\n", err)
			exitcode = 1
		}
	})
	os.Exit(exitcode)
}

// headlessMain runs a fixed number of frames without display.
func headlessMain(args Headless, cfg emu.Config) {
	if args.Frames <= 0 {
		fatalf("--frames must be positive")
	}
	cfg.Emulation.Unthrottled = true

	hcfg := hw.HeadlessConfig{KeepHashes: args.Hashes}
	if args.PNG != "" {
		hcfg.SaveFrameNum = args.Frames - 1
		hcfg.SaveFramePath = args.PNG
		hcfg.SaveFrameScale = args.Scale
	}
	sink := hw.NewHeadless(hcfg)

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
			fmt.Println("CPU profile written to", args.CPUProfile)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := emu.New(cfg, sink, args.Frames)
	checkf(e.Run(ctx), "emulation failed")

	if args.Hashes {
		for i, h := range sink.Hashes() {
			fmt.Printf("%d %016x\n", i, h)
		}
	}
	log.ModEmu.InfoZ("headless run done").
		Int64("frames", sink.Presented()).
		Int("x", e.State.X).
		Int("y", e.State.Y).
		End()
}

// dumpMain runs frames headless then writes the console state as JSON.
func dumpMain(args Dump, cfg emu.Config) {
	if args.Frames <= 0 {
		fatalf("--frames must be positive")
	}
	cfg.Emulation.Unthrottled = true

	out := args.Out
	if out == nil {
		out = &outfile{w: os.Stdout, name: "stdout", close: func() error { return nil }}
	}
	defer out.Close()

	e := emu.New(cfg, hw.NewHeadless(hw.HeadlessConfig{}), args.Frames)
	checkf(e.Run(context.Background()), "emulation failed")
	checkf(e.Dump(out), "failed to dump state")
}

func tilesMain() {
	for _, t := range demo.Tiles() {
		loaded := "never loaded"
		if t.Slot >= 0 {
			loaded = fmt.Sprintf("slot %d", t.Slot)
		}
		fmt.Printf("%s (%s)\n%s\n", t.Name, loaded, t.Tile)
	}
}
