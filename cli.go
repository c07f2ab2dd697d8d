package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"objdemo/emu/log"
)

type mode byte

const (
	runMode      mode = iota // Show the demo in a window
	headlessMode             // Run the demo without display
	dumpMode                 // Run headless then dump console state
	tilesMode                // Print tile bitmaps
	versionMode              // Show objdemo version
)

type (
	CLI struct {
		Run      Run      `cmd:"" help:"Run the demo in a window. (default command)" default:"withargs"`
		Headless Headless `cmd:"" help:"Run the demo without display."`
		Dump     Dump     `cmd:"" help:"Run the demo headless, then print the console state as JSON."`
		Tiles    Tiles    `cmd:"" help:"Print the tile bitmaps."`
		Version  Version  `cmd:"" help:"Show objdemo version."`

		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		Config string     `help:"${config_help}" type:"path" placeholder:"FILE"`

		mode mode
	}

	Run struct {
		Monitor     *int32 `name:"monitor" help:"Monitor index to use."`
		Scale       int    `name:"scale" help:"Window scale factor (overrides config)."`
		Unthrottled bool   `name:"unthrottled" help:"Don't limit the frame rate."`
	}

	Headless struct {
		Frames     int64  `name:"frames" help:"Number of frames to run." default:"300"`
		PNG        string `name:"png" help:"Save the last frame as a PNG file." type:"path" placeholder:"FILE"`
		Scale      int    `name:"scale" help:"Scale factor of the saved PNG." default:"1"`
		Hashes     bool   `name:"hashes" help:"Print the hash of every frame."`
		CPUProfile string `name:"cpuprofile" help:"${cpuprofile_help}" type:"path"`
	}

	Dump struct {
		Frames int64    `name:"frames" help:"Number of frames to run before dumping." default:"300"`
		Out    *outfile `name:"out" help:"Write the dump to FILE." placeholder:"FILE|stdout|stderr"`
	}

	Tiles struct{}

	Version struct{}
)

var vars = kong.Vars{
	"config_help":     "Configuration file. (default: config.toml in the user config directory)",
	"cpuprofile_help": "Write CPU profile to file.",
	"log_help":        "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("objdemo"),
		kong.Description("Sprite demo on a handheld console video model."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "headless":
		cfg.mode = headlessMode
	case "dump":
		cfg.mode = dumpMode
	case "tiles":
		cfg.mode = tilesMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if ctx.Command() != "version" && ctx.Command() != "tiles" {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	mask, nolog, err := parseLogModules(ctx.Scan.Pop().Value.(string))
	if err != nil {
		return err
	}
	if nolog {
		log.Disable()
		return nil
	}
	log.EnableDebugModules(mask)
	return nil
}

func parseLogModules(s string) (mask log.ModuleMask, nolog bool, err error) {
	allLogs := false
	for _, v := range strings.Split(s, ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return 0, false, fmt.Errorf("unknown log module %s", v)
			}
			mask |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return 0, false, fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if mask != 0 {
			return 0, false, fmt.Errorf("cannot combine 'no' with other log modules")
		}
		return 0, true, nil
	}

	if allLogs {
		mask = log.ModuleMaskAll
	}
	return mask, false, nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
