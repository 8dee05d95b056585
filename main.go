package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"mapgen/pkg/engine/rng"
	"mapgen/pkg/engine/terminal"
	"mapgen/pkg/game/devtools"
	"mapgen/pkg/game/export"
	"mapgen/pkg/game/generator"
	"mapgen/pkg/game/persistence"
	"mapgen/pkg/game/renderer"
	ebitenrenderer "mapgen/pkg/game/renderer/ebiten"
	"mapgen/pkg/game/renderer/tcellview"
	"mapgen/pkg/game/renderer/tui"
	"mapgen/pkg/game/state"
)

// Exit codes
const (
	exitOK                = 0
	exitGenerationFailed  = 1
	exitInvalidParameters = 2
)

const progressBarWidth = 20

type options struct {
	seed      int
	size      string
	hidden    string
	niches    string
	deception string

	out    string
	dump   string
	html   string
	render string
	reveal bool
	verify bool

	store string
	db    string
	save  string
	load  string
	list  bool

	devGrid string

	localeDir string
	lang      string
	quiet     bool
	verbose   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("mapgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.IntVar(&o.seed, "seed", -1, "seed 0..65535 (default: from the clock)")
	fs.StringVar(&o.size, "size", "medium", "map size: small, medium, large or 0..2")
	fs.StringVar(&o.hidden, "hidden", "low", "hidden room level: low, med, high or 0..2")
	fs.StringVar(&o.niches, "niches", "low", "niche level: low, med, high or 0..2")
	fs.StringVar(&o.deception, "deception", "low", "deception corridor level: low, med, high or 0..2")

	fs.StringVar(&o.out, "out", "", "write the packed binary floor to this file")
	fs.StringVar(&o.dump, "dump", "", "write a text dump to this file")
	fs.StringVar(&o.html, "html", "", "write an HTML screenshot to this file")
	fs.StringVar(&o.render, "render", "print", "output: print, tui, tcell, ebiten or none")
	fs.BoolVar(&o.reveal, "reveal", false, "show secret doors")
	fs.BoolVar(&o.verify, "verify", false, "check every floor invariant after generation")

	fs.StringVar(&o.store, "store", envOr("MAPGEN_STORE", "json"), "floor archive: json or postgres")
	fs.StringVar(&o.db, "db", "", "archive file or connection string (default: MAPGEN_DB_FILE or DATABASE_URL)")
	fs.StringVar(&o.save, "save", "", "archive the floor under this name")
	fs.StringVar(&o.load, "load", "", "regenerate an archived floor instead of using -seed and presets")
	fs.BoolVar(&o.list, "list", false, "list archived floors and exit")

	fs.StringVar(&o.devGrid, "devgrid", "", "write the tile palette test grid as a packed binary to this file and exit")

	fs.StringVar(&o.localeDir, "locale", "", "directory holding <lang>/LC_MESSAGES/default.po")
	fs.StringVar(&o.lang, "lang", renderer.DefaultLanguage, "message language")
	fs.BoolVar(&o.quiet, "q", false, "no progress output")
	fs.BoolVar(&o.verbose, "v", false, "log generator warnings to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if o.seed < -1 || o.seed > 0xFFFF {
		return nil, fmt.Errorf("%w: seed %d", generator.ErrInvalidParameter, o.seed)
	}
	if o.db == "" {
		if o.store == "postgres" {
			o.db = os.Getenv("DATABASE_URL")
		} else {
			o.db = os.Getenv("MAPGEN_DB_FILE")
		}
	}
	return o, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fail(stderr, err)
		return exitInvalidParameters
	}

	if err := renderer.InitLocale(o.localeDir, o.lang); err != nil {
		fail(stderr, err)
		return exitInvalidParameters
	}

	if o.list {
		return listFloors(o, stdout, stderr)
	}
	if o.devGrid != "" {
		grid := devtools.DevGrid()
		if err := export.SaveBinary(o.devGrid, grid); err != nil {
			fail(stderr, err)
			return exitGenerationFailed
		}
		fmt.Fprintln(stdout, fmt.Sprintf(gotext.Get("CLI_SAVED"), o.devGrid))
		return exitOK
	}

	g := generator.New()
	if o.verbose {
		g.Logger = log.New(stderr, "mapgen: ", 0)
	}
	if !o.quiet {
		g.Progress = progressBar(stderr)
	}

	var rec *persistence.FloorRecord
	if o.load != "" {
		rec, err = loadRecord(o)
		if err != nil {
			fail(stderr, err)
			return exitGenerationFailed
		}
		if err := rec.Configure(g); err != nil {
			fail(stderr, err)
			return exitInvalidParameters
		}
		fmt.Fprintln(stdout, fmt.Sprintf(gotext.Get("CLI_LOADED"), rec.Name, rec.Seed))
	} else {
		cfg, err := presetConfig(o)
		if err != nil {
			fail(stderr, err)
			return exitInvalidParameters
		}
		if err := g.SetParameters(cfg); err != nil {
			fail(stderr, err)
			return exitInvalidParameters
		}
		seed := uint16(o.seed)
		if o.seed < 0 {
			seed = rng.ClockSeed()
		}
		g.Init(seed)
		if !o.quiet {
			fmt.Fprintln(stderr, fmt.Sprintf(gotext.Get("CLI_GENERATING"), seed, cfg.MapSize.String()))
		}
	}

	if err := g.GenerateDungeon(); err != nil {
		fail(stderr, err)
		return exitCode(err)
	}
	f := g.Floor()
	if rec != nil {
		if err := rec.Check(f); err != nil {
			fail(stderr, err)
			return exitGenerationFailed
		}
	}

	fmt.Fprintln(stdout, fmt.Sprintf(gotext.Get("CLI_SUMMARY"), f.Width(), f.Height(), f.RoomCount(), len(f.Corridors()), len(f.SecretDoors())))

	if o.verify {
		if err := f.Validate(); err != nil {
			fail(stderr, err)
			return exitGenerationFailed
		}
		fmt.Fprintln(stdout, color.Green.Sprint(gotext.Get("CLI_VERIFIED")))
	}

	if code := writeOutputs(o, f, stdout, stderr); code != exitOK {
		return code
	}

	return present(o, g, stdout, stderr)
}

func presetConfig(o *options) (generator.Config, error) {
	var cfg generator.Config
	var err error
	if cfg.MapSize, err = generator.ParseMapSize(o.size); err != nil {
		return cfg, err
	}
	if cfg.HiddenRooms, err = generator.ParseLevel(o.hidden); err != nil {
		return cfg, err
	}
	if cfg.Niches, err = generator.ParseLevel(o.niches); err != nil {
		return cfg, err
	}
	if cfg.Deception, err = generator.ParseLevel(o.deception); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// exitCode maps a generation error onto the process exit code
func exitCode(err error) int {
	if errors.Is(err, generator.ErrInvalidParameter) {
		return exitInvalidParameters
	}
	return exitGenerationFailed
}

func fail(w io.Writer, err error) {
	fmt.Fprintln(w, color.Red.Sprintf("mapgen: %v", err))
}

// progressBar draws one bar line per reported phase
func progressBar(w io.Writer) generator.ProgressFunc {
	return func(p generator.Progress) {
		filled := p.Percent() * progressBarWidth / 100
		bar := strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled)
		fmt.Fprintf(w, "[%s] %3d%% %s\n", color.Cyan.Sprint(bar), p.Percent(), p.Phase.Label())
	}
}

func openStore(o *options) (persistence.Storage, error) {
	return persistence.Open(o.store, o.db)
}

func loadRecord(o *options) (*persistence.FloorRecord, error) {
	store, err := openStore(o)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.LoadFloor(o.load)
}

func listFloors(o *options, stdout, stderr io.Writer) int {
	store, err := openStore(o)
	if err != nil {
		fail(stderr, err)
		return exitGenerationFailed
	}
	defer store.Close()

	names, err := store.ListFloors()
	if err != nil {
		fail(stderr, err)
		return exitGenerationFailed
	}
	if len(names) == 0 {
		fmt.Fprintln(stdout, gotext.Get("CLI_NO_FLOORS"))
	}
	for _, name := range names {
		fmt.Fprintln(stdout, name)
	}
	return exitOK
}

// writeOutputs writes every file the flags ask for and archives the floor
func writeOutputs(o *options, f *generator.Floor, stdout, stderr io.Writer) int {
	if o.out != "" {
		if err := export.SaveBinary(o.out, f); err != nil {
			fail(stderr, err)
			return exitGenerationFailed
		}
		fmt.Fprintln(stdout, fmt.Sprintf(gotext.Get("CLI_SAVED"), o.out))
	}
	if o.dump != "" {
		path, err := devtools.DumpFloorToFile(f, o.dump)
		if err != nil {
			fail(stderr, err)
			return exitGenerationFailed
		}
		fmt.Fprintln(stdout, fmt.Sprintf(gotext.Get("CLI_SAVED"), path))
	}
	if o.html != "" {
		path, err := devtools.SaveScreenshotHTML(f, o.html, o.reveal, nil)
		if err != nil {
			fail(stderr, err)
			return exitGenerationFailed
		}
		fmt.Fprintln(stdout, fmt.Sprintf(gotext.Get("CLI_SAVED"), path))
	}
	if o.save != "" {
		store, err := openStore(o)
		if err != nil {
			fail(stderr, err)
			return exitGenerationFailed
		}
		defer store.Close()
		if err := store.SaveFloor(persistence.NewFloorRecord(o.save, f)); err != nil {
			fail(stderr, err)
			return exitGenerationFailed
		}
		fmt.Fprintln(stdout, fmt.Sprintf(gotext.Get("CLI_STORED"), o.save))
	}
	return exitOK
}

// present shows the floor with the selected renderer
func present(o *options, g *generator.Generator, stdout, stderr io.Writer) int {
	switch o.render {
	case "none":
		return exitOK

	case "print":
		t := tui.New()
		t.Out = stdout
		t.PrintFloor(g.Floor(), o.reveal)
		return exitOK

	case "tui":
		t := tui.New()
		t.Out = stdout
		if !terminal.IsInteractive() {
			t.PrintFloor(g.Floor(), o.reveal)
			return exitOK
		}
		return interactive(t, newSession(o, g), stderr)

	case "tcell":
		v := tcellview.New()
		s := newSession(o, g)
		v.Attach(s)
		return interactive(v, s, stderr)

	case "ebiten":
		e := ebitenrenderer.New()
		renderer.SetRenderer(e)
		if err := e.Run(newSession(o, g)); err != nil {
			fail(stderr, err)
			return exitGenerationFailed
		}
		return exitOK

	default:
		fail(stderr, fmt.Errorf("unknown renderer %q", o.render))
		return exitInvalidParameters
	}
}

func newSession(o *options, g *generator.Generator) *state.Session {
	s := state.NewSession(g)
	s.RevealSecrets = o.reveal
	s.AddMessage(fmt.Sprintf(gotext.Get("MSG_GENERATED"), g.Seed(), g.Floor().RoomCount()))
	return s
}

// interactive drives a blocking renderer until the user quits
func interactive(r renderer.Renderer, s *state.Session, stderr io.Writer) int {
	renderer.SetRenderer(r)
	if err := r.Init(); err != nil {
		fail(stderr, err)
		return exitGenerationFailed
	}
	defer r.Close()
	renderer.Run(r, s)
	return exitOK
}
