// Command kvis builds a scene, reconstructs its walls from k-visibility
// measurements and reports how many walls were recovered.
//
//	kvis -scene wall
//	kvis -scene any -width 12 -height 12 -walls 4 -seed 7 -png out.png
//	kvis -scene grid -width 6 -height 4 -p 0.2 -svg out.svg -v
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"time"

	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/kvis/config"
	"github.com/katalvlaran/kvis/geometry"
	"github.com/katalvlaran/kvis/oracle"
	"github.com/katalvlaran/kvis/overlay"
	"github.com/katalvlaran/kvis/recon"
	"github.com/katalvlaran/kvis/scene"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	scene      string
	width      float64
	height     float64
	walls      int
	seed       int64
	gridP      float64
	minWall    float64
	configPath string
	angles     int
	confidence float64
	mergeMode  string
	workers    int
	halfTurn   bool
	pngPath    string
	svgPath    string
	jsonOut    bool
	verbose    bool
	timeout    time.Duration
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	fs := flag.NewFlagSet("kvis", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &flags{}
	fs.StringVar(&f.scene, "scene", "wall", "Scene: wall, empty, any, straight or grid")
	fs.Float64Var(&f.width, "width", 8, "Building width")
	fs.Float64Var(&f.height, "height", 10, "Building height")
	fs.IntVar(&f.walls, "walls", 4, "Number of random walls (any, straight)")
	fs.Int64Var(&f.seed, "seed", 0, "Random seed (0 selects the default)")
	fs.Float64Var(&f.gridP, "p", 0.15, "Edge probability (grid)")
	fs.Float64Var(&f.minWall, "min-wall", 1, "Minimum wall length (straight)")
	fs.StringVar(&f.configPath, "config", "", "JSON configuration file")
	fs.IntVar(&f.angles, "angles", 0, "Number of ray families (0 keeps the configured value)")
	fs.Float64Var(&f.confidence, "confidence", 0, "Pitch confidence in (0,1) (0 keeps the configured value)")
	fs.StringVar(&f.mergeMode, "merge", "", "Vertex merge mode: union-find or single-pass")
	fs.IntVar(&f.workers, "workers", 0, "Worker goroutines (0 means GOMAXPROCS)")
	fs.BoolVar(&f.halfTurn, "half-turn", false, "Sweep angles in (0, π/2) only")
	fs.StringVar(&f.pngPath, "png", "", "Write a PNG overlay to this path")
	fs.StringVar(&f.svgPath, "svg", "", "Write an SVG overlay to this path")
	fs.BoolVar(&f.jsonOut, "json", false, "Print the result as JSON")
	fs.BoolVar(&f.verbose, "v", false, "Log pipeline progress to stderr")
	fs.DurationVar(&f.timeout, "timeout", 0, "Abort after this long (0 disables)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "kvis: ", log.LstdFlags)

	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	sc, grid, err := buildScene(f)
	if err != nil {
		logger.Printf("scene: %v", err)
		return 1
	}
	opts, err := buildOptions(f, logger)
	if err != nil {
		logger.Printf("options: %v", err)
		return 1
	}

	ctx := context.Background()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := recon.Reconstruct(ctx, sc.Width, sc.Height, sc.Segments(), opts...)
	if err != nil {
		logger.Printf("reconstruct: %v", err)
		return 1
	}
	elapsed := time.Since(start)
	for _, d := range res.Diagnostics {
		logger.Printf("diagnostic: %v", d)
	}

	if f.pngPath != "" {
		if err := overlay.SavePNG(f.pngPath, overlay.FromResult(sc, res), 8*vg.Inch); err != nil {
			logger.Printf("png: %v", err)
			return 1
		}
	}
	if f.svgPath != "" {
		if err := writeSVG(f.svgPath, overlay.FromResult(sc, res)); err != nil {
			logger.Printf("svg: %v", err)
			return 1
		}
	}

	var gs *gridSummary
	if grid != nil {
		if gs, err = readGrid(ctx, grid, opts); err != nil {
			logger.Printf("grid: %v", err)
			return 1
		}
	}

	recovered := countRecovered(sc.Walls, res.Segments, 2*res.Pitch)
	if f.jsonOut {
		if err := writeJSON(stdout, sc, res, recovered, gs); err != nil {
			logger.Printf("json: %v", err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stdout, "run %s: pitch %.6g, %d angles, %d rays, %d candidates, %d vertices (%.2fs)\n",
		res.RunID, res.Pitch, len(res.Angles), res.Stats.Rays, res.Stats.Candidates, res.Stats.Vertices, elapsed.Seconds())
	for _, s := range res.Segments {
		fmt.Fprintf(stdout, "segment (%.4f, %.4f) - (%.4f, %.4f)\n", s.A[0], s.A[1], s.B[0], s.B[1])
	}
	fmt.Fprintf(stdout, "recovered %d/%d walls, %d segments\n", recovered, len(sc.Walls), len(res.Segments))
	if gs != nil {
		fmt.Fprintf(stdout, "grid: %d/%d rooms, exact %t\n", gs.Rooms, gs.TrueRooms, gs.Exact)
	}

	return 0
}

// buildScene returns the scene named by -scene, and its grid for the grid
// scene.
func buildScene(f *flags) (scene.Scene, *scene.Grid, error) {
	var (
		sc  scene.Scene
		err error
	)
	switch f.scene {
	case "wall":
		sc, err = scene.New(f.width, f.height, geometry.Seg(f.width/4, f.height*0.3, f.width*3/4, f.height*0.3))
	case "empty":
		sc, err = scene.New(f.width, f.height)
	case "any":
		sc, err = scene.RandomAny(f.width, f.height, f.walls, f.seed)
	case "straight":
		sc, err = scene.RandomStraight(f.width, f.height, f.walls, f.minWall, f.seed)
	case "grid":
		g, err := scene.NewGrid(int(f.width), int(f.height))
		if err != nil {
			return scene.Scene{}, nil, err
		}
		g.FillRandom(f.gridP, f.seed)
		return g.Scene(), g, nil
	default:
		err = fmt.Errorf("unknown scene %q", f.scene)
	}
	return sc, nil, err
}

// gridSummary compares a grid building with its lattice reading.
type gridSummary struct {
	Rooms     int  `json:"rooms"`
	TrueRooms int  `json:"true_rooms"`
	Exact     bool `json:"exact"`
}

func readGrid(ctx context.Context, g *scene.Grid, opts []recon.Option) (*gridSummary, error) {
	o := g.Scene().Oracle(oracle.DefaultOptions())
	res, err := recon.ReconstructGrid(ctx, g.Width, g.Height, o, opts...)
	if err != nil {
		return nil, err
	}
	return &gridSummary{
		Rooms:     len(res.Grid.Rooms()),
		TrueRooms: len(g.Rooms()),
		Exact:     reflect.DeepEqual(res.Grid.Segments(), g.Segments()),
	}, nil
}

// buildOptions layers the config file, then explicit flags, over the
// library defaults.
func buildOptions(f *flags, logger *log.Logger) ([]recon.Option, error) {
	var opts []recon.Option
	if f.configPath != "" {
		cfg, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cfg.Options()...)
	}

	cfg := config.Config{}
	if f.angles != 0 {
		cfg.AngleCount = &f.angles
	}
	if f.confidence != 0 {
		cfg.Confidence = &f.confidence
	}
	if f.mergeMode != "" {
		cfg.MergeMode = &f.mergeMode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts = append(opts, cfg.Options()...)

	if f.halfTurn {
		opts = append(opts, recon.WithHalfTurn(true))
	}
	if f.workers != 0 {
		opts = append(opts, recon.WithWorkers(f.workers))
	}
	if f.pngPath != "" || f.svgPath != "" {
		opts = append(opts, recon.WithOverlays(true))
	}
	opts = append(opts, recon.WithLogger(logger))
	if f.verbose {
		opts = append(opts, recon.WithVerbose(true))
	}
	return opts, nil
}

func writeSVG(path string, o *overlay.Overlay) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := overlay.WriteSVG(file, o); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// countRecovered counts the walls matched by a reconstructed segment whose
// endpoints lie within tol, in either orientation.
func countRecovered(walls, got []geometry.Segment, tol float64) int {
	n := 0
	for _, w := range walls {
		for _, g := range got {
			fwd := geometry.Distance(w.A, g.A) < tol && geometry.Distance(w.B, g.B) < tol
			rev := geometry.Distance(w.A, g.B) < tol && geometry.Distance(w.B, g.A) < tol
			if fwd || rev {
				n++
				break
			}
		}
	}
	return n
}

type jsonResult struct {
	RunID       string          `json:"run_id"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Pitch       float64         `json:"pitch"`
	Angles      []float64       `json:"angles"`
	Walls       [][2][2]float64 `json:"walls"`
	Segments    [][2][2]float64 `json:"segments"`
	Vertices    [][2]float64    `json:"vertices"`
	Recovered   int             `json:"recovered"`
	Diagnostics []string        `json:"diagnostics,omitempty"`
	Stats       recon.Stats     `json:"stats"`
	Grid        *gridSummary    `json:"grid,omitempty"`
}

func writeJSON(w io.Writer, sc scene.Scene, res *recon.Result, recovered int, gs *gridSummary) error {
	out := jsonResult{
		RunID:     res.RunID.String(),
		Width:     res.Width,
		Height:    res.Height,
		Pitch:     res.Pitch,
		Angles:    res.Angles,
		Walls:     pairs(sc.Walls),
		Segments:  pairs(res.Segments),
		Recovered: recovered,
		Stats:     res.Stats,
		Grid:      gs,
	}
	for _, p := range res.Points() {
		out.Vertices = append(out.Vertices, [2]float64(p))
	}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, d.Error())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func pairs(segs []geometry.Segment) [][2][2]float64 {
	out := make([][2][2]float64, len(segs))
	for i, s := range segs {
		out[i] = [2][2]float64{[2]float64(s.A), [2]float64(s.B)}
	}
	return out
}
