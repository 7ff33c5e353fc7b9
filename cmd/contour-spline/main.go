package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"fyne.io/fyne/v2/app"

	"github.com/ironsheep/contour-spline/internal/config"
	"github.com/ironsheep/contour-spline/internal/detection"
	"github.com/ironsheep/contour-spline/internal/imaging"
	"github.com/ironsheep/contour-spline/internal/interactive"
	"github.com/ironsheep/contour-spline/internal/render"
	"github.com/ironsheep/contour-spline/internal/spline"
	"github.com/ironsheep/contour-spline/internal/viewer"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("contour-spline %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	configPath := flag.String("config", "contour-spline.yaml", "YAML configuration file (optional)")
	imagePath := flag.String("image", "", "image to analyse (overrides input.image)")
	backend := flag.String("backend", "", "edge backend: "+strings.Join(detection.Backends(), ", "))
	noShow := flag.Bool("no-show", false, "save the figure without opening a window")
	writeConfig := flag.String("write-config", "", "write the effective configuration to this path and exit")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if *imagePath != "" {
		cfg.Input.Image = *imagePath
	}
	if *backend != "" {
		cfg.Edges.Backend = *backend
	}
	if *noShow {
		cfg.Display.Enabled = false
	}
	if *verbose {
		cfg.Log.Verbose = true
	}

	if *writeConfig != "" {
		if err := config.SaveConfig(cfg, *writeConfig); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Configuración guardada en %s\n", *writeConfig)
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if cfg.Log.Verbose {
		log.Printf("contour-spline v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if !cfg.Display.Enabled {
		run(cfg, viewer.None{})
		return
	}

	// The fyne event loop owns the main goroutine; the terminal loop runs
	// beside it and stops the app when it is done.
	a := app.NewWithID("io.github.ironsheep.contour-spline")
	win := viewer.NewWindow(a, float32(cfg.Display.Width), float32(cfg.Display.Height))
	go func() {
		run(cfg, win)
		win.Quit()
	}()
	a.Run()
}

// run reports any failure as "Error: <message>" and returns normally.
func run(cfg *config.Config, v viewer.Viewer) {
	if err := process(cfg, v); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func process(cfg *config.Config, v viewer.Viewer) error {
	gray, err := imaging.LoadGray(cfg.Input.Image)
	if err != nil {
		return err
	}
	if cfg.Log.Verbose {
		log.Printf("Loaded %s (%dx%d)", cfg.Input.Image, gray.Bounds().Dx(), gray.Bounds().Dy())
	}

	det, err := detection.NewDetector(cfg.Edges.Backend, detection.Params{
		ThresholdLow:  cfg.Edges.Low,
		ThresholdHigh: cfg.Edges.High,
		BlurRadius:    cfg.Edges.BlurRadius,
	})
	if err != nil {
		return err
	}
	ext, err := det.Detect(gray)
	if err != nil {
		return err
	}

	interactive.PrintTotal(os.Stdout, len(ext.Contours))
	cands, err := detection.Candidates(ext.Contours, cfg.Contours.MinPoints)
	if err != nil {
		return err
	}

	style, err := render.NewStyle(cfg.Output.DPI, cfg.Output.WidthIn, cfg.Output.HeightIn,
		cfg.Output.PointsColor, cfg.Output.CurveColor, cfg.Output.MaxPanelPx)
	if err != nil {
		return err
	}

	session := &interactive.Session{
		Candidates: cands,
		Gray:       gray,
		Edges:      ext.Edges,
		Renderer:   render.PNG{Style: style},
		Viewer:     v,
		Options: interactive.Options{
			OutputPath: cfg.Output.Path,
			Spline: spline.Options{
				Boundary:   spline.Boundary(cfg.Spline.Boundary),
				Oversample: cfg.Spline.Oversample,
			},
			Verbose: cfg.Log.Verbose,
		},
		In:  os.Stdin,
		Out: os.Stdout,
	}
	return session.Run()
}

func printHelp() {
	fmt.Println("contour-spline - fit a cubic spline through a detected contour")
	fmt.Println()
	fmt.Println("Usage: contour-spline [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v        Print version information")
	fmt.Println("  --help, -h           Print this help message")
	fmt.Println("  -config <path>       YAML configuration (default contour-spline.yaml)")
	fmt.Println("  -image <path>        Image to analyse (default src/guinea-pig.jpg)")
	fmt.Println("  -backend <name>      Edge backend: " + strings.Join(detection.Backends(), ", "))
	fmt.Println("  -no-show             Save the figure without opening a window")
	fmt.Println("  -write-config <path> Write the effective configuration and exit")
	fmt.Println("  -verbose             Enable debug logging")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  " + config.LogLevelEnv + "=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("The figure is written to resultado_spline.png unless output.path says otherwise.")
}
