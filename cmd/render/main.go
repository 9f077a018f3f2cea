package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"softrender/internal/batch"
	"softrender/internal/config"
	"softrender/internal/raster"
	"softrender/internal/scene"
	"softrender/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Path to scene YAML file (required)")
	baseDir := flag.String("base", "", "Base directory for relative texture/output paths")
	texDir := flag.String("textures", "", "Directory scanned for texture files")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	width := flag.Int("width", 0, "Output width in pixels (default: 320)")
	height := flag.Int("height", 0, "Output height in pixels (default: 240)")
	supersample := flag.Int("ss", 0, "Supersampling factor (default: 1)")
	quality := flag.Int("quality", 0, "WebP quality 1-100 (default: 90)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	frames := flag.Int("frames", 0, "Turntable frames over a full turn (default: 1)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	verbose := flag.Bool("v", false, "Log rasterizer debug events to stderr")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	raster.SetLogger(logger)

	if *sceneFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -scene is required.")
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:     *baseDir,
		TextureDir:  *texDir,
		OutputDir:   *outputDir,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Quality:     *quality,
		Workers:     *workers,
		Frames:      *frames,
		Format:      *format,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, err := scene.Load(*sceneFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}
	defer sc.Release()

	// Build texture index
	var resolver texture.Resolver
	if cfg.TextureDir != "" {
		texIndex := texture.BuildIndex(cfg.TextureDir)
		texCache := texture.NewCache(texIndex)
		defer texCache.Release()
		resolver = texCache
		fmt.Printf("Textures: %d indexed\n", texIndex.Len())
	}

	name := sc.Name
	if name == "" {
		name = filepath.Base(*sceneFile)
	}
	fmt.Printf("Software renderer → %s\n", cfg.Format)
	fmt.Printf("Scene: %s (%d meshes)\n", name, len(sc.Meshes))
	fmt.Printf("Frames: %d at %dx%d (x%d supersample), Workers: %d\n",
		cfg.Frames, cfg.Width, cfg.Height, cfg.Supersample, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		Scene:       sc,
		TexResolver: resolver,
		OutputDir:   cfg.OutputDir,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		WebPQuality: cfg.WebPQuality,
		Workers:     cfg.Workers,
		Frames:      cfg.Frames,
		Format:      cfg.Format,
		Progress:    os.Stderr,
	}

	results := batch.Run(batchCfg)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	var drawn, culled, clipped int
	for _, r := range results {
		if r.Success {
			success++
			drawn += r.Stats.Drawn
			culled += r.Stats.Culled
			clipped += r.Stats.ClipRejected
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))
	fmt.Printf("Triangles: %d drawn, %d culled, %d clip-rejected\n", drawn, culled, clipped)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Image, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, batchCfg, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
