// Package batch renders the frames of a turntable animation on a worker pool
// and writes them to disk.
package batch

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/HugoSmits86/nativewebp"
	"github.com/schollz/progressbar/v3"

	"softrender/internal/config"
	"softrender/internal/postprocess"
	"softrender/internal/raster"
	"softrender/internal/scene"
	"softrender/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Scene       *scene.Scene
	TexResolver texture.Resolver
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	WebPQuality int
	Workers     int
	Frames      int
	Format      string

	// Progress receives the progress bar; nil hides it.
	Progress io.Writer
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Spin    float32
	Image   string // path relative to OutputDir
	Stats   raster.Stats
	Success bool
	Error   string
}

// Spin returns the turntable angle in degrees for frame i of n.
func Spin(i, n int) float32 {
	if n <= 0 {
		return 0
	}
	return float32(i) * 360 / float32(n)
}

// FrameName returns the output file name of frame i.
func FrameName(i int, format string) string {
	return fmt.Sprintf("frame_%04d.%s", i, format)
}

// Run renders every frame using a worker pool. Each worker owns one
// raster.Context for its whole lifetime; frames never share a context.
func Run(cfg Config) []Result {
	total := max(cfg.Frames, 0)
	results := make([]Result, total)
	if total == 0 {
		return results
	}

	progress := cfg.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Close()

	// Worker pool
	frameChan := make(chan int, max(cfg.Workers, 1)*2)
	var wg sync.WaitGroup

	for w := 0; w < max(cfg.Workers, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ss := max(cfg.Supersample, 1)
			ctx := raster.NewContext(cfg.Width*ss, cfg.Height*ss)
			defer ctx.Destroy()

			for i := range frameChan {
				results[i] = processFrame(cfg, ctx, i)
				bar.Add(1)
			}
		}()
	}

	// Send work
	for i := range total {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	bar.Finish()

	return results
}

// Render clears ctx, draws the scene turned spin degrees and resolves the
// supersampled buffer to a Width×Height image.
func Render(cfg Config, ctx *raster.Context, spin float32) *image.NRGBA {
	ctx.Clear()
	cfg.Scene.Draw(ctx, cfg.TexResolver, spin)

	img := ctx.Image()
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	return img
}

func processFrame(cfg Config, ctx *raster.Context, i int) Result {
	res := Result{
		Frame: i,
		Spin:  Spin(i, cfg.Frames),
		Image: FrameName(i, cfg.Format),
	}

	img := Render(cfg, ctx, res.Spin)
	res.Stats = ctx.Stats()

	if err := writeImage(filepath.Join(cfg.OutputDir, res.Image), img, cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	return res
}

func writeImage(path string, img image.Image, format string) error {
	var encode func(io.Writer, image.Image) error
	switch format {
	case config.FormatPNG:
		encode = png.Encode
	case config.FormatWebP:
		// Lossless; the quality setting does not apply.
		encode = func(w io.Writer, img image.Image) error { return nativewebp.Encode(w, img, nil) }
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := encode(f, img); err != nil {
		return fmt.Errorf("%s encode: %w", format, err)
	}
	return f.Close()
}
