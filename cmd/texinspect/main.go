package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"softrender/internal/raster"
	"softrender/internal/texture"
)

func inspect(path string) error {
	img, err := texture.LoadTexture(path)
	if err != nil {
		return err
	}
	tex, err := texture.Upload(img)
	if err != nil {
		return err
	}
	defer tex.Destroy()

	fmt.Printf("%s: %dx%d\n", path, tex.Width, tex.Height)

	// Alpha statistics
	var minA, maxA uint8 = 255, 0
	total, sumA, transparent := 0, 0, 0
	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			_, _, _, a := raster.UnpackRGBA(tex.At(x, y))
			total++
			sumA += int(a)
			minA = min(minA, a)
			maxA = max(maxA, a)
			if a == 0 {
				transparent++
			}
		}
	}
	fmt.Printf("  alpha: min=%d max=%d avg=%.1f transparent=%.1f%%\n",
		minA, maxA, float64(sumA)/float64(total), 100*float64(transparent)/float64(total))

	// Corner samples through the rasterizer's sampler
	for _, uv := range [][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.5, 0.5}} {
		r, g, b, a := raster.UnpackRGBA(raster.SampleTexture(tex, uv[0], uv[1]))
		fmt.Printf("  uv(%.1f,%.1f) = rgba(%d,%d,%d,%d)\n", uv[0], uv[1], r, g, b, a)
	}
	return nil
}

func main() {
	dir := flag.String("dir", "", "Resolve the arguments as texture names inside this directory")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: texinspect [-dir textures] file-or-name...\n")
		fmt.Fprintf(os.Stderr, "supported: %v\n", texture.Extensions)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var idx *texture.Index
	if *dir != "" {
		idx = texture.BuildIndex(*dir)
		fmt.Printf("Index: %d textures under %s\n", idx.Len(), filepath.Clean(*dir))
	}

	errors := 0
	for _, arg := range flag.Args() {
		path := arg
		if idx != nil {
			p, ok := idx.ResolvePath(arg)
			if !ok {
				fmt.Fprintf(os.Stderr, "ERR %s: not in index\n", arg)
				errors++
				continue
			}
			path = p
		}
		if err := inspect(path); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
}
