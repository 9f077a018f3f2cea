package batch

import (
	"encoding/json"
	"os"
)

// Manifest describes one batch run.
type Manifest struct {
	Scene  string          `json:"scene"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Format string          `json:"format"`
	Frames []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one rendered frame in the output manifest.
type ManifestEntry struct {
	Frame     int     `json:"frame"`
	Spin      float32 `json:"spin_degrees"`
	Image     string  `json:"image"`
	Drawn     int     `json:"triangles_drawn"`
	Culled    int     `json:"triangles_culled"`
	Clipped   int     `json:"triangles_clipped"`
	Submitted int     `json:"triangles_submitted"`
}

// WriteManifest writes manifest.json listing every successful frame.
func WriteManifest(path string, cfg Config, results []Result) error {
	m := Manifest{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: cfg.Format,
		Frames: make([]ManifestEntry, 0, len(results)),
	}
	if cfg.Scene != nil {
		m.Scene = cfg.Scene.Name
	}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{
			Frame:     r.Frame,
			Spin:      r.Spin,
			Image:     r.Image,
			Drawn:     r.Stats.Drawn,
			Culled:    r.Stats.Culled,
			Clipped:   r.Stats.ClipRejected,
			Submitted: r.Stats.Submitted,
		})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(data, &m)
	return m, err
}
