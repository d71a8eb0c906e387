// Package debug provides offline captures of the world state: top-down map
// images and compressed dumps of the per-frame render data.
package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/voxelworld/internal/voxel/block"
	"github.com/Faultbox/voxelworld/internal/voxel/chunk"
)

// BlockSource resolves world block positions. ok is false for unloaded chunks.
type BlockSource interface {
	BlockAt(x, y, z int) (b block.Block, ok bool)
}

// Capture writes debug artifacts into an output directory.
type Capture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewCapture creates a new capture handler.
func NewCapture(outputDir, prefix string) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory.
func (c *Capture) SetOutputDir(dir string) {
	c.outputDir = dir
}

// GenerateFilename returns a timestamped file name with the given extension.
func (c *Capture) GenerateFilename(ext string) string {
	timestamp := c.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s%s", c.prefix, timestamp, ext)
	if c.outputDir != "" {
		filename = filepath.Join(c.outputDir, filename)
	}
	return filename
}

func (c *Capture) ensureDir() error {
	if c.outputDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	return nil
}

// unloadedColor marks columns whose chunk is not loaded.
var unloadedColor = color.RGBA{A: 255}

// MapImage renders a top-down view of the chunks within radius of center,
// one pixel per block column. Each pixel takes the colour of the topmost
// non-air block, darkened with depth.
func MapImage(src BlockSource, center chunk.Coord, radius int) *image.RGBA {
	side := (2*radius + 1) * chunk.Width
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	origin := center.Add(int32(-radius), int32(-radius)).Origin()

	for pz := 0; pz < side; pz++ {
		for px := 0; px < side; px++ {
			img.SetRGBA(px, pz, columnColor(src, origin.X+px, origin.Z+pz))
		}
	}
	return img
}

func columnColor(src BlockSource, x, z int) color.RGBA {
	for y := chunk.Height - 1; y >= 0; y-- {
		b, ok := src.BlockAt(x, y, z)
		if !ok {
			return unloadedColor
		}
		if b == block.Air {
			continue
		}
		shade := 0.4 + 0.6*float32(y+1)/chunk.Height
		col := block.PropertiesOf(b).Color.Mul(shade)
		return color.RGBA{
			R: toByte(col.X()),
			G: toByte(col.Y()),
			B: toByte(col.Z()),
			A: 255,
		}
	}
	return color.RGBA{A: 255}
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// CaptureMap writes MapImage as a PNG and returns the file name.
func (c *Capture) CaptureMap(src BlockSource, center chunk.Coord, radius int) (string, error) {
	return c.CaptureFromImage(MapImage(src, center, radius))
}

// CaptureFromImage saves an image as a timestamped PNG.
func (c *Capture) CaptureFromImage(img image.Image) (string, error) {
	if err := c.ensureDir(); err != nil {
		return "", err
	}
	filename := c.GenerateFilename(".png")

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
