package debug

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/voxelworld/internal/voxel/block"
	"github.com/Faultbox/voxelworld/internal/voxel/chunk"
)

// Manifest describes a render dump. The payload file holds, in order, the
// instance matrices of every bucket (16 little-endian float32 each, column
// major) followed by the chunk border vertices.
type Manifest struct {
	Created        time.Time `yaml:"created"`
	Frame          uint64    `yaml:"frame"`
	CenterX        int32     `yaml:"center_x"`
	CenterZ        int32     `yaml:"center_z"`
	Payload        string    `yaml:"payload"`
	Buckets        []Bucket  `yaml:"buckets"`
	BorderVertices int       `yaml:"border_vertices"`
}

// Bucket is one (block, face) entry of a render dump.
type Bucket struct {
	Block     block.Block `yaml:"block"`
	Face      block.Face  `yaml:"face"`
	Name      string      `yaml:"name"`
	Instances int         `yaml:"instances"`
}

// Key returns the face bucket key.
func (b Bucket) Key() block.FaceKey {
	return block.FaceKey{Block: b.Block, Face: b.Face}
}

// Frame is the render state captured by DumpRenderData.
type Frame struct {
	Number  uint64
	Center  chunk.Coord
	Data    chunk.RenderData
	Borders []float32
}

// sortedBuckets lists the non-empty buckets of data in block, then face order.
func sortedBuckets(data chunk.RenderData) []Bucket {
	out := make([]Bucket, 0, len(data))
	for k, mats := range data {
		if len(mats) == 0 {
			continue
		}
		out = append(out, Bucket{
			Block:     k.Block,
			Face:      k.Face,
			Name:      strings.ToLower(k.Block.String() + "_" + k.Face.String()),
			Instances: len(mats),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Block != out[j].Block {
			return out[i].Block < out[j].Block
		}
		return out[i].Face < out[j].Face
	})
	return out
}

// DumpRenderData writes f as a zstd compressed payload plus a YAML manifest
// and returns the manifest file name.
func (c *Capture) DumpRenderData(f Frame) (string, error) {
	if err := c.ensureDir(); err != nil {
		return "", err
	}
	base := strings.TrimSuffix(c.GenerateFilename(".yaml"), ".yaml")

	m := Manifest{
		Created:        c.now().UTC(),
		Frame:          f.Number,
		CenterX:        f.Center.X,
		CenterZ:        f.Center.Z,
		Payload:        filepath.Base(base + ".bin.zst"),
		Buckets:        sortedBuckets(f.Data),
		BorderVertices: len(f.Borders) / 3,
	}

	if err := writePayload(base+".bin.zst", m.Buckets, f); err != nil {
		return "", err
	}

	out, err := yaml.Marshal(&m)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}
	manifest := base + ".yaml"
	if err := os.WriteFile(manifest, out, 0644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return manifest, nil
}

func writePayload(path string, buckets []Bucket, f Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	enc, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("creating encoder: %w", err)
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	for _, b := range buckets {
		if err := binary.Write(bw, binary.LittleEndian, f.Data[b.Key()]); err != nil {
			enc.Close()
			return fmt.Errorf("writing bucket %s: %w", b.Name, err)
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, f.Borders); err != nil {
		enc.Close()
		return fmt.Errorf("writing borders: %w", err)
	}

	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("flushing payload: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing encoder: %w", err)
	}
	return file.Close()
}

// ReadRenderDump loads a dump written by DumpRenderData.
func ReadRenderDump(manifestPath string) (Manifest, Frame, error) {
	var m Manifest
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return m, Frame{}, fmt.Errorf("reading manifest: %w", err)
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return m, Frame{}, fmt.Errorf("parsing manifest: %w", err)
	}

	file, err := os.Open(filepath.Join(filepath.Dir(manifestPath), m.Payload))
	if err != nil {
		return m, Frame{}, fmt.Errorf("opening payload: %w", err)
	}
	defer file.Close()

	dec, err := zstd.NewReader(file)
	if err != nil {
		return m, Frame{}, fmt.Errorf("creating decoder: %w", err)
	}
	defer dec.Close()
	br := bufio.NewReaderSize(dec, 256*1024)

	f := Frame{
		Number: m.Frame,
		Center: chunk.Coord{X: m.CenterX, Z: m.CenterZ},
		Data:   make(chunk.RenderData, len(m.Buckets)),
	}
	for _, b := range m.Buckets {
		mats := make([]mgl32.Mat4, b.Instances)
		if err := binary.Read(br, binary.LittleEndian, mats); err != nil {
			return m, Frame{}, fmt.Errorf("reading bucket %s: %w", b.Name, err)
		}
		f.Data[b.Key()] = mats
	}
	f.Borders = make([]float32, m.BorderVertices*3)
	if err := binary.Read(br, binary.LittleEndian, f.Borders); err != nil {
		return m, Frame{}, fmt.Errorf("reading borders: %w", err)
	}
	if _, err := br.ReadByte(); err != io.EOF {
		return m, Frame{}, fmt.Errorf("payload longer than manifest")
	}
	return m, f, nil
}
