// Package world ties terrain generation, chunk streaming and block picking
// together behind a single driver.
package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelworld/internal/config"
	"github.com/Faultbox/voxelworld/internal/engine/picking"
	"github.com/Faultbox/voxelworld/internal/voxel/block"
	"github.com/Faultbox/voxelworld/internal/voxel/chunk"
	"github.com/Faultbox/voxelworld/internal/voxel/terrain"
	"github.com/Faultbox/voxelworld/pkg/vmath"
)

// Camera is what the world needs from a camera besides culling.
type Camera interface {
	chunk.Viewer
	ViewRay() picking.Ray
	ScreenRay(x, y, w, h float32) picking.Ray
}

// Stats is a snapshot of the world state.
type Stats struct {
	chunk.Stats
	Seed      uint32
	Selection *vmath.IVec3
}

// World owns the chunk manager and the terrain generator.
type World struct {
	log    *zap.Logger
	gen    *terrain.Generator
	chunks *chunk.Manager
	radius int
	reach  float32

	selected    picking.HitResult
	hasSelected bool
}

// New creates a world from the world, terrain and picking sections of cfg.
// log may be nil.
func New(cfg *config.Config, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	gen := terrain.New(cfg.Terrain.Params())
	return &World{
		log:    log.Named("world"),
		gen:    gen,
		chunks: chunk.NewManager(gen, cfg.World.Options(), log),
		radius: cfg.World.RenderRadius,
		reach:  cfg.Picking.InteractionDistance,
	}
}

// Initialize queues the chunks around pos. They load over the following updates.
func (w *World) Initialize(pos mgl32.Vec3) {
	w.chunks.Initialize(w.radius, pos)
	w.log.Info("world initialized",
		zap.Uint32("seed", w.gen.Params().Seed),
		zap.Int("radius", w.radius),
		zap.Int("pending", len(w.chunks.Pending())))
}

// Update streams chunks around the viewer and rebuilds the render data.
func (w *World) Update(v chunk.Viewer) {
	w.chunks.Update(v)
}

// Chunk returns the chunk at c, or nil if it is not in memory.
func (w *World) Chunk(c chunk.Coord) *chunk.Chunk {
	return w.chunks.Chunk(c)
}

// ChunkAtWorld returns the chunk containing pos, or nil.
func (w *World) ChunkAtWorld(pos mgl32.Vec3) *chunk.Chunk {
	return w.chunks.ChunkAtWorld(pos)
}

// BlockAt returns the loaded block at world coordinates.
func (w *World) BlockAt(x, y, z int) (block.Block, bool) {
	return w.chunks.BlockAt(x, y, z)
}

// RenderData returns the face buckets merged by the last Update.
func (w *World) RenderData() chunk.RenderData {
	return w.chunks.RenderData()
}

// Chunks exposes the chunk manager for debug tooling.
func (w *World) Chunks() *chunk.Manager {
	return w.chunks
}

// SetRenderRadius changes the streaming radius.
func (w *World) SetRenderRadius(r int) {
	w.radius = r
	w.chunks.SetRenderRadius(r)
}

// PickBlock casts the camera's view ray up to the interaction distance.
func (w *World) PickBlock(cam Camera) picking.HitResult {
	return cam.ViewRay().Cast(w.chunks, w.reach)
}

// PickScreen casts the ray through pixel (x, y) of a w x h viewport.
func (w *World) PickScreen(cam Camera, x, y, width, height float32) picking.HitResult {
	return cam.ScreenRay(x, y, width, height).Cast(w.chunks, w.reach)
}

// UpdateSelection re-picks the block under the view centre. changed is true
// when the selected block differs from the previous call.
func (w *World) UpdateSelection(cam Camera) (hit picking.HitResult, changed bool) {
	hit = w.PickBlock(cam)
	switch {
	case hit.Hit && (!w.hasSelected || hit.BlockPos != w.selected.BlockPos):
		changed = true
		w.log.Debug("block selected",
			zap.Int("x", hit.BlockPos.X),
			zap.Int("y", hit.BlockPos.Y),
			zap.Int("z", hit.BlockPos.Z),
			zap.Stringer("block", hit.Block),
			zap.Stringer("face", hit.Face),
			zap.Float32("distance", hit.Distance))
	case !hit.Hit && w.hasSelected:
		changed = true
	}
	w.selected, w.hasSelected = hit, hit.Hit
	return hit, changed
}

// Selection returns the block picked by the last UpdateSelection.
func (w *World) Selection() (picking.HitResult, bool) {
	return w.selected, w.hasSelected
}

// SpawnPoint returns a position two blocks above the terrain at column (x, z).
func (w *World) SpawnPoint(x, z int) mgl32.Vec3 {
	surface := 0
	for y := chunk.Height - 1; y >= 0; y-- {
		if w.gen.BlockAt(x, y, z) != block.Air {
			surface = y + 1
			break
		}
	}
	return mgl32.Vec3{float32(x) + 0.5, float32(surface) + 2, float32(z) + 0.5}
}

// Stats returns a snapshot of the world state.
func (w *World) Stats() Stats {
	s := Stats{Stats: w.chunks.Stats(), Seed: w.gen.Params().Seed}
	if w.hasSelected {
		pos := w.selected.BlockPos
		s.Selection = &pos
	}
	return s
}
