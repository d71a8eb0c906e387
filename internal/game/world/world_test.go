package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelworld/internal/config"
	"github.com/Faultbox/voxelworld/internal/engine/camera"
	"github.com/Faultbox/voxelworld/internal/voxel/block"
	"github.com/Faultbox/voxelworld/internal/voxel/chunk"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.World.RenderRadius = 1
	cfg.World.UnloadDistance = 3
	return cfg
}

func loadedWorld(t *testing.T, cfg *config.Config, pos mgl32.Vec3) *World {
	t.Helper()
	w := New(cfg, nil)
	w.Initialize(pos)
	for i := 0; len(w.Chunks().Pending()) > 0; i++ {
		if i > 100 {
			t.Fatal("chunks never finished loading")
		}
		w.Update(nil)
	}
	return w
}

func downCamera(pos mgl32.Vec3) *camera.FlyCamera {
	c := camera.NewFlyCamera(pos)
	c.Pitch = -89.9
	return c
}

func TestPickBlockBelowSpawn(t *testing.T) {
	cfg := testConfig()
	w := New(cfg, nil)
	spawn := w.SpawnPoint(8, 8)
	w = loadedWorld(t, cfg, spawn)

	hit := w.PickBlock(downCamera(spawn))
	if !hit.Hit {
		t.Fatalf("no block below spawn point %v", spawn)
	}
	if hit.Face != block.Up {
		t.Errorf("Face = %v, want Up", hit.Face)
	}
	if hit.BlockPos.X != 8 || hit.BlockPos.Z != 8 {
		t.Errorf("BlockPos = %v, want column (8, 8)", hit.BlockPos)
	}
	if got, ok := w.BlockAt(hit.AdjacentPos.X, hit.AdjacentPos.Y, hit.AdjacentPos.Z); !ok || got != block.Air {
		t.Errorf("adjacent cell = %v, %v; want loaded air", got, ok)
	}
}

func TestPickScreenCentreMatchesPickBlock(t *testing.T) {
	cfg := testConfig()
	w := New(cfg, nil)
	spawn := w.SpawnPoint(4, 4)
	w = loadedWorld(t, cfg, spawn)

	cam := downCamera(spawn)
	a := w.PickBlock(cam)
	b := w.PickScreen(cam, 640, 360, 1280, 720)
	if a.Hit != b.Hit || a.BlockPos != b.BlockPos {
		t.Errorf("PickScreen = %v %v, PickBlock = %v %v", b.Hit, b.BlockPos, a.Hit, a.BlockPos)
	}
}

func TestPickBlockOutOfReach(t *testing.T) {
	cfg := testConfig()
	w := loadedWorld(t, cfg, mgl32.Vec3{8, 200, 8})

	if hit := w.PickBlock(downCamera(mgl32.Vec3{8.5, 200, 8.5})); hit.Hit {
		t.Errorf("hit %v from 200 blocks up with reach %v", hit.BlockPos, cfg.Picking.InteractionDistance)
	}
}

func TestUpdateSelection(t *testing.T) {
	cfg := testConfig()
	w := New(cfg, nil)
	spawn := w.SpawnPoint(8, 8)
	w = loadedWorld(t, cfg, spawn)
	cam := downCamera(spawn)

	if _, changed := w.UpdateSelection(cam); !changed {
		t.Error("first selection not reported as a change")
	}
	if _, changed := w.UpdateSelection(cam); changed {
		t.Error("same selection reported as a change")
	}
	if _, ok := w.Selection(); !ok {
		t.Error("Selection() empty after a hit")
	}
	if w.Stats().Selection == nil {
		t.Error("Stats().Selection empty after a hit")
	}

	cam.Pos = mgl32.Vec3{8.5, 500, 8.5}
	if hit, changed := w.UpdateSelection(cam); hit.Hit || !changed {
		t.Errorf("losing the selection: hit %v changed %v", hit.Hit, changed)
	}
	if _, ok := w.Selection(); ok {
		t.Error("Selection() still set after a miss")
	}
}

func TestWorldDeterministic(t *testing.T) {
	cfg := testConfig()
	a := loadedWorld(t, cfg, mgl32.Vec3{})
	b := loadedWorld(t, cfg, mgl32.Vec3{})

	for _, p := range [][3]int{{0, 10, 0}, {-5, 30, 7}, {12, 40, -9}, {3, 0, 3}} {
		ba, oka := a.BlockAt(p[0], p[1], p[2])
		bb, okb := b.BlockAt(p[0], p[1], p[2])
		if !oka || !okb || ba != bb {
			t.Errorf("BlockAt%v: %v/%v vs %v/%v", p, ba, oka, bb, okb)
		}
	}
}

func TestRenderDataAndStats(t *testing.T) {
	cfg := testConfig()
	w := loadedWorld(t, cfg, mgl32.Vec3{})

	if len(w.RenderData()) == 0 {
		t.Fatal("no render data after loading")
	}
	s := w.Stats()
	if s.Loaded != 9 || s.Seed != cfg.Terrain.Seed {
		t.Errorf("Stats() = %+v", s)
	}
	if c := w.ChunkAtWorld(mgl32.Vec3{-1, 0, -1}); c == nil || c.Coord() != (chunk.Coord{X: -1, Z: -1}) {
		t.Errorf("ChunkAtWorld returned %v", c)
	}
	if w.Chunk(chunk.Coord{X: 5}) != nil {
		t.Error("chunk outside the window is present")
	}

	w.SetRenderRadius(2)
	if got := len(w.Chunks().Pending()); got != 16 {
		t.Errorf("Pending() after growing radius = %d, want 16", got)
	}
}

func TestSpawnPointAboveGround(t *testing.T) {
	w := New(testConfig(), nil)
	p := w.SpawnPoint(-20, 33)
	for y := int(p.Y()) - 1; y < chunk.Height; y++ {
		if b := w.gen.BlockAt(-20, y, 33); b != block.Air {
			t.Errorf("spawn %v is inside %v at y=%d", p, b, y)
		}
	}
}
