// Package game implements the headless frame loop that drives the world.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/voxelworld/internal/config"
	"github.com/Faultbox/voxelworld/internal/engine/camera"
	"github.com/Faultbox/voxelworld/internal/engine/debug"
	"github.com/Faultbox/voxelworld/internal/game/world"
	"github.com/Faultbox/voxelworld/internal/voxel/chunk"
	"github.com/Faultbox/voxelworld/pkg/vmath"
)

// Game flies a camera through the world for a number of frames.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	world   *world.World
	camera  *camera.FlyCamera
	capture *debug.Capture

	frame   int
	running bool
}

// New creates a game from cfg. log may be nil.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	cam := camera.NewFlyCamera(cfg.Camera.Vec3())
	cam.Yaw = cfg.Camera.Yaw
	cam.Pitch = cfg.Camera.Pitch
	cam.FOVDegrees = cfg.Camera.FOV
	cam.Aspect = cfg.Camera.Aspect
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far
	cam.MoveSpeed = cfg.Run.Speed

	g := &Game{
		cfg:     cfg,
		log:     log,
		world:   world.New(cfg, log),
		camera:  cam,
		capture: debug.NewCapture(cfg.Capture.Dir, "voxelworld"),
	}

	log.Info("game initialized",
		zap.Uint32("seed", cfg.Terrain.Seed),
		zap.Int("radius", cfg.World.RenderRadius),
		zap.Int("frames", cfg.Run.Frames))
	return g, nil
}

// World returns the world driven by the game.
func (g *Game) World() *world.World { return g.world }

// Camera returns the camera the game flies.
func (g *Game) Camera() *camera.FlyCamera { return g.camera }

// Frame returns the number of frames run so far.
func (g *Game) Frame() int { return g.frame }

// Run runs the frame loop until the configured frame count is reached or
// ctx is done. Captures configured in the capture section are written when
// the loop ends.
func (g *Game) Run(ctx context.Context) error {
	g.running = true
	defer func() { g.running = false }()

	g.world.Initialize(g.camera.Position())

	dt := float32(g.cfg.Run.FrameTime.Seconds())
	var busy time.Duration
	statsFrames := 0

	g.log.Info("starting frame loop")

	for g.cfg.Run.Frames == 0 || g.frame < g.cfg.Run.Frames {
		select {
		case <-ctx.Done():
			g.log.Info("frame loop interrupted", zap.Int("frame", g.frame))
			return g.finish()
		default:
		}

		start := time.Now()
		g.update(dt)
		busy += time.Since(start)
		statsFrames++
		g.frame++

		if n := g.cfg.Run.StatsEvery; n > 0 && g.frame%n == 0 {
			g.logStats(busy / time.Duration(statsFrames))
			busy, statsFrames = 0, 0
		}
	}

	return g.finish()
}

// update advances one frame.
func (g *Game) update(dt float32) {
	g.camera.Yaw += g.cfg.Run.TurnRate * dt
	g.camera.HandleMovement(1, 0, 0, dt)
	g.world.Update(g.camera)
	g.world.UpdateSelection(g.camera)
}

func (g *Game) logStats(avg time.Duration) {
	s := g.world.Stats()
	fields := []zap.Field{
		zap.Int("frame", g.frame),
		zap.Duration("avg_update", avg),
		zap.Int32("center_x", s.Center.X),
		zap.Int32("center_z", s.Center.Z),
		zap.Int("loaded", s.Loaded),
		zap.Int("visible", s.Visible),
		zap.Int("rendered", s.Rendered),
		zap.Int("pending", s.Pending),
		zap.Int("buckets", s.FaceBuckets),
		zap.Int("instances", s.FaceInstances),
		zap.Uint64("evicted", s.EvictedTotal),
	}
	if s.Selection != nil {
		fields = append(fields, zap.Any("selection", *s.Selection))
	}
	g.log.Info("world stats", fields...)
}

// finish writes the configured captures.
func (g *Game) finish() error {
	g.log.Info("frame loop finished", zap.Int("frames", g.frame))

	center := chunk.CoordAtWorld(g.camera.Position())
	if g.cfg.Capture.MapPNG {
		name, err := g.capture.CaptureMap(g.world, center, g.world.Chunks().RenderRadius())
		if err != nil {
			return fmt.Errorf("capturing map: %w", err)
		}
		g.log.Info("map captured", zap.String("file", name))
	}

	if g.cfg.Capture.RenderDump {
		var boxes []vmath.AABB
		for _, c := range g.world.Chunks().VisibleCoords() {
			if ch := g.world.Chunk(c); ch != nil && ch.Loaded() {
				boxes = append(boxes, ch.Bounds())
			}
		}
		name, err := g.capture.DumpRenderData(debug.Frame{
			Number:  uint64(g.frame),
			Center:  center,
			Data:    g.world.RenderData(),
			Borders: debug.ChunkBorders(boxes, 0.01),
		})
		if err != nil {
			return fmt.Errorf("dumping render data: %w", err)
		}
		g.log.Info("render data dumped", zap.String("manifest", name))
	}
	return nil
}

// Running reports whether Run is in progress.
func (g *Game) Running() bool { return g.running }

// Close releases game resources.
func (g *Game) Close() {
	g.log.Info("closing game", zap.Int("frames", g.frame))
}
