package chunk

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelworld/internal/voxel/block"
	"github.com/Faultbox/voxelworld/pkg/vmath"
)

// Options configures chunk streaming.
type Options struct {
	// RenderRadius is the Chebyshev radius, in chunks, of the streaming window.
	RenderRadius int
	// MaxLoadsPerUpdate bounds the number of chunks loaded by one Update.
	MaxLoadsPerUpdate int
	// UnloadDistance is the Chebyshev distance beyond which loaded chunks are
	// evicted. Zero keeps every chunk for the lifetime of the manager.
	UnloadDistance int
	// MaxRenderDistance rejects chunks whose centre is farther from the viewer.
	MaxRenderDistance float32
}

// DefaultOptions returns the streaming defaults.
func DefaultOptions() Options {
	return Options{
		RenderRadius:      8,
		MaxLoadsPerUpdate: 2,
		UnloadDistance:    10,
		MaxRenderDistance: 300,
	}
}

// Stats is a snapshot of the manager state.
type Stats struct {
	Center        Coord
	RenderRadius  int
	Loaded        int
	Visible       int
	Pending       int
	Rendered      int
	FaceBuckets   int
	FaceInstances int
	LoadedTotal   uint64
	EvictedTotal  uint64
	Frame         uint64
}

// Manager owns every chunk and streams them in and out around a viewer.
// It must be driven from a single goroutine.
type Manager struct {
	log  *zap.Logger
	gen  Generator
	opts Options

	chunks  map[Key]*Chunk
	visible []Coord
	queue   []Coord
	queued  map[Key]struct{}

	center      Coord
	initialized bool
	frame       uint64

	render   RenderData
	rendered int

	loadedTotal  uint64
	evictedTotal uint64
}

// NewManager creates an empty manager. log may be nil.
func NewManager(gen Generator, opts Options, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxLoadsPerUpdate <= 0 {
		opts.MaxLoadsPerUpdate = 1
	}
	if opts.RenderRadius < 0 {
		opts.RenderRadius = 0
	}
	return &Manager{
		log:    log.Named("chunks"),
		gen:    gen,
		opts:   opts,
		chunks: make(map[Key]*Chunk),
		queued: make(map[Key]struct{}),
		render: make(RenderData),
	}
}

// Initialize sets the render radius and scans the window around pos.
// Nothing is loaded until the next Update.
func (m *Manager) Initialize(radius int, pos mgl32.Vec3) {
	m.opts.RenderRadius = max(radius, 0)
	m.center = CoordAtWorld(pos)
	m.initialized = true
	m.scan()
	m.log.Debug("chunk manager initialized",
		zap.Int("radius", m.opts.RenderRadius),
		zap.Int32("center_x", m.center.X),
		zap.Int32("center_z", m.center.Z),
		zap.Int("pending", len(m.queue)))
}

// Update moves the window to the viewer, loads up to MaxLoadsPerUpdate
// queued chunks and rebuilds the render map.
func (m *Manager) Update(v Viewer) {
	m.frame++

	if v != nil {
		c := CoordAtWorld(v.Position())
		if !m.initialized || c != m.center {
			m.center = c
			m.initialized = true
			m.scan()
		}
	}

	m.loadQueued()
	m.merge(v)
}

// SetRenderRadius changes the window size and rescans.
func (m *Manager) SetRenderRadius(radius int) {
	radius = max(radius, 0)
	if radius == m.opts.RenderRadius {
		return
	}
	m.opts.RenderRadius = radius
	m.scan()
}

// RenderRadius returns the current window radius.
func (m *Manager) RenderRadius() int { return m.opts.RenderRadius }

// Chunk returns the chunk at c, or nil if there is none.
func (m *Manager) Chunk(c Coord) *Chunk {
	return m.chunks[c.Key()]
}

// ChunkAtWorld returns the chunk containing pos, or nil.
func (m *Manager) ChunkAtWorld(pos mgl32.Vec3) *Chunk {
	return m.Chunk(CoordAtWorld(pos))
}

// BlockAt returns the block at world block coordinates. ok is false when the
// containing chunk is not loaded.
func (m *Manager) BlockAt(x, y, z int) (b block.Block, ok bool) {
	c := m.chunks[CoordOfBlock(x, z).Key()]
	if c == nil || !c.loaded {
		return block.Air, false
	}
	return c.Block(vmath.Mod(x, Width), y, vmath.Mod(z, Depth)), true
}

// RenderData returns the merged face buckets of the last Update. The map is
// reused by the next Update.
func (m *Manager) RenderData() RenderData { return m.render }

// Pending returns the queued chunk coordinates in load order.
func (m *Manager) Pending() []Coord {
	out := make([]Coord, len(m.queue))
	copy(out, m.queue)
	return out
}

// VisibleCoords returns the coordinates flagged visible by the last scan.
func (m *Manager) VisibleCoords() []Coord {
	out := make([]Coord, len(m.visible))
	copy(out, m.visible)
	return out
}

// Chunks calls fn for every chunk in the map.
func (m *Manager) Chunks(fn func(c *Chunk)) {
	for _, c := range m.chunks {
		fn(c)
	}
}

// Stats returns a snapshot of the manager state.
func (m *Manager) Stats() Stats {
	s := Stats{
		Center:       m.center,
		RenderRadius: m.opts.RenderRadius,
		Loaded:       len(m.chunks),
		Visible:      len(m.visible),
		Pending:      len(m.queue),
		Rendered:     m.rendered,
		FaceBuckets:  len(m.render),
		LoadedTotal:  m.loadedTotal,
		EvictedTotal: m.evictedTotal,
		Frame:        m.frame,
	}
	for _, mats := range m.render {
		s.FaceInstances += len(mats)
	}
	return s
}

// scan recomputes the visible set around the centre, queues missing chunks
// ring by ring from the centre outwards and evicts chunks beyond
// UnloadDistance.
func (m *Manager) scan() {
	r := m.opts.RenderRadius

	for _, c := range m.visible {
		if ch := m.chunks[c.Key()]; ch != nil {
			ch.SetVisible(false)
		}
	}
	m.visible = m.visible[:0]

	// Drop queued coordinates that fell out of the window.
	kept := m.queue[:0]
	for _, c := range m.queue {
		if c.Chebyshev(m.center) <= r {
			kept = append(kept, c)
		} else {
			delete(m.queued, c.Key())
		}
	}
	m.queue = kept

	for ring := 0; ring <= r; ring++ {
		forRing(m.center, ring, func(c Coord) {
			m.visible = append(m.visible, c)
			if ch := m.chunks[c.Key()]; ch != nil && ch.loaded {
				ch.SetVisible(true)
				return
			}
			m.enqueue(c)
		})
	}

	m.evict()
}

// forRing visits the coordinates at exactly Chebyshev distance ring from center.
func forRing(center Coord, ring int, fn func(Coord)) {
	if ring == 0 {
		fn(center)
		return
	}
	r := int32(ring)
	for dx := -r; dx <= r; dx++ {
		fn(center.Add(dx, -r))
		fn(center.Add(dx, r))
	}
	for dz := -r + 1; dz <= r-1; dz++ {
		fn(center.Add(-r, dz))
		fn(center.Add(r, dz))
	}
}

func (m *Manager) enqueue(c Coord) {
	k := c.Key()
	if _, ok := m.queued[k]; ok {
		return
	}
	m.queued[k] = struct{}{}
	m.queue = append(m.queue, c)
}

func (m *Manager) loadQueued() {
	for n := 0; n < m.opts.MaxLoadsPerUpdate && len(m.queue) > 0; n++ {
		c := m.queue[0]
		m.queue = m.queue[1:]
		delete(m.queued, c.Key())
		m.load(c)
	}
	if len(m.queue) == 0 {
		// Release the backing array consumed by the slicing above.
		m.queue = nil
	}
}

func (m *Manager) load(c Coord) {
	ch := m.chunks[c.Key()]
	if ch == nil {
		ch = New(c, m)
		m.chunks[c.Key()] = ch
	}
	if ch.loaded {
		return
	}
	ch.Load(m.gen)
	ch.SetVisible(c.Chebyshev(m.center) <= m.opts.RenderRadius)
	m.loadedTotal++

	m.log.Debug("chunk loaded",
		zap.Int32("x", c.X),
		zap.Int32("z", c.Z),
		zap.Int("instances", ch.TotalInstances()),
		zap.Int("pending", len(m.queue)))
}

func (m *Manager) evict() {
	d := m.opts.UnloadDistance
	if d <= 0 {
		return
	}
	d = max(d, m.opts.RenderRadius)

	var evicted []Coord
	for k, ch := range m.chunks {
		if ch.coord.Chebyshev(m.center) > d {
			ch.Unload()
			delete(m.chunks, k)
			evicted = append(evicted, ch.coord)
		}
	}
	for _, c := range evicted {
		for _, f := range block.Horizontal {
			if n := m.chunks[c.Neighbor(f).Key()]; n != nil && n.loaded && n.Resolved(f.Opposite()) {
				n.ResetBoundary(f.Opposite())
			}
		}
	}
	if len(evicted) > 0 {
		m.evictedTotal += uint64(len(evicted))
		m.log.Debug("chunks evicted",
			zap.Int("count", len(evicted)),
			zap.Int("loaded", len(m.chunks)))
	}
}

// merge rebuilds the render map from the visible chunks that pass culling.
func (m *Manager) merge(v Viewer) {
	for k, mats := range m.render {
		m.render[k] = mats[:0]
	}
	m.rendered = 0

	for _, c := range m.visible {
		ch := m.chunks[c.Key()]
		if ch == nil || !ch.loaded || !ch.visible {
			continue
		}
		if !ch.Renderable(v, m.frame, m.opts.MaxRenderDistance) {
			continue
		}
		m.rendered++
		for k, mats := range ch.faces {
			if len(mats) == 0 {
				continue
			}
			m.render[k] = append(m.render[k], mats...)
		}
	}

	for k, mats := range m.render {
		if len(mats) == 0 {
			delete(m.render, k)
		}
	}
}
