package render

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/easel/pkg/math3d"
	"github.com/taigrr/easel/pkg/models"
)

// DefaultSun is the direction light arrives from when none is configured.
var DefaultSun = math3d.V3(3, 4, 1)

// Options configures a Context.
type Options struct {
	Width, Height int // screen size in pixels
	Capacity      int // triangle buffer capacity; 0 selects DefaultCapacity

	Sun          math3d.Vec3 // light direction; zero selects DefaultSun
	AmbientFloor float64     // minimum luminance; negative values act as 0
	NearEpsilon  float64     // 0 selects DefaultNearEpsilon

	Logger *zap.Logger // nil disables logging
}

// DefaultOptions returns options for a width×height screen.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:        width,
		Height:       height,
		Capacity:     DefaultCapacity,
		Sun:          DefaultSun,
		AmbientFloor: DefaultAmbientFloor,
		NearEpsilon:  DefaultNearEpsilon,
	}
}

// FrameStats counts what happened to the faces of one frame.
type FrameStats struct {
	Frame     uint64
	Objects   int
	Faces     int
	Submitted int // triangles accepted by the buffer
	Culled    int // triangles entirely behind the camera
	Dropped   int // triangles rejected because the buffer was full
	Rejected  int // objects skipped because their mesh failed validation
}

// Context holds everything one frame loop needs: the camera, the light, the
// projector and the triangle buffer. Create one per loop and reuse it every
// frame. A Context is not safe for concurrent use.
type Context struct {
	Camera *Camera

	proj    Projector
	buf     *TriangleBuffer
	sun     math3d.Vec3 // normalized
	ambient float64
	log     *zap.Logger

	stats      FrameStats
	overflowed bool
	rejected   map[*models.Mesh]struct{}
}

// NewContext creates a render context for cam.
func NewContext(cam *Camera, opts Options) *Context {
	sun := opts.Sun
	if sun == (math3d.Vec3{}) {
		sun = DefaultSun
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	proj := NewProjector(opts.Width, opts.Height)
	if opts.NearEpsilon > 0 {
		proj.NearEpsilon = opts.NearEpsilon
	}
	return &Context{
		Camera:  cam,
		proj:    proj,
		buf:     NewTriangleBuffer(opts.Capacity),
		sun:     sun.Normalize(),
		ambient: max(opts.AmbientFloor, 0),
		log:     log.Named("render"),

		rejected: make(map[*models.Mesh]struct{}),
	}
}

// Sun returns the normalized light direction.
func (c *Context) Sun() math3d.Vec3 { return c.sun }

// Buffer returns the triangle buffer.
func (c *Context) Buffer() *TriangleBuffer { return c.buf }

// Projector returns the projector in use.
func (c *Context) Projector() Projector { return c.proj }

// Resize changes the screen size used by the projector.
func (c *Context) Resize(width, height int) {
	c.proj.Width, c.proj.Height = width, height
}

// BeginFrame empties the triangle buffer and resets the frame statistics.
func (c *Context) BeginFrame() {
	c.buf.Reset()
	c.stats = FrameStats{Frame: c.stats.Frame + 1}
	c.overflowed = false
}

// DrawObject shades every face of obj into the triangle buffer.
//
// The mesh is validated first; a mesh with an unresolvable index submits
// nothing and the validation error is returned. Overflow is not fatal: the
// rest of the object is still processed, the excess triangles are dropped,
// and ErrBufferOverflow is returned.
func (c *Context) DrawObject(obj *Object) error {
	if obj == nil || obj.Mesh == nil {
		return nil
	}
	if err := obj.Mesh.Validate(); err != nil {
		c.stats.Rejected++
		if _, seen := c.rejected[obj.Mesh]; !seen {
			c.rejected[obj.Mesh] = struct{}{}
			c.log.Error("invalid mesh, object not drawn",
				zap.String("object", obj.Name),
				zap.String("mesh", obj.Mesh.Name),
				zap.Error(err),
			)
		}
		return fmt.Errorf("object %q: %w", obj.Name, err)
	}
	c.stats.Objects++

	var overflow error
	for _, face := range obj.Mesh.Faces {
		c.stats.Faces++
		submitted, culled, err := c.shadeFace(obj, face)
		c.stats.Submitted += submitted
		c.stats.Culled += culled
		if errors.Is(err, ErrBufferOverflow) {
			overflow = err
		}
	}
	if overflow != nil && !c.overflowed {
		c.overflowed = true
		c.log.Warn("triangle buffer full, dropping triangles",
			zap.String("object", obj.Name),
			zap.Int("capacity", c.buf.Cap()),
			zap.Uint64("frame", c.stats.Frame),
		)
	}
	return overflow
}

// EndFrame sorts the frame's triangles back to front and draws them with r.
func (c *Context) EndFrame(r Rasterizer) FrameStats {
	c.stats.Dropped = c.buf.Dropped()
	c.buf.SortAndDraw(r)
	if c.stats.Dropped > 0 {
		c.log.Debug("frame overflow",
			zap.Uint64("frame", c.stats.Frame),
			zap.Int("dropped", c.stats.Dropped),
		)
	}
	return c.stats
}

// Stats returns the statistics of the current (or last finished) frame.
func (c *Context) Stats() FrameStats {
	s := c.stats
	s.Dropped = c.buf.Dropped()
	return s
}
