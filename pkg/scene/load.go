package scene

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/easel/pkg/math3d"
	"github.com/taigrr/easel/pkg/models"
	"github.com/taigrr/easel/pkg/render"
)

// CheckerTexture is the texture name that selects the built-in checkerboard.
const CheckerTexture = "checker"

// ErrNoMesh is returned for an object without a mesh path.
var ErrNoMesh = errors.New("object has no mesh")

// Description is the YAML form of a scene.
type Description struct {
	Camera  CameraDescription   `yaml:"camera"`
	Sun     *Triple             `yaml:"sun"`
	Objects []ObjectDescription `yaml:"objects"`
}

// CameraDescription is the starting camera.
type CameraDescription struct {
	Position Triple  `yaml:"position"`
	Rotation Triple  `yaml:"rotation"` // pitch, yaw, roll in radians
	FOV      float64 `yaml:"fov"`      // degrees
}

// ObjectDescription is one entity. Mesh and texture paths are relative to the
// scene file.
type ObjectDescription struct {
	Name       string  `yaml:"name"`
	Mesh       string  `yaml:"mesh"`
	Texture    string  `yaml:"texture"` // image path or "checker"
	Untextured bool    `yaml:"untextured"`
	Position   Triple  `yaml:"position"`
	Scale      *Triple `yaml:"scale"` // omitted means 1
	Rotation   Triple  `yaml:"rotation"`
	Spin       Triple  `yaml:"spin"`
	Drive      float64 `yaml:"drive"`
}

// Triple is a 3-vector written either as a sequence [x, y, z] or as a single
// number meaning the same value on every axis.
type Triple math3d.Vec3

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Triple) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*t = Triple{f, f, f}
		return nil
	}
	var xyz []float64
	if err := node.Decode(&xyz); err != nil {
		return err
	}
	if len(xyz) != 3 {
		return fmt.Errorf("line %d: want 3 components, got %d", node.Line, len(xyz))
	}
	*t = Triple{xyz[0], xyz[1], xyz[2]}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Triple) MarshalYAML() (any, error) {
	return []float64{t.X, t.Y, t.Z}, nil
}

// Vec returns t as a vector.
func (t Triple) Vec() math3d.Vec3 { return math3d.Vec3(t) }

// Parse decodes a scene description.
func Parse(data []byte) (*Description, error) {
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &desc, nil
}

// LoadFile reads a scene file and loads every mesh and texture it names.
func LoadFile(path string, log *zap.Logger) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	desc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Build(desc, filepath.Dir(path), log)
}

// Build turns a description into a scene, resolving relative asset paths
// against dir. Each mesh file is loaded once and shared by every object that
// names it.
func Build(desc *Description, dir string, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	return build(desc, &loader{
		dir:      dir,
		log:      log,
		meshes:   map[string]*models.Mesh{},
		embedded: map[string]*render.Texture{},
		textures: map[string]*render.Texture{},
	})
}

func build(desc *Description, l *loader) (*Scene, error) {
	s := New()
	s.Camera.Position = desc.Camera.Position.Vec()
	s.Camera.Rotation = desc.Camera.Rotation.Vec()
	if desc.Camera.FOV > 0 {
		s.Camera.FOV = desc.Camera.FOV
	}
	if desc.Sun != nil {
		s.Sun = desc.Sun.Vec()
	}

	for i, od := range desc.Objects {
		obj, err := l.object(od)
		if err != nil {
			name := od.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("object %s: %w", name, err)
		}
		e := s.Add(obj)
		e.Spin = od.Spin.Vec()
		e.Drive = od.Drive
	}

	l.log.Info("scene loaded",
		zap.Int("objects", len(s.Entities)),
		zap.Int("meshes", len(l.meshes)),
		zap.Int("triangles", s.TriangleCount()),
	)
	return s, nil
}

type loader struct {
	dir      string
	log      *zap.Logger
	meshes   map[string]*models.Mesh
	embedded map[string]*render.Texture
	textures map[string]*render.Texture
}

func (l *loader) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.dir, p)
}

func (l *loader) object(od ObjectDescription) (*render.Object, error) {
	if od.Mesh == "" {
		return nil, ErrNoMesh
	}
	mesh, embedded, err := l.mesh(l.resolve(od.Mesh))
	if err != nil {
		return nil, err
	}

	name := od.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(od.Mesh), filepath.Ext(od.Mesh))
	}
	obj := render.NewObject(name, mesh)
	obj.Position = od.Position.Vec()
	obj.Rotation = od.Rotation.Vec()
	if od.Scale != nil {
		obj.Scale = od.Scale.Vec()
	}

	tex := embedded
	if od.Texture != "" {
		if tex, err = l.texture(od.Texture); err != nil {
			return nil, err
		}
	}
	obj.SetTexture(tex)
	if od.Untextured {
		obj.TextureEnabled = false
	}
	return obj, nil
}

// mesh loads path once. The second result is the texture embedded in a glTF
// file, or nil.
func (l *loader) mesh(path string) (*models.Mesh, *render.Texture, error) {
	if m, ok := l.meshes[path]; ok {
		return m, l.embedded[path], nil
	}

	var (
		mesh *models.Mesh
		tex  *render.Texture
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		var img image.Image
		mesh, img, err = models.LoadGLBWithTexture(path)
		if img != nil {
			tex = render.TextureFromImage(img)
		}
	default:
		mesh, err = models.Load(path)
	}
	if err != nil {
		return nil, nil, err
	}

	l.meshes[path] = mesh
	l.embedded[path] = tex
	l.log.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("faces", mesh.FaceCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Bool("embedded_texture", tex != nil),
	)
	return mesh, tex, nil
}

// texture loads a texture once. The name "checker" selects a procedural
// checkerboard.
func (l *loader) texture(name string) (*render.Texture, error) {
	if name == CheckerTexture {
		if t, ok := l.textures[name]; ok {
			return t, nil
		}
		t := render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
		l.textures[name] = t
		return t, nil
	}

	path := l.resolve(name)
	if t, ok := l.textures[path]; ok {
		return t, nil
	}
	t, err := render.LoadTexture(path)
	if err != nil {
		return nil, err
	}
	l.textures[path] = t
	l.log.Debug("texture loaded", zap.String("path", path), zap.Int("width", t.Width), zap.Int("height", t.Height))
	return t, nil
}

// FromModel builds a one-object scene for viewing a single model file. The
// mesh is centered and fitted to a 2-unit box in front of the camera. When
// the file carries no texture and texture is empty, a checkerboard is used.
func FromModel(path, texture string, log *zap.Logger) (*Scene, error) {
	desc := &Description{Objects: []ObjectDescription{{
		Mesh:     path,
		Texture:  texture,
		Position: Triple{0, 0, 4},
	}}}
	if log == nil {
		log = zap.NewNop()
	}
	l := &loader{
		log:      log,
		meshes:   map[string]*models.Mesh{},
		embedded: map[string]*render.Texture{},
		textures: map[string]*render.Texture{},
	}
	mesh, embedded, err := l.mesh(l.resolve(path))
	if err != nil {
		return nil, err
	}
	mesh.Fit(2)
	if texture == "" && embedded == nil {
		desc.Objects[0].Texture = CheckerTexture
	}
	return build(desc, l)
}
