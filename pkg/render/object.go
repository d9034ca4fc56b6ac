package render

import (
	"github.com/taigrr/easel/pkg/math3d"
	"github.com/taigrr/easel/pkg/models"
)

// Object is one renderable instance of a mesh. Several objects may share a
// mesh; the pipeline only reads objects.
type Object struct {
	Name     string
	Mesh     *models.Mesh
	Position math3d.Vec3
	Scale    math3d.Vec3 // per-axis
	Rotation math3d.Vec3 // Euler radians, applied Y, X, Z

	Texture        *Texture
	TextureEnabled bool
}

// NewObject creates an object at the origin with unit scale.
func NewObject(name string, mesh *models.Mesh) *Object {
	return &Object{
		Name:  name,
		Mesh:  mesh,
		Scale: math3d.One3(),
	}
}

// SetTexture assigns a texture and enables texturing when tex is non-nil.
func (o *Object) SetTexture(tex *Texture) {
	o.Texture = tex
	o.TextureEnabled = tex != nil
}

// ToCameraSpace carries a model-space vertex through the object and camera
// transforms.
//
// The vertex is scaled, rotated by the object (Y, X, Z), offset by the
// object position relative to the camera, and finally rotated by the negated
// camera angles. cameraSpace is the point before the camera rotation and is
// what normals, centroids and distances are computed from; projectable is
// the point handed to the projector.
func ToCameraSpace(v math3d.Vec3, obj *Object, cam *Camera) (projectable, cameraSpace math3d.Vec3) {
	v = v.Mul(obj.Scale)
	v = math3d.RotateEuler(v, obj.Rotation)
	// Subtract the camera first, then add the object: the order is part of
	// the contract.
	v = v.Sub(cam.Position)
	v = v.Add(obj.Position)
	cameraSpace = v
	projectable = math3d.RotateEulerInverse(v, cam.Rotation)
	return projectable, cameraSpace
}
