// Package transform provides the positionable, orientable entities the
// flight controller moves around.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Canonical local axes. The viewpoint looks along negative Z with Y up.
var (
	localForward = mgl32.Vec3{0, 0, -1}
	localRight   = mgl32.Vec3{1, 0, 0}
	localUp      = mgl32.Vec3{0, 1, 0}
)

// Transform is a position plus a quaternion orientation
type Transform struct {
	position    mgl32.Vec3
	orientation mgl32.Quat
}

// NewTransform creates an unrotated transform at position
func NewTransform(position mgl32.Vec3) *Transform {
	return &Transform{
		position:    position,
		orientation: mgl32.QuatIdent(),
	}
}

// Position returns the world-space position
func (t *Transform) Position() mgl32.Vec3 {
	return t.position
}

// SetPosition sets the world-space position
func (t *Transform) SetPosition(pos mgl32.Vec3) {
	t.position = pos
}

// Orientation returns the current orientation
func (t *Transform) Orientation() mgl32.Quat {
	return t.orientation
}

// SetOrientation replaces the orientation
func (t *Transform) SetOrientation(q mgl32.Quat) {
	t.orientation = q.Normalize()
}

// RotateOnAxis rotates the transform about an axis in its own local frame
func (t *Transform) RotateOnAxis(axis mgl32.Vec3, angle float32) {
	if angle == 0 {
		return
	}
	// Post-multiplying applies the rotation in local space
	t.orientation = t.orientation.Mul(mgl32.QuatRotate(angle, axis.Normalize())).Normalize()
}

// Basis returns the local forward, right and up axes in world space
func (t *Transform) Basis() (forward, right, up mgl32.Vec3) {
	return t.orientation.Rotate(localForward), t.orientation.Rotate(localRight), t.orientation.Rotate(localUp)
}

// LookAt orients the transform towards target with up as close to worldUp as possible.
// It is a no-op when target is the current position or lies straight along worldUp.
func (t *Transform) LookAt(target, worldUp mgl32.Vec3) {
	forward := target.Sub(t.position)
	if forward.Len() < 1e-6 {
		return
	}
	forward = forward.Normalize()

	right := forward.Cross(worldUp)
	if right.Len() < 1e-6 {
		return
	}
	right = right.Normalize()
	up := right.Cross(forward)

	// Columns are the images of the local axes; local forward is -Z
	basis := mgl32.Mat3FromCols(right, up, forward.Mul(-1))
	t.orientation = mgl32.Mat4ToQuat(basis.Mat4()).Normalize()
}

// ModelMatrix returns the local-to-world matrix
func (t *Transform) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z()).Mul4(t.orientation.Mat4())
}

// ViewMatrix returns the world-to-view matrix for a camera at this transform
func (t *Transform) ViewMatrix() mgl32.Mat4 {
	forward, _, up := t.Basis()
	return mgl32.LookAtV(t.position, t.position.Add(forward), up)
}

// Anchor is a position-only entity, such as a background point field that
// follows the viewpoint
type Anchor struct {
	position mgl32.Vec3
}

// NewAnchor creates an anchor at position
func NewAnchor(position mgl32.Vec3) *Anchor {
	return &Anchor{position: position}
}

// Position returns the world-space position
func (a *Anchor) Position() mgl32.Vec3 {
	return a.position
}

// SetPosition sets the world-space position
func (a *Anchor) SetPosition(pos mgl32.Vec3) {
	a.position = pos
}

// ModelMatrix returns the translation to the anchor's position
func (a *Anchor) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(a.position.X(), a.position.Y(), a.position.Z())
}
