package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-starship/pkg/transform"
)

// Camera renders from the ship's transform. The flight controller moves
// the transform; the camera only adds a projection.
type Camera struct {
	ship *transform.Transform

	fov        float32
	width      int
	height     int
	projection mgl32.Mat4
}

// NewCamera creates a camera looking out of ship
func NewCamera(ship *transform.Transform, width, height int) *Camera {
	c := &Camera{
		ship:   ship,
		fov:    DefaultFOV,
		width:  width,
		height: height,
	}
	c.updateProjectionMatrix()
	return c
}

// updateProjectionMatrix recalculates the projection matrix
func (c *Camera) updateProjectionMatrix() {
	if c.height == 0 {
		// Minimized window; keep the last usable projection
		return
	}
	aspect := float32(c.width) / float32(c.height)
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, NearPlane, FarPlane)
}

// UpdateProjectionMatrix updates the projection matrix with new dimensions
func (c *Camera) UpdateProjectionMatrix(width, height int) {
	c.width = width
	c.height = height
	c.updateProjectionMatrix()
}

// ViewMatrix returns the current view matrix
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return c.ship.ViewMatrix()
}

// ProjectionMatrix returns the current projection matrix
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}
