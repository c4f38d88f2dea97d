// Package openglhelper provides utilities for working with OpenGL buffers and other resources.
// It wraps the low-level OpenGL functions in a more Go-friendly API.
package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
)

// BufferUsage represents different buffer usage patterns for OpenGL buffers.
type BufferUsage uint32

const (
	// StaticDraw indicates buffer contents will be specified once and used many times for drawing
	StaticDraw BufferUsage = gl.STATIC_DRAW
)

// BufferObject represents an OpenGL buffer object
type BufferObject struct {
	ID    uint32
	Type  uint32 // GL_ARRAY_BUFFER, GL_ELEMENT_ARRAY_BUFFER, ...
	Size  int    // Size of the buffer in bytes
	Usage uint32
}

// NewVBO creates a vertex buffer holding data.
// The buffer is left bound to GL_ARRAY_BUFFER.
func NewVBO(data []float32, usage BufferUsage) *BufferObject {
	var bufferID uint32
	gl.GenBuffers(1, &bufferID)

	buffer := &BufferObject{
		ID:    bufferID,
		Type:  gl.ARRAY_BUFFER,
		Size:  len(data) * 4,
		Usage: uint32(usage),
	}

	buffer.Bind()
	if len(data) > 0 {
		gl.BufferData(buffer.Type, buffer.Size, gl.Ptr(data), buffer.Usage)
	} else {
		gl.BufferData(buffer.Type, 0, nil, buffer.Usage)
	}

	return buffer
}

// Bind binds the buffer object to its type target.
func (bo *BufferObject) Bind() {
	gl.BindBuffer(bo.Type, bo.ID)
}

// Unbind unbinds the buffer object from its type target.
func (bo *BufferObject) Unbind() {
	gl.BindBuffer(bo.Type, 0)
}

// Delete releases the buffer object.
func (bo *BufferObject) Delete() {
	gl.DeleteBuffers(1, &bo.ID)
}

// VertexArrayObject stores vertex attribute configurations.
type VertexArrayObject struct {
	ID uint32
}

// NewVAO creates a new Vertex Array Object.
func NewVAO() *VertexArrayObject {
	var vaoID uint32
	gl.GenVertexArrays(1, &vaoID)
	return &VertexArrayObject{ID: vaoID}
}

// Bind binds the vertex array object.
func (vao *VertexArrayObject) Bind() {
	gl.BindVertexArray(vao.ID)
}

// Unbind unbinds the vertex array object.
func (vao *VertexArrayObject) Unbind() {
	gl.BindVertexArray(0)
}

// Delete releases the vertex array object.
func (vao *VertexArrayObject) Delete() {
	gl.DeleteVertexArrays(1, &vao.ID)
}

// SetVertexAttribPointer describes a float attribute of the bound VBO and enables it.
// stride and offset are in bytes.
func (vao *VertexArrayObject) SetVertexAttribPointer(index uint32, size int32, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, uintptr(offset))
	gl.EnableVertexAttribArray(index)
}
