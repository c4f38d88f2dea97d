package render

import (
	"math"
	"math/rand"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/leterax/go-starship/internal/openglhelper"
	"github.com/leterax/go-starship/pkg/transform"
)

// floats per star: x, y, z, brightness
const starStride = 4

const starVertexShader = `#version 460 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in float aBrightness;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
uniform float pointSize;

out float brightness;

void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
    gl_PointSize = pointSize;
    brightness = aBrightness;
}
`

const starFragmentShader = `#version 460 core
in float brightness;

uniform float dim;

out vec4 FragColor;

void main() {
    // Round points with a soft edge
    vec2 c = gl_PointCoord * 2.0 - 1.0;
    float r = dot(c, c);
    if (r > 1.0) {
        discard;
    }
    float b = brightness * dim * (1.0 - r * 0.5);
    FragColor = vec4(b, b, b * 1.05, 1.0);
}
`

// Starfield is a fixed point cloud around an anchor. The anchor is the
// flight controller's companion, so the field travels with the ship and
// reads as infinitely far away.
type Starfield struct {
	anchor    *transform.Anchor
	count     int
	pointSize float32

	shader *openglhelper.Shader
	vao    *openglhelper.VertexArrayObject
	vbo    *openglhelper.BufferObject
}

// NewStarfield generates count stars on a shell of the given radius and
// uploads them. Requires a current GL context.
func NewStarfield(anchor *transform.Anchor, count int, radius float32, seed int64, pointSize float32) (*Starfield, error) {
	shader, err := openglhelper.NewShader(starVertexShader, starFragmentShader)
	if err != nil {
		return nil, err
	}

	vertices := generateStars(count, radius, seed)

	vao := openglhelper.NewVAO()
	vao.Bind()
	vbo := openglhelper.NewVBO(vertices, openglhelper.StaticDraw)
	vao.SetVertexAttribPointer(0, 3, starStride*4, 0)
	vao.SetVertexAttribPointer(1, 1, starStride*4, 3*4)
	vao.Unbind()
	vbo.Unbind()

	return &Starfield{
		anchor:    anchor,
		count:     count,
		pointSize: pointSize,
		shader:    shader,
		vao:       vao,
		vbo:       vbo,
	}, nil
}

// generateStars scatters stars uniformly over directions, between 0.5 and 1
// times radius from the origin
func generateStars(count int, radius float32, seed int64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	vertices := make([]float32, 0, count*starStride)

	for i := 0; i < count; i++ {
		// Uniform direction on the unit sphere
		z := rng.Float64()*2 - 1
		theta := rng.Float64() * 2 * math.Pi
		s := math.Sqrt(1 - z*z)
		dist := float64(radius) * (0.5 + 0.5*rng.Float64())

		vertices = append(vertices,
			float32(s*math.Cos(theta)*dist),
			float32(s*math.Sin(theta)*dist),
			float32(z*dist),
			float32(0.3+0.7*rng.Float64()*rng.Float64()), // Mostly dim, a few bright
		)
	}

	return vertices
}

// Draw renders the field with the camera's matrices. dim scales brightness.
func (s *Starfield) Draw(camera *Camera, dim float32) {
	s.shader.Use()
	s.shader.SetMat4("model", s.anchor.ModelMatrix())
	s.shader.SetMat4("view", camera.ViewMatrix())
	s.shader.SetMat4("projection", camera.ProjectionMatrix())
	s.shader.SetFloat("pointSize", s.pointSize)
	s.shader.SetFloat("dim", dim)

	s.vao.Bind()
	gl.DrawArrays(gl.POINTS, 0, int32(s.count))
	s.vao.Unbind()
}

// Delete releases GL resources
func (s *Starfield) Delete() {
	s.vbo.Delete()
	s.vao.Delete()
	s.shader.Delete()
}
