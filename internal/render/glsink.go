package render

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/lumenforge/pointmorph/internal/logger"
	"github.com/lumenforge/pointmorph/pkg/math"
)

// GLSink renders the particle cloud with OpenGL. The vertex shader holds
// both state buffers and interpolates between them per particle, so a
// transition never re-uploads geometry; only the progress uniform moves.
type GLSink struct {
	program uint32

	vao       uint32
	sourceVBO uint32
	targetVBO uint32
	sizeVBO   uint32
	count     int32

	locView     int32
	locProj     int32
	locProgress int32
	locSize     int32
	locScale    int32
	locColorA   int32
	locColorB   int32

	pointSize float32
}

// NewGLSink creates the shader program and buffers.
// Must be called after an OpenGL context exists.
func NewGLSink() (*GLSink, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.03, 0.03, 0.05, 1.0)

	s := &GLSink{pointSize: 2}

	var err error
	s.program, err = createPointProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	s.locView = gl.GetUniformLocation(s.program, gl.Str("uView\x00"))
	s.locProj = gl.GetUniformLocation(s.program, gl.Str("uProj\x00"))
	s.locProgress = gl.GetUniformLocation(s.program, gl.Str("uProgress\x00"))
	s.locSize = gl.GetUniformLocation(s.program, gl.Str("uPointSize\x00"))
	s.locScale = gl.GetUniformLocation(s.program, gl.Str("uScale\x00"))
	s.locColorA = gl.GetUniformLocation(s.program, gl.Str("uColorA\x00"))
	s.locColorB = gl.GetUniformLocation(s.program, gl.Str("uColorB\x00"))

	gl.GenVertexArrays(1, &s.vao)
	gl.GenBuffers(1, &s.sourceVBO)
	gl.GenBuffers(1, &s.targetVBO)
	gl.GenBuffers(1, &s.sizeVBO)

	return s, nil
}

// Close releases GPU resources.
func (s *GLSink) Close() {
	logger.Info("closing GL sink")
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	for _, vbo := range []*uint32{&s.sourceVBO, &s.targetVBO, &s.sizeVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	if s.program != 0 {
		gl.DeleteProgram(s.program)
	}
}

// UploadStates replaces the source and target position buffers and the
// per-particle size jitter array.
func (s *GLSink) UploadStates(source, target []math.Vec3, sizes []float32) error {
	if len(source) != len(target) || len(source) != len(sizes) {
		return fmt.Errorf("mismatched buffer lengths: source %d, target %d, sizes %d",
			len(source), len(target), len(sizes))
	}
	s.count = int32(len(source))
	if s.count == 0 {
		return nil
	}

	gl.BindVertexArray(s.vao)

	// Source positions (location = 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.sourceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(source)*3*4, unsafe.Pointer(&source[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	// Target positions (location = 1)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.targetVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(target)*3*4, unsafe.Pointer(&target[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(1)

	// Size jitter (location = 2)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.sizeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(sizes)*4, unsafe.Pointer(&sizes[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, 4, nil)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("state buffers uploaded", zap.Int32("particles", s.count))
	return nil
}

// SetProgress sets the interpolation progress uniform.
func (s *GLSink) SetProgress(p float32) {
	gl.UseProgram(s.program)
	gl.Uniform1f(s.locProgress, p)
}

// SetPointSize sets the base point size uniform.
func (s *GLSink) SetPointSize(size float32) {
	s.pointSize = size
	gl.UseProgram(s.program)
	gl.Uniform1f(s.locSize, size)
}

// SetColors sets the two color uniforms.
func (s *GLSink) SetColors(a, b [3]float32) {
	gl.UseProgram(s.program)
	gl.Uniform3f(s.locColorA, a[0], a[1], a[2])
	gl.Uniform3f(s.locColorB, b[0], b[1], b[2])
}

// SetResolution recomputes the perspective size scale from the viewport
// height and device pixel ratio, and updates the GL viewport.
func (s *GLSink) SetResolution(width, height int, pixelRatio float32) {
	gl.Viewport(0, 0, int32(float32(width)*pixelRatio), int32(float32(height)*pixelRatio))
	gl.UseProgram(s.program)
	gl.Uniform1f(s.locScale, float32(height)*pixelRatio*0.5)
	logger.Debug("resolution updated",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float32("pixelRatio", pixelRatio),
	)
}

// Draw renders one frame.
func (s *GLSink) Draw(view, proj math.Mat4) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if s.count == 0 {
		return nil
	}

	gl.UseProgram(s.program)
	gl.UniformMatrix4fv(s.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(s.locProj, 1, false, proj.Ptr())

	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.POINTS, 0, s.count)
	gl.BindVertexArray(0)
	return nil
}

// createPointProgram builds the morphing point shader.
func createPointProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec3 aSource;
		layout (location = 1) in vec3 aTarget;
		layout (location = 2) in float aSize;

		uniform mat4 uView;
		uniform mat4 uProj;
		uniform float uProgress;
		uniform float uPointSize;
		uniform float uScale;

		out float vMix;

		void main() {
			vec3 pos = mix(aSource, aTarget, uProgress);
			vec4 viewPos = uView * vec4(pos, 1.0);
			gl_Position = uProj * viewPos;
			gl_PointSize = uPointSize * aSize * uScale / max(-viewPos.z, 0.1);
			vMix = aSize;
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		in float vMix;

		uniform vec3 uColorA;
		uniform vec3 uColorB;

		out vec4 FragColor;

		void main() {
			vec2 d = gl_PointCoord - vec2(0.5);
			if (dot(d, d) > 0.25) {
				discard;
			}
			FragColor = vec4(mix(uColorA, uColorB, vMix), 1.0);
		}
	` + "\x00"

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}

	logger.Debug("point shader program created", zap.Uint32("program", program))
	return program, nil
}

// compileShader compiles a shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}
