package hw

import (
	"fmt"
	"sync/atomic"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/veandco/go-sdl2/sdl"

	"objdemo/emu/log"
)

type WindowConfig struct {
	Title        string
	Scale        int
	Monitor      int32
	DisableVSync bool
}

// Window is a Sink showing frames in an SDL window, through an OpenGL texture
// stretched over the whole window. All SDL calls are made on the main thread
// with sdl.Do, so the window must be created from within sdl.Main.
type Window struct {
	*sdl.Window
	prog    uint32
	texture uint32
	vao     uint32
	context sdl.GLContext

	quit atomic.Bool
}

// NewWindow creates an OpenGL window with a full-window texture of the
// screen size, scaled by cfg.Scale.
func NewWindow(cfg WindowConfig) (*Window, error) {
	type result struct {
		w   *Window
		err error
	}
	errc := make(chan result, 1)
	sdl.Do(func() {
		w, err := newWindow(cfg)
		errc <- result{w, err}
	})
	res := <-errc
	return res.w, res.err
}

func newWindow(cfg WindowConfig) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %s", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	scale := max(cfg.Scale, 1)
	winw := int32(ScreenWidth * scale)
	winh := int32(ScreenHeight * scale)

	posx, posy := int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED)
	if cfg.Monitor > 0 {
		bounds, err := sdl.GetDisplayBounds(int(cfg.Monitor))
		if err != nil {
			log.ModOutput.WarnZ("invalid monitor, using default").
				Int("monitor", int(cfg.Monitor)).
				Error("err", err).
				End()
		} else {
			posx = bounds.X + (bounds.W-winw)/2
			posy = bounds.Y + (bounds.H-winh)/2
		}
	}

	w, err := sdl.CreateWindow(cfg.Title, posx, posy, winw, winh,
		sdl.WINDOW_OPENGL|sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %s", err)
	}

	context, err := w.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL context: %s", err)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize opengl: %s", err)
	}

	interval := 1
	if cfg.DisableVSync {
		interval = 0
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.ModOutput.WarnZ("failed to set swap interval").Error("err", err).End()
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	blank := NewFrame()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, ScreenWidth, ScreenHeight, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&blank[0]))

	vert, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader compilation: %s", err)
	}

	frag, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("fragment shader compilation: %s", err)
	}

	prog, err := linkProgram(vert, frag)
	if err != nil {
		return nil, fmt.Errorf("shader program link: %s", err)
	}

	var VBO, VAO, EBO uint32
	gl.GenVertexArrays(1, &VAO)
	gl.GenBuffers(1, &VBO)
	gl.GenBuffers(1, &EBO)

	gl.BindVertexArray(VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// Position attributes
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 5*4, 0)
	gl.EnableVertexAttribArray(0)

	// Texture coordinate attributes.
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*4, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return &Window{
		Window:  w,
		prog:    prog,
		texture: texture,
		vao:     VAO,
		context: context,
	}, nil
}

// Present uploads the frame to the texture and swaps buffers.
func (w *Window) Present(f Frame) error {
	sdl.Do(func() {
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.UseProgram(w.prog)
		gl.BindTexture(gl.TEXTURE_2D, w.texture)
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, ScreenWidth, ScreenHeight, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&f[0]))
		gl.BindVertexArray(w.vao)
		gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_INT, nil)
		w.GLSwap()
	})
	return nil
}

// Poll processes window events. It reports false once the window has been
// closed or Escape pressed.
func (w *Window) Poll() bool {
	sdl.Do(func() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				w.quit.Store(true)
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					w.quit.Store(true)
				}
			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_RESIZED {
					gl.Viewport(0, 0, e.Data1, e.Data2)
				}
			}
		}
	})
	return !w.quit.Load()
}

func (w *Window) Close() error {
	errc := make(chan error, 1)
	sdl.Do(func() {
		if w.context != nil {
			sdl.GLDeleteContext(w.context)
		}
		err := w.Destroy()
		sdl.Quit()
		errc <- err
	})
	return <-errc
}

// Columns are position and texture coordinates.
// Rows are the quad vertices in clockwise order.
var vertices = []float32{
	// x, y, z, s, t
	1.0, 1.0, 0, 1, 0, // top right
	1.0, -1.0, 0, 1, 1, // bottom right
	-1.0, -1.0, 0, 0, 1, // bottom left
	-1.0, 1.0, 0, 0, 0, // top left
}

var indices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

const vertexShaderSource = `
#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 TexCoord;

void main() {
    gl_Position = vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
` + "\x00"

const fragmentShaderSource = `
#version 330 core
out vec4 FragColor;
in vec2 TexCoord;

uniform sampler2D screen;

void main() {
    FragColor = texture(screen, TexCoord);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(source)
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	if gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status); status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)

		msg := make([]byte, logLength+1)
		gl.GetShaderInfoLog(sh, logLength, nil, &msg[0])

		return 0, fmt.Errorf("shader compile error: %v", string(msg))
	}

	return sh, nil
}

func linkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	prg := gl.CreateProgram()
	gl.AttachShader(prg, vertexShader)
	gl.AttachShader(prg, fragmentShader)
	gl.LinkProgram(prg)

	var status int32
	if gl.GetProgramiv(prg, gl.LINK_STATUS, &status); status == gl.FALSE {
		var logLength int32
		var glLog [256]byte
		gl.GetProgramInfoLog(prg, int32(len(glLog)), &logLength, &glLog[0])
		return 0, fmt.Errorf("shader program link error: %v", string(glLog[:logLength]))
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return prg, nil
}
