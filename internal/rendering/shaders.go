// Package rendering owns the GL context glue used by cmd/gifview: the
// shader-program loader (adapted from the teacher's shader pipeline,
// trimmed to the one "blit" program this decoder needs) and the
// texture upload/draw call in texture.go.
package rendering

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

//go:embed all:shaders
var shaderFS embed.FS

type shader struct {
	Handle     uint32
	Type       uint32
	SourceCode string
}

var (
	shadersSources  = map[string][]*shader{}
	shadersPrograms = map[string]uint32{}
)

// LoadShaders walks f, treating each directory that directly contains
// "*.glsl" files as one program keyed by its path within f (for the
// embedded tree, "shaders/blit").
func LoadShaders(f fs.FS) error {
	return fs.WalkDir(f, ".", func(name string, entry fs.DirEntry, err error) error {
		return loadShaderDirectory(f, name, entry, err)
	})
}

// Shaders returns the shader source tree embedded into the binary, for
// LoadShaders(Shaders()).
func Shaders() fs.FS { return shaderFS }

// CompileShaders compiles and links every program LoadShaders found,
// then frees the individual shader objects (only the linked programs
// are kept).
func CompileShaders() error {
	if err := buildShaders(); err != nil {
		return err
	}
	if err := linkShaders(); err != nil {
		return err
	}

	for _, sources := range shadersSources {
		for _, shader := range sources {
			gl.DeleteShader(shader.Handle)
			shader.Handle = 0
		}
	}

	shadersSources = map[string][]*shader{}
	return nil
}

// UseProgram activates the named linked program, a no-op if it was
// never loaded.
func UseProgram(program string) {
	handle, ok := shadersPrograms[program]
	if !ok {
		return
	}
	gl.UseProgram(handle)
}

// Program returns the named program's GL handle and whether it exists,
// for callers that need to look up uniform/attribute locations.
func Program(name string) (uint32, bool) {
	handle, ok := shadersPrograms[name]
	return handle, ok
}

func loadShaderDirectory(fsys fs.FS, dir string, entry fs.DirEntry, err error) error {
	if err != nil {
		return err
	}
	if !entry.IsDir() {
		return nil
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}

	tempShaders := make(map[int]*shader)
	maxSeq := -1
	for _, child := range entries {
		name := child.Name()
		if child.IsDir() || path.Ext(name) != ".glsl" {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return err
		}

		p := strings.Split(name, ".")
		if len(p) != 3 {
			return fmt.Errorf("invalid shader file name: %s", name)
		}

		var shaderType int
		switch p[1] {
		case "vertex":
			shaderType = gl.VERTEX_SHADER
		case "fragment":
			shaderType = gl.FRAGMENT_SHADER
		case "geometry":
			shaderType = gl.GEOMETRY_SHADER
		default:
			return fmt.Errorf("unknown shader type: %s", p[1])
		}

		seq, err := strconv.Atoi(p[0])
		if err != nil {
			return fmt.Errorf("invalid shader sequence number: %s", p[0])
		}
		if seq < 0 {
			return fmt.Errorf("shader sequence number must be non-negative: %d", seq)
		}

		tempShaders[seq] = &shader{
			Type:       uint32(shaderType),
			SourceCode: string(data),
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	if maxSeq == -1 {
		return nil // not a program directory (e.g. the embed root itself)
	}

	finalShaders := make([]*shader, maxSeq+1)
	for i := 0; i <= maxSeq; i++ {
		s, ok := tempShaders[i]
		if !ok {
			return fmt.Errorf("missing shader with sequence number: %d in directory: %s", i, dir)
		}
		finalShaders[i] = s
	}

	shadersSources[dir] = finalShaders
	return nil
}

func buildShaders() error {
	for name, sources := range shadersSources {
		for _, shader := range sources {
			shader.Handle = gl.CreateShader(shader.Type)
			if shader.Handle == 0 {
				return fmt.Errorf("failed to create shader handle for %s", name)
			}

			csources, free := gl.Strs(shader.SourceCode + "\x00")
			gl.ShaderSource(shader.Handle, 1, csources, nil)
			free()
			gl.CompileShader(shader.Handle)

			var status int32
			gl.GetShaderiv(shader.Handle, gl.COMPILE_STATUS, &status)
			if status == gl.FALSE {
				var logLength int32
				gl.GetShaderiv(shader.Handle, gl.INFO_LOG_LENGTH, &logLength)

				logBuffer := make([]byte, logLength)
				logPtr := (*uint8)(gl.Ptr(&logBuffer[0]))
				gl.GetShaderInfoLog(shader.Handle, logLength, nil, logPtr)
				logString := gl.GoStr((*uint8)(gl.Ptr(&logBuffer[0])))

				gl.DeleteShader(shader.Handle)
				return fmt.Errorf("failed to compile shader %s:\n%s", name, logString)
			}
		}
	}
	return nil
}

func linkShaders() error {
	shadersPrograms = make(map[string]uint32)
	for name, sources := range shadersSources {
		program := gl.CreateProgram()
		for _, shader := range sources {
			gl.AttachShader(program, shader.Handle)
		}
		gl.LinkProgram(program)

		var status int32
		gl.GetProgramiv(program, gl.LINK_STATUS, &status)
		if status == gl.FALSE {
			var logLength int32
			gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

			logBuffer := make([]byte, logLength)
			logPtr := (*uint8)(gl.Ptr(&logBuffer[0]))
			gl.GetProgramInfoLog(program, logLength, nil, logPtr)
			logString := gl.GoStr((*uint8)(gl.Ptr(&logBuffer[0])))

			gl.DeleteProgram(program)
			return fmt.Errorf("failed to link program %s:\n%s", name, logString)
		}
		shadersPrograms[name] = program
	}
	return nil
}
