// Command gifview plays a container-format animated bitmap file in a
// window, pacing frames by their graphic-control delay. It is the
// adapter program spec.md §6 describes as "the caller's problem": the
// decoder core never imports gl, glfw, or cli.
package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli/v3"

	"github.com/cam-per/gifdec/gif"
	"github.com/cam-per/gifdec/internal/rendering"
	"github.com/cam-per/gifdec/utils"
)

func main() {
	cmd := &cli.Command{
		Name:  "gifview",
		Usage: "play a container-format animated bitmap file",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "loop", Usage: "repeat forever; without it the file plays once and its own loop count is not used"},
			&cli.BoolFlag{Name: "strict", Usage: "reject palette indices outside the active palette's size"},
			&cli.IntFlag{Name: "scale", Value: 1, Usage: "integer window scale factor"},
			&cli.BoolFlag{Name: "verbose", Usage: "print a per-frame status line"},
			&cli.BoolFlag{Name: "dump", Usage: "hex-dump the first frame's raster to stderr instead of opening a window"},
		},
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "gifview:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return cli.Exit("usage: gifview [options] <path>", 1)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var opts []gif.Option
	if cmd.Bool("strict") {
		opts = append(opts, gif.WithStrictPalette(true))
	}
	if cmd.Bool("verbose") {
		opts = append(opts, gif.WithWarnSink(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warn: "+format+"\n", args...)
		}))
	}

	dec, err := gif.Open(f, opts...)
	if err != nil {
		return err
	}
	defer dec.Close()

	if cmd.Bool("dump") {
		frame, err := dec.NextFrame()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "frame 0: %dx%d, %s\n", frame.Width, frame.Height, humanize.Bytes(uint64(len(frame.Pix))))
		utils.HexDump(os.Stderr, frame.Pix)
		return nil
	}

	scale := int(cmd.Int("scale"))
	if scale < 1 {
		scale = 1
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initializing glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(dec.Width()*scale, dec.Height()*scale, "gifview: "+path, nil, nil)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing gl: %w", err)
	}

	if err := rendering.LoadShaders(rendering.Shaders()); err != nil {
		return fmt.Errorf("loading shaders: %w", err)
	}
	if err := rendering.CompileShaders(); err != nil {
		return fmt.Errorf("compiling shaders: %w", err)
	}

	quad := rendering.NewQuad()

	verbose := cmd.Bool("verbose")
	forceLoop := cmd.Bool("loop")
	start := time.Now()
	frameIndex := 0

	for !window.ShouldClose() {
		frame, err := dec.NextFrame()
		if errors.Is(err, io.EOF) {
			if !forceLoop {
				break
			}
			// Reopen for another pass; a fresh Decoder is cheaper and
			// simpler than teaching Decoder to seek back to its header.
			if cerr := f.Close(); cerr != nil {
				return cerr
			}
			f, err = os.Open(path)
			if err != nil {
				return err
			}
			dec, err = gif.Open(f, opts...)
			if err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		rgba := rendering.ExpandPalette(frame.Pix, color.Palette(frame.Palette), frame.Meta.Transparent, frame.Meta.TransparentIndex)
		quad.Upload(rgba, frame.Width, frame.Height)

		gl.Viewport(0, 0, int32(dec.Width()*scale), int32(dec.Height()*scale))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		quad.Draw()
		window.SwapBuffers()
		glfw.PollEvents()

		frameIndex++
		if verbose {
			fmt.Fprintf(os.Stderr, "%s frame, %s pixels, delay %dcs, elapsed %s\n",
				humanize.Ordinal(frameIndex), humanize.Comma(int64(len(frame.Pix))),
				frame.Meta.DelayCS, humanize.RelTime(start, time.Now(), "", ""))
		}

		delay := time.Duration(frame.Meta.DelayCS) * 10 * time.Millisecond
		if delay == 0 {
			delay = 100 * time.Millisecond
		}
		time.Sleep(delay)
	}

	return nil
}
