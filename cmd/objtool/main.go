// objtool is a CLI utility for inspecting Wavefront OBJ models.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/engine/texture"
	"github.com/Faultbox/objview/internal/logger"
)

type command struct {
	run   func(w io.Writer, m *model.Model)
	usage string
}

var commands = map[string]command{
	"info":      {cmdInfo, "Show model summary"},
	"meshes":    {cmdMeshes, "List mesh segments"},
	"materials": {cmdMaterials, "List materials and texture maps"},
	"bounds":    {cmdBounds, "Show bounding box and normalization"},
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	if name == "help" || name == "-h" || name == "--help" {
		printUsage()
		return
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", name)
		printUsage()
		os.Exit(1)
	}

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	verbose := fs.Bool("v", false, "Log loader diagnostics to stderr")
	noTextures := fs.Bool("no-textures", false, "Skip decoding texture maps")
	charset := fs.String("charset", "", "Text encoding of OBJ and MTL files")
	fs.Parse(os.Args[2:])

	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: objtool %s [-v] [-no-textures] [-charset name] <file.obj>...\n", name)
		os.Exit(1)
	}

	if *verbose {
		if err := logger.Setup(logger.Options{Level: "debug", Console: true}); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	opts := model.LoadOptions{Charset: *charset}
	if *noTextures {
		opts.Textures = skipTextures{}
	}

	if err := run(os.Stdout, cmd, fs.Args(), opts); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		os.Exit(1)
	}
}

// run applies cmd to every file, continuing past failures.
func run(w io.Writer, cmd command, paths []string, opts model.LoadOptions) error {
	var errs error
	for i, path := range paths {
		m, err := model.Load(path, opts)
		if err != nil {
			logger.Debug("load failed", zap.String("path", path), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		if len(paths) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", path)
		}
		cmd.run(w, m)
	}
	return errs
}

func printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println(`objtool - Wavefront OBJ inspection utility

Usage:
  objtool <command> [-v] [-no-textures] [-charset name] <file.obj>...

Commands:`)
	for _, name := range names {
		fmt.Printf("  %-10s %s\n", name, commands[name].usage)
	}
	fmt.Println(`
Examples:
  objtool info teapot.obj
  objtool meshes -no-textures models/*.obj`)
}

// skipTextures satisfies texture.Loader without touching the filesystem.
type skipTextures struct{}

func (skipTextures) Load(path string) (*texture.Texture, error) {
	return &texture.Texture{Path: path}, nil
}

func cmdInfo(w io.Writer, m *model.Model) {
	s := m.Stats()
	fmt.Fprintf(w, "Name:      %s\n", m.Name)
	fmt.Fprintf(w, "Path:      %s\n", m.Path)
	fmt.Fprintf(w, "Meshes:    %d\n", s.Meshes)
	fmt.Fprintf(w, "Materials: %d\n", s.Materials)
	fmt.Fprintf(w, "Textures:  %d\n", s.Textures)
	fmt.Fprintf(w, "Vertices:  %d\n", s.Vertices)
	fmt.Fprintf(w, "Triangles: %d\n", s.Triangles)
}

func cmdMeshes(w io.Writer, m *model.Model) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tMATERIAL\tVERTICES\tTRIANGLES\tNORMALS\tTEXCOORDS")
	for i, mesh := range m.Meshes() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\t%s\n",
			i, orDash(mesh.Name), orDash(mesh.MaterialName),
			len(mesh.Vertices), mesh.TriangleCount(),
			source(mesh.HasNormals), source(mesh.HasTexCoords))
	}
	tw.Flush()
}

func cmdMaterials(w io.Writer, m *model.Model) {
	mats := m.Materials()
	names := make([]string, 0, len(mats))
	for name := range mats {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDIFFUSE\tNs\td\tMAPS")
	for _, name := range names {
		mat := mats[name]
		maps := "-"
		if paths := mat.TextureMaps(); len(paths) > 0 {
			maps = fmt.Sprint(paths)
		}
		fmt.Fprintf(tw, "%s\t(%.3g %.3g %.3g)\t%g\t%g\t%s\n",
			name, mat.Diffuse.X, mat.Diffuse.Y, mat.Diffuse.Z, mat.Shininess, mat.Opacity, maps)
	}
	tw.Flush()
}

func cmdBounds(w io.Writer, m *model.Model) {
	b := m.BoundingBox()
	if b.Empty() {
		fmt.Fprintln(w, "No vertices")
		return
	}
	size, center := b.Size(), b.Center()
	norm, _ := model.NormalizationMatrix(b)

	fmt.Fprintf(w, "Min:    (%g, %g, %g)\n", b.Min.X, b.Min.Y, b.Min.Z)
	fmt.Fprintf(w, "Max:    (%g, %g, %g)\n", b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Fprintf(w, "Size:   (%g, %g, %g)\n", size.X, size.Y, size.Z)
	fmt.Fprintf(w, "Center: (%g, %g, %g)\n", center.X, center.Y, center.Z)
	fmt.Fprintf(w, "Normalization scale: %g\n", norm[0])
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func source(explicit bool) string {
	if explicit {
		return "file"
	}
	return "generated"
}
