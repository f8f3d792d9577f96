package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	xencoding "golang.org/x/text/encoding"

	"github.com/Faultbox/objview/internal/engine/texture"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/pkg/encoding"
	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

// Load errors. Parse failures are reported as *formats.ParseError wrapping
// one of these or a formats sentinel.
var (
	ErrIO               = errors.New("i/o error")
	ErrMaterialNotFound = errors.New("material not found")
)

// Load reads an OBJ file, every MTL library it references and every texture
// those libraries name. Any failure aborts the load; no partial model is
// returned.
func Load(path string, opts LoadOptions) (*Model, error) {
	if err := formats.ValidOBJPath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	return Read(f, path, opts)
}

// Read assembles a model from OBJ text. path names the source for error
// messages and the default model name, and its directory anchors mtllib
// references. Its extension is not checked.
func Read(r io.Reader, path string, opts LoadOptions) (*Model, error) {
	charset, err := encoding.Lookup(opts.Charset)
	if err != nil {
		return nil, err
	}

	a := newAssembler(path, opts)
	a.charset = charset
	if err := a.run(encoding.NewReader(r, charset)); err != nil {
		return nil, err
	}

	s := a.model.Stats()
	b := a.model.bounds
	mn, mx := b.Min.Array(), b.Max.Array()
	a.log.Info("model loaded",
		zap.String("name", a.model.Name),
		zap.String("path", path),
		zap.String("charset", encoding.Name(a.charset)),
		zap.Int("meshes", s.Meshes),
		zap.Int("materials", s.Materials),
		zap.Int("vertices", s.Vertices),
		zap.Int("triangles", s.Triangles),
		zap.Int("textures", s.Textures),
		zap.Float32s("min", mn[:]),
		zap.Float32s("max", mx[:]))
	return a.model, nil
}

// assembler drives the OBJ record stream into a Model.
type assembler struct {
	path     string
	dir      string
	textures texture.Loader
	charset  xencoding.Encoding
	log      *zap.Logger

	model        *Model
	pools        pools
	active       *meshBuilder
	lastMaterial string
	line         int
}

func newAssembler(path string, opts LoadOptions) *assembler {
	textures := opts.Textures
	if textures == nil {
		textures = texture.NewFileLoader(texture.DefaultOptions())
	}

	base := filepath.Base(path)
	return &assembler{
		path:     path,
		dir:      filepath.Dir(path),
		textures: textures,
		log:      logger.Named("model"),
		model: &Model{
			Name:      strings.TrimSuffix(base, filepath.Ext(base)),
			Path:      path,
			materials: make(map[string]*Material),
			bounds:    EmptyBounds(),
		},
		active: newMeshBuilder(""),
	}
}

func (a *assembler) run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		a.line++
		keyword, args, ok := formats.SplitRecord(scanner.Text())
		if !ok {
			continue
		}
		if err := a.record(keyword, args); err != nil {
			return &formats.ParseError{File: a.path, Line: a.line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrIO, a.path, err)
	}

	a.closeSegment()
	return nil
}

func (a *assembler) record(keyword string, args []string) error {
	switch keyword {
	case "v":
		xyz, err := formats.ParseFloats(args, 3, 3)
		if err != nil {
			return fmt.Errorf("v: %w", err)
		}
		p := math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}
		a.pools.positions = append(a.pools.positions, p)
		a.model.bounds.Extend(p)

	case "vt":
		uv, err := formats.ParseFloats(args, 1, 2)
		if err != nil {
			return fmt.Errorf("vt: %w", err)
		}
		t := math.Vec2{X: uv[0]}
		if len(uv) > 1 {
			t.Y = uv[1]
		}
		a.pools.texCoords = append(a.pools.texCoords, t)
		a.active.mesh.HasTexCoords = true

	case "vn":
		xyz, err := formats.ParseFloats(args, 3, 3)
		if err != nil {
			return fmt.Errorf("vn: %w", err)
		}
		a.pools.normals = append(a.pools.normals, math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
		a.active.mesh.HasNormals = true

	case "f":
		n, err := a.active.addFace(args, &a.pools)
		if err != nil {
			return err
		}
		if n == 0 {
			a.log.Debug("skipping degenerate face", zap.Int("line", a.line), zap.Int("vertices", len(args)))
		}

	case "g":
		a.startSegment()
		a.active.mesh.Name = strings.Join(args, " ")

	case "o":
		if len(args) > 0 {
			a.model.Name = strings.Join(args, " ")
		}

	case "usemtl":
		name := formats.MaterialKey(strings.Join(args, " "))
		if _, ok := a.model.materials[name]; !ok || name == "" {
			return fmt.Errorf("%w: %q", ErrMaterialNotFound, name)
		}
		a.startSegment()
		a.active.mesh.MaterialName = name
		a.lastMaterial = name

	case "mtllib":
		for _, ref := range args {
			if err := a.loadMaterialLib(resolvePath(a.dir, ref)); err != nil {
				return err
			}
		}

	default:
		// s, l, curv and friends carry nothing the meshes use
	}
	return nil
}

// startSegment closes the open segment and begins a new one. A segment that
// has produced no vertex stays open so its name, material and attribute
// flags carry over.
func (a *assembler) startSegment() {
	if a.closeSegment() {
		a.active = newMeshBuilder("")
	}
}

// closeSegment emits the open segment as a mesh unless it is empty.
func (a *assembler) closeSegment() bool {
	if a.active.empty() {
		return false
	}

	mesh := a.active.finish(a.model.bounds, a.lastMaterial)
	a.model.meshes = append(a.model.meshes, mesh)

	a.log.Debug("mesh closed",
		zap.String("name", mesh.Name),
		zap.String("material", mesh.MaterialName),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Bool("normals", mesh.HasNormals),
		zap.Bool("texcoords", mesh.HasTexCoords))
	return true
}

// loadMaterialLib parses an MTL file into the material bank and decodes
// its textures. Later definitions of a name replace earlier ones.
func (a *assembler) loadMaterialLib(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	lib, err := formats.ParseMTL(encoding.NewReader(f, a.charset))
	if err != nil {
		var perr *formats.ParseError
		if errors.As(err, &perr) {
			perr.File = path
			return perr
		}
		return fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}

	dir := filepath.Dir(path)
	for _, name := range lib.Order {
		m := &Material{Material: *lib.Get(name)}
		if err := a.loadTextures(m, dir); err != nil {
			return fmt.Errorf("material %q: %w", name, err)
		}
		a.model.materials[name] = m
	}

	a.log.Debug("material library loaded",
		zap.String("path", path),
		zap.Int("materials", len(lib.Order)))
	return nil
}

func (a *assembler) loadTextures(m *Material, dir string) error {
	maps := []struct {
		path string
		dst  **texture.Texture
	}{
		{m.DiffuseMap, &m.DiffuseTexture},
		{m.SpecularMap, &m.SpecularTexture},
		{m.NormalMap, &m.NormalTexture},
	}
	for _, tm := range maps {
		if tm.path == "" {
			continue
		}
		tex, err := a.textures.Load(resolvePath(dir, tm.path))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		a.log.Debug("texture loaded",
			zap.String("material", m.Name),
			zap.String("path", tex.Path),
			zap.Int("width", tex.Width),
			zap.Int("height", tex.Height))
		*tm.dst = tex
	}
	return nil
}

// resolvePath anchors a relative file reference at dir.
func resolvePath(dir, ref string) string {
	ref = filepath.FromSlash(ref)
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(dir, ref)
}
