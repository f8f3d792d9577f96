package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/objview/pkg/math"
)

// Material defaults for properties an MTL file leaves unset.
const (
	DefaultShininess = 32.0
	DefaultOpacity   = 1.0
)

// Material is one newmtl block of an MTL file.
type Material struct {
	Name      string
	Ambient   math.Vec3 // Ka
	Diffuse   math.Vec3 // Kd
	Specular  math.Vec3 // Ks
	Shininess float32   // Ns
	Opacity   float32   // d or Tr, last one wins

	// Texture paths as written in the file, relative to the MTL directory.
	DiffuseMap  string // map_Kd
	SpecularMap string // map_Ks
	NormalMap   string // map_Bump / bump
}

// NewMaterial returns a material with the default white colors,
// shininess and opacity.
func NewMaterial(name string) *Material {
	return &Material{
		Name:      name,
		Ambient:   math.Splat(1),
		Diffuse:   math.Splat(1),
		Specular:  math.Splat(1),
		Shininess: DefaultShininess,
		Opacity:   DefaultOpacity,
	}
}

// TextureMaps returns the non-empty texture paths of the material.
func (m *Material) TextureMaps() []string {
	var paths []string
	for _, p := range []string{m.DiffuseMap, m.SpecularMap, m.NormalMap} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// MaterialLib is the material bank read from one MTL file.
type MaterialLib struct {
	Materials map[string]*Material
	Order     []string // Material names in first-declaration order
}

// Get returns the named material, or nil.
func (lib *MaterialLib) Get(name string) *Material {
	return lib.Materials[name]
}

func (lib *MaterialLib) add(m *Material) {
	if m == nil || m.Name == "" {
		return
	}
	if _, seen := lib.Materials[m.Name]; !seen {
		lib.Order = append(lib.Order, m.Name)
	}
	lib.Materials[m.Name] = m
}

// ParseMTL streams an MTL file into a material bank.
// Records before the first newmtl and materials without a name are dropped.
// Unknown records are ignored.
func ParseMTL(r io.Reader) (*MaterialLib, error) {
	lib := &MaterialLib{Materials: make(map[string]*Material)}

	var current *Material
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0

	for scanner.Scan() {
		line++
		keyword, args, ok := SplitRecord(scanner.Text())
		if !ok {
			continue
		}

		if keyword == "newmtl" {
			lib.add(current)
			current = NewMaterial(strings.Join(args, " "))
			continue
		}
		if current == nil {
			// Orphan record before any newmtl
			current = NewMaterial("")
		}

		if err := parseMaterialRecord(current, keyword, args); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	lib.add(current)
	return lib, nil
}

func parseMaterialRecord(m *Material, keyword string, args []string) error {
	switch keyword {
	case "Ka", "Kd", "Ks":
		c, err := parseColor(keyword, args)
		if err != nil {
			return err
		}
		switch keyword {
		case "Ka":
			m.Ambient = c
		case "Kd":
			m.Diffuse = c
		default:
			m.Specular = c
		}
	case "Ns":
		v, err := ParseFloats(args, 1, 1)
		if err != nil {
			return fmt.Errorf("Ns: %w", err)
		}
		m.Shininess = v[0]
	case "d", "Tr":
		v, err := ParseFloats(args, 1, 1)
		if err != nil {
			return fmt.Errorf("%s: %w", keyword, err)
		}
		m.Opacity = v[0]
	case "map_Kd":
		m.DiffuseMap = parseMapPath(args)
	case "map_Ks":
		m.SpecularMap = parseMapPath(args)
	case "map_Bump", "map_bump", "bump":
		m.NormalMap = parseMapPath(args)
	}
	return nil
}

// parseColor reads "r g b". A single value is used for all three channels.
func parseColor(keyword string, args []string) (math.Vec3, error) {
	v, err := ParseFloats(args, 1, 3)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("%s: %w", keyword, err)
	}
	switch len(v) {
	case 3:
		return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
	case 1:
		return math.Splat(v[0]), nil
	default:
		return math.Vec3{}, fmt.Errorf("%s: %w: want 3 components, got %d", keyword, ErrMalformedRecord, len(v))
	}
}

// mapOptionArgs is the fixed argument count of texture map options.
// Options missing here take up to three numeric arguments.
var mapOptionArgs = map[string]int{
	"-blendu":  1,
	"-blendv":  1,
	"-bm":      1,
	"-boost":   1,
	"-cc":      1,
	"-clamp":   1,
	"-imfchan": 1,
	"-texres":  1,
	"-type":    1,
	"-mm":      2,
}

// parseMapPath skips "-option value" pairs and returns the file name,
// which may contain spaces.
func parseMapPath(args []string) string {
	i := 0
	for i < len(args) && strings.HasPrefix(args[i], "-") && len(args[i]) > 1 {
		opt := args[i]
		i++
		if n, ok := mapOptionArgs[opt]; ok {
			i += n
			continue
		}
		// -o, -s, -t: one to three numbers
		for n := 0; n < 3 && i < len(args); n++ {
			if _, err := strconv.ParseFloat(args[i], 32); err != nil {
				break
			}
			i++
		}
	}
	if i >= len(args) {
		return ""
	}
	return strings.Join(args[i:], " ")
}
