// Package shader locates WGSL programs by name, checks their entry points and validates them with naga.
package shader

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

const (
	// VertexEntryPoint is the vertex stage entry point every program must export.
	VertexEntryPoint = "vs_main"

	// FragmentEntryPoint is the fragment stage entry point every program must export.
	FragmentEntryPoint = "fs_main"

	// Extension is the file extension programs are stored with.
	Extension = ".wgsl"
)

var (
	// ErrNotFound is returned when no program with the requested name exists in the source FS.
	ErrNotFound = errors.New("shader program not found")

	// ErrMissingEntryPoint is returned when a program lacks vs_main or fs_main.
	ErrMissingEntryPoint = errors.New("shader program missing entry point")

	// ErrInvalidProgram is returned when naga rejects the program.
	ErrInvalidProgram = errors.New("shader program failed validation")
)

// Program is a loaded WGSL program with one vertex and one fragment entry point.
type Program interface {
	// Name returns the name the program was loaded by.
	//
	// Returns:
	//   - string: the program name
	Name() string

	// Source returns the WGSL source.
	//
	// Returns:
	//   - string: the WGSL source code of the program
	Source() string

	// VertexEntry returns the vertex stage entry point name.
	VertexEntry() string

	// FragmentEntry returns the fragment stage entry point name.
	FragmentEntry() string

	// Module returns the descriptor the renderer creates its shader module from.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// Validated reports whether naga compiled the program during Load.
	Validated() bool
}

// program is the implementation of the Program interface.
type program struct {
	name      string
	source    string
	vertex    string
	fragment  string
	module    *wgpu.ShaderModuleDescriptor
	validated bool
}

var _ Program = &program{}

// loader carries the options of a single Load call.
type loader struct {
	fsys     fs.FS
	root     string
	validate bool
}

// Load reads the program <name>.wgsl, checks that it exports vs_main and fs_main, and validates it by
// compiling it with naga. Programs come from the embedded Assets unless WithFS or WithSourceDir is given.
//
// Parameters:
//   - name: the program name, without the .wgsl extension
//   - opts: functional options
//
// Returns:
//   - Program: the loaded program
//   - error: ErrNotFound, ErrMissingEntryPoint or ErrInvalidProgram
func Load(name string, opts ...LoaderOption) (Program, error) {
	l := &loader{
		fsys:     Assets,
		root:     assetsRoot,
		validate: true,
	}
	for _, opt := range opts {
		opt(l)
	}

	name = strings.TrimSuffix(name, Extension)
	if name == "" {
		return nil, errors.Wrap(ErrNotFound, "empty program name")
	}

	data, err := fs.ReadFile(l.fsys, path.Join(l.root, name+Extension))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "%q", name)
		}
		return nil, errors.Wrapf(err, "reading shader %q", name)
	}
	return parseProgram(name, string(data), l.validate)
}

// parseProgram builds a Program from WGSL source.
func parseProgram(name, source string, validate bool) (*program, error) {
	vertex, fragment := parseEntryPoints(source)
	if !contains(vertex, VertexEntryPoint) {
		return nil, errors.Wrapf(ErrMissingEntryPoint, "%q has no @vertex fn %s (found %v)", name, VertexEntryPoint, vertex)
	}
	if !contains(fragment, FragmentEntryPoint) {
		return nil, errors.Wrapf(ErrMissingEntryPoint, "%q has no @fragment fn %s (found %v)", name, FragmentEntryPoint, fragment)
	}

	p := &program{
		name:     name,
		source:   source,
		vertex:   VertexEntryPoint,
		fragment: FragmentEntryPoint,
		module: &wgpu.ShaderModuleDescriptor{
			Label: name,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: source,
			},
		},
	}

	if validate {
		spirv, err := naga.Compile(source)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "compiling %q", name), ErrInvalidProgram)
		}
		if len(spirv) == 0 {
			return nil, errors.Wrapf(ErrInvalidProgram, "%q compiled to empty SPIR-V", name)
		}
		p.validated = true
	}
	return p, nil
}

func (p *program) Name() string {
	return p.name
}

func (p *program) Source() string {
	return p.source
}

func (p *program) VertexEntry() string {
	return p.vertex
}

func (p *program) FragmentEntry() string {
	return p.fragment
}

func (p *program) Module() *wgpu.ShaderModuleDescriptor {
	return p.module
}

func (p *program) Validated() bool {
	return p.validated
}

// LoaderOption is a functional option for Load.
type LoaderOption func(l *loader)

// WithFS loads programs from the root of fsys instead of the embedded assets.
//
// Parameters:
//   - fsys: the file system holding <name>.wgsl files
//
// Returns:
//   - LoaderOption: option function to apply
func WithFS(fsys fs.FS) LoaderOption {
	return func(l *loader) {
		l.fsys = fsys
		l.root = "."
	}
}

// WithSourceDir loads programs from a directory on disk.
//
// Parameters:
//   - dir: the directory holding <name>.wgsl files
//
// Returns:
//   - LoaderOption: option function to apply
func WithSourceDir(dir string) LoaderOption {
	return WithFS(os.DirFS(dir))
}

// WithValidation toggles naga validation. Enabled by default.
func WithValidation(validate bool) LoaderOption {
	return func(l *loader) {
		l.validate = validate
	}
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
