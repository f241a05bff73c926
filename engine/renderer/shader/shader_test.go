package shader

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cockroachdb/errors"
)

const validWGSL = `
@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

func TestLoadEmbedded(t *testing.T) {
	p, err := Load("glix", WithValidation(false))
	if err != nil {
		t.Fatalf("Load(glix) error = %v", err)
	}
	if p.Name() != "glix" {
		t.Errorf("Name() = %q", p.Name())
	}
	if p.VertexEntry() != VertexEntryPoint || p.FragmentEntry() != FragmentEntryPoint {
		t.Errorf("entries = %q, %q", p.VertexEntry(), p.FragmentEntry())
	}
	if p.Module() == nil || p.Module().WGSLDescriptor == nil || p.Module().WGSLDescriptor.Code != p.Source() {
		t.Error("module descriptor does not carry the source")
	}
	if p.Module().Label != "glix" {
		t.Errorf("module label = %q", p.Module().Label)
	}
	if p.Validated() {
		t.Error("Validated() = true with validation disabled")
	}
}

func TestLoadEmbeddedWithExtension(t *testing.T) {
	if _, err := Load("glix.wgsl", WithValidation(false)); err != nil {
		t.Fatalf("Load(glix.wgsl) error = %v", err)
	}
}

func TestLoadEmbeddedValidates(t *testing.T) {
	p, err := Load("glix")
	if err != nil {
		if strings.Contains(err.Error(), "not yet implemented") || strings.Contains(err.Error(), "not supported") {
			t.Skipf("naga feature not yet implemented: %v", err)
		}
		t.Fatalf("Load(glix) error = %v", err)
	}
	if !p.Validated() {
		t.Error("Validated() = false")
	}
}

func TestLoadErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"valid.wgsl":       {Data: []byte(validWGSL)},
		"novertex.wgsl":    {Data: []byte(strings.Replace(validWGSL, "vs_main", "vertex_main", 1))},
		"nofragment.wgsl":  {Data: []byte(strings.Replace(validWGSL, "fs_main", "frag", 1))},
		"commented.wgsl":   {Data: []byte("// @vertex fn vs_main() {}\n/* @fragment fn fs_main() {} */\n")},
		"broken.wgsl":      {Data: []byte("@vertex fn vs_main( {\n@fragment fn fs_main() -> {")},
		"nested/deep.wgsl": {Data: []byte(validWGSL)},
	}

	tests := []struct {
		name     string
		program  string
		validate bool
		want     error
	}{
		{"missing", "nope", false, ErrNotFound},
		{"empty name", "", false, ErrNotFound},
		{"no vertex", "novertex", false, ErrMissingEntryPoint},
		{"no fragment", "nofragment", false, ErrMissingEntryPoint},
		{"commented out", "commented", false, ErrMissingEntryPoint},
		{"broken", "broken", true, ErrInvalidProgram},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.program, WithFS(fsys), WithValidation(tt.validate))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load(%q) error = %v, want %v", tt.program, err, tt.want)
			}
		})
	}

	if _, err := Load("valid", WithFS(fsys), WithValidation(false)); err != nil {
		t.Errorf("Load(valid) error = %v", err)
	}
	if _, err := Load("nested/deep", WithFS(fsys), WithValidation(false)); err != nil {
		t.Errorf("Load(nested/deep) error = %v", err)
	}
}

func TestWithSourceDir(t *testing.T) {
	p, err := Load("glix", WithSourceDir("assets"), WithValidation(false))
	if err != nil {
		t.Fatalf("Load from source dir error = %v", err)
	}
	embedded, err := Load("glix", WithValidation(false))
	if err != nil {
		t.Fatal(err)
	}
	if p.Source() != embedded.Source() {
		t.Error("source dir and embedded programs differ")
	}
}

func TestParseEntryPoints(t *testing.T) {
	src := `
/* @vertex fn hidden() {} /* nested */ still hidden */
@vertex
fn vs_main() {}
@vertex fn vs_alt() {}
// @fragment fn commented() {}
@fragment   fn fs_main() {}
`
	vertex, fragment := parseEntryPoints(src)
	if strings.Join(vertex, ",") != "vs_main,vs_alt" {
		t.Errorf("vertex = %v", vertex)
	}
	if strings.Join(fragment, ",") != "fs_main" {
		t.Errorf("fragment = %v", fragment)
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a // b", "a \n"},
		{"a /* b */ c", "a  c\n"},
		{"a /* b /* c */ d */ e", "a  e\n"},
		{"x\ny // z", "x\ny \n"},
	}
	for _, tt := range tests {
		if got := stripComments(tt.in); got != tt.want {
			t.Errorf("stripComments(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
