package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
	"github.com/specialistvlad/novagraph/internal/config"
	"github.com/specialistvlad/novagraph/internal/ctxlog"
	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layout = `
synth "lead" {
  id       = 1001
  def      = "saw"
  controls = { freq = 440, amp = 0.5 }
}

group "voices" {
  parallel = true

  synth "a" { def = "sine" }
  group "b" {
    id     = "1010"
    paused = true
    synth "b1" { def = "sine" }
  }
  synth "c" {
    def = "pulse"
    id  = "auto"
  }
}

synth "master" {
  def = "limiter"
}
`

func TestLoadBytes(t *testing.T) {
	m, err := NewLoader().LoadBytes([]byte(layout), "layout.hcl")
	require.NoError(t, err)

	want := &config.Model{Nodes: []config.NodeSpec{
		{Synth: &config.SynthSpec{
			Name: "lead", ID: 1001, Def: "saw",
			Controls: map[string]float32{"freq": 440, "amp": 0.5},
		}},
		{Group: &config.GroupSpec{
			Name: "voices", ID: nodeid.Auto, Parallel: true,
			Nodes: []config.NodeSpec{
				{Synth: &config.SynthSpec{Name: "a", ID: nodeid.Auto, Def: "sine"}},
				{Group: &config.GroupSpec{
					Name: "b", ID: 1010, Paused: true,
					Nodes: []config.NodeSpec{
						{Synth: &config.SynthSpec{Name: "b1", ID: nodeid.Auto, Def: "sine"}},
					},
				}},
				{Synth: &config.SynthSpec{Name: "c", ID: nodeid.Auto, Def: "pulse"}},
			},
		}},
		{Synth: &config.SynthSpec{Name: "master", ID: nodeid.Auto, Def: "limiter"}},
	}}

	if diff := deep.Equal(want, m); diff != nil {
		t.Errorf("unexpected model: %v", diff)
	}
	require.NoError(t, m.Validate())
}

func TestLoadBytes_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `synth "a" {`,
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "missing def",
			src:     `synth "a" {}`,
			wantErr: `Missing required argument`,
		},
		{
			name:    "unknown top-level block",
			src:     `voice "a" {}`,
			wantErr: "Unsupported block type",
		},
		{
			name:    "unknown group attribute",
			src:     `group "g" { volume = 3 }`,
			wantErr: "Unsupported argument",
		},
		{
			name:    "nested block in synth",
			src:     "synth \"a\" {\n  def = \"x\"\n  synth \"b\" { def = \"y\" }\n}",
			wantErr: "Unsupported block type",
		},
		{
			name:    "bad id string",
			src:     "synth \"a\" {\n  def = \"x\"\n  id  = \"one\"\n}",
			wantErr: `synth "a": invalid node id "one"`,
		},
		{
			name:    "non-numeric control",
			src:     "synth \"a\" {\n  def      = \"x\"\n  controls = { freq = \"high\" }\n}",
			wantErr: `synth "a": controls:`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().LoadBytes([]byte(tc.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_FilesAndDirectories(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	dir := t.TempDir()
	write := func(name, src string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
		return path
	}
	write("01-in.hcl", `synth "in" { def = "input" }`)
	write("02-fx/reverb.hcl", `synth "reverb" { def = "reverb" }`)
	write("ignored.yaml", `nodes: []`)
	out := write("out/out.hcl", `synth "out" { def = "output" }`)

	m, err := NewLoader().Load(ctx, out, dir)
	require.NoError(t, err)

	var names []string
	for _, n := range m.Nodes {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"out", "in", "reverb"}, names)

	_, err = NewLoader().Load(ctx, filepath.Join(dir, "missing.hcl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
