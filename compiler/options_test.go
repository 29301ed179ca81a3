package compiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/zodgen/compiler"
	"github.com/reoring/zodgen/describe"
)

func TestLoadOptions_Defaults(t *testing.T) {
	opts, err := compiler.LoadOptions(strings.NewReader(""))
	require.NoError(t, err)
	def := compiler.DefaultOptions()
	assert.Equal(t, def.Target, opts.Target)
	assert.Equal(t, describe.DefaultMaxDepth, opts.MaxDepth)
	assert.True(t, opts.Export)
	assert.Nil(t, opts.Naming)
}

func TestLoadOptions_Overrides(t *testing.T) {
	cfg := `
target:
  ident: zz
  refine: false
  singleMemberUnion: true
maxDepth: 10
export: false
import: true
header: generated
naming:
  suffix: Schema
`
	opts, err := compiler.LoadOptions(strings.NewReader(cfg))
	require.NoError(t, err)
	assert.Equal(t, "zz", opts.Target.Ident)
	assert.False(t, opts.Target.Refine)
	assert.True(t, opts.Target.Strip, "absent fields keep defaults")
	assert.True(t, opts.Target.SingleMemberUnion)
	assert.Equal(t, 10, opts.MaxDepth)
	assert.False(t, opts.Export)
	assert.True(t, opts.Import)
	require.NotNil(t, opts.Naming)
	assert.Equal(t, "UserSchema", opts.Naming("User"))

	out, err := compiler.Compile(`{"type":"string","metas":[{"className":"Name"}]}`, opts)
	require.NoError(t, err)
	assert.Equal(t, "// generated\nimport { z as zz } from \"zod\";\n\nconst NameSchema = zz.string();", out)
}

func TestLoadOptions_Rejects(t *testing.T) {
	for name, cfg := range map[string]string{
		"unknown field": "target:\n  strict: true\n",
		"bad depth":     "maxDepth: 0\n",
		"bad type":      "export: maybe\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := compiler.LoadOptions(strings.NewReader(cfg))
			require.Error(t, err)
		})
	}
}

func TestCompile_ZeroOptions(t *testing.T) {
	out, err := compiler.Compile(`{"type":"number","rules":[{"name":"min","args":[1]}]}`, compiler.Options{})
	require.NoError(t, err)
	assert.Equal(t, "z.number().min(1)", out)
}
