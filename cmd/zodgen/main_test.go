package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CompileFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"type":"number","valids":[3,4]}`), 0o644))
	out := filepath.Join(dir, "gen", "schema.ts")

	var stdout, stderr bytes.Buffer
	code := run([]string{"compile", "-f", in, "-o", out, "-import"}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "import { z } from \"zod\";\n\nz.union([z.literal(3), z.literal(4)])\n", string(got))
	assert.Empty(t, stdout.String())
}

func TestRun_StdinYAML(t *testing.T) {
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("type: string\nflags:\n  label: Name\n")
	code := run([]string{"compile", "-f", "-", "-format", "yaml"}, stdin, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "z.string()\n", stdout.String())
	assert.Contains(t, stderr.String(), "code=dropped")
}

func TestRun_CompileError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader(`{"type":"number","rules":[{"name":"precision","args":[2]}]}`)
	code := run([]string{"compile", "-f", "-"}, stdin, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "code=unsupported_rule")
	assert.Contains(t, stderr.String(), "$.rules[0]")
	assert.Empty(t, stdout.String())
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "zodgen.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("target:\n  strip: false\n"), 0o644))

	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader(`{"type":"string","flags":{"strip":true}}`)
	code := run([]string{"compile", "-f", "-", "-config", cfg}, stdin, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "code=unsupported_feature")
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"compile"}, nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"bogus"}, nil, &stdout, &stderr))
	assert.Equal(t, 0, run([]string{"help"}, nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "zodgen compile")
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, "yaml", detectFormat("a.yml", nil))
	assert.Equal(t, "json", detectFormat("a.json", []byte("type: x")))
	assert.Equal(t, "json", detectFormat("-", []byte("  {}")))
	assert.Equal(t, "yaml", detectFormat("-", []byte("type: string")))
}
