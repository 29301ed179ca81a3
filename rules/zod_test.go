package rules_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/zodgen/describe"
	"github.com/reoring/zodgen/rules"
)

func num(s string) describe.Literal { return describe.Number(s) }

func TestZod_Emitters(t *testing.T) {
	tests := []struct {
		kind describe.Kind
		rule string
		args []describe.Literal
		want string
	}{
		{describe.KindString, "min", []describe.Literal{num("3")}, ".min(3)"},
		{describe.KindString, "uri", nil, ".url()"},
		{describe.KindString, "uuid", nil, ".uuid()"},
		{describe.KindString, "regex", []describe.Literal{describe.String("a/b")}, `.regex(new RegExp("a/b"))`},
		{describe.KindString, "case", []describe.Literal{describe.String("upper")}, ".toUpperCase()"},
		{describe.KindString, "isoDate", nil, ".datetime()"},
		{describe.KindNumber, "less", []describe.Literal{num("-2.5e3")}, ".lt(-2.5e3)"},
		{describe.KindNumber, "port", nil, ".int().min(0).max(65535)"},
		{describe.KindNumber, "sign", []describe.Literal{describe.String("negative")}, ".negative()"},
		{describe.KindDate, "greater", []describe.Literal{num("86400000")}, `.refine((value) => value > new Date("1970-01-02T00:00:00.000Z"), { message: "must be after 1970-01-02T00:00:00.000Z" })`},
		{describe.KindArray, "length", []describe.Literal{num("2")}, ".length(2)"},
		{describe.KindObject, "length", []describe.Literal{num("2")}, `.refine((value) => Object.keys(value).length === 2, { message: "must contain exactly 2 keys" })`},
	}
	table := rules.Zod()
	for _, tt := range tests {
		t.Run(string(tt.kind)+"."+tt.rule, func(t *testing.T) {
			e, ok := table.Lookup(tt.kind, tt.rule)
			require.True(t, ok)
			got, err := e(tt.args, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZod_Missing(t *testing.T) {
	table := rules.Zod()
	for _, k := range [][2]string{{"number", "precision"}, {"boolean", "min"}, {"any", "min"}, {"string", "creditCard"}} {
		_, ok := table.Lookup(describe.Kind(k[0]), k[1])
		assert.False(t, ok, "%s.%s", k[0], k[1])
	}
}

func TestZod_BadArguments(t *testing.T) {
	table := rules.Zod()
	e, _ := table.Lookup(describe.KindString, "min")
	_, err := e([]describe.Literal{describe.String("ten")}, nil)
	require.Error(t, err)

	e, _ = table.Lookup(describe.KindString, "case")
	_, err = e([]describe.Literal{describe.String("title")}, nil)
	require.Error(t, err)

	e, _ = table.Lookup(describe.KindDate, "max")
	_, err = e([]describe.Literal{describe.String("now")}, nil)
	assert.True(t, errors.Is(err, rules.ErrUnsupportedArgs))

	e, _ = table.Lookup(describe.KindArray, "unique")
	_, err = e([]describe.Literal{describe.String("id")}, nil)
	assert.True(t, errors.Is(err, rules.ErrUnsupportedArgs))

	e, _ = table.Lookup(describe.KindString, "max")
	_, err = e([]describe.Literal{num("10"), describe.String("utf8")}, nil)
	assert.True(t, errors.Is(err, rules.ErrUnsupportedArgs), "length encoding")
}

func opt(name string, values ...describe.Literal) describe.Option {
	return describe.Option{Name: name, Values: values}
}

func TestZod_Options(t *testing.T) {
	s := describe.String
	tests := []struct {
		rule string
		args []describe.Literal
		opts []describe.Option
		want string
	}{
		{"pattern", []describe.Literal{s("/^a/")}, []describe.Option{opt("invert", describe.Bool(true))},
			`.refine((value) => !/^a/.test(value), { message: "must not match /^a/" })`},
		{"pattern", []describe.Literal{s("/^a/")}, []describe.Option{opt("invert", describe.Bool(false))}, ".regex(/^a/)"},
		{"pattern", []describe.Literal{s("^a")}, []describe.Option{opt("name", s("alpha")), opt("invert", describe.Bool(true))},
			`.refine((value) => !new RegExp("^a").test(value), { message: "must not match alpha" })`},
		{"pattern", []describe.Literal{s("/^a/")}, []describe.Option{opt("name", s("alpha"))}, `.regex(/^a/, { message: "must match alpha" })`},
		{"ip", nil, []describe.Option{opt("version", s("ipv4"))}, `.ip({ version: "v4" })`},
		{"ip", nil, []describe.Option{opt("version", s("ipv4"), s("ipv6")), opt("cidr", s("forbidden"))}, ".ip()"},
		{"ip", nil, []describe.Option{opt("version", s("ipv6")), opt("cidr", s("required"))}, `.cidr({ version: "v6" })`},
		{"guid", nil, []describe.Option{opt("version", s("uuidv1"), s("uuidv4"))}, ".uuid().regex(/^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[14]/)"},
		{"guid", nil, []describe.Option{opt("separator", s("-"))}, ".uuid()"},
		{"hex", nil, []describe.Option{opt("byteAligned", describe.Bool(false))}, ".regex(/^[a-fA-F0-9]+$/)"},
		{"base64", nil, []describe.Option{opt("paddingRequired", describe.Bool(true))}, ".base64()"},
		{"trim", []describe.Literal{describe.Bool(false)}, nil, ""},
	}
	table := rules.Zod()
	for _, tt := range tests {
		e, ok := table.Lookup(describe.KindString, tt.rule)
		require.True(t, ok, tt.rule)
		got, err := e(tt.args, tt.opts)
		require.NoError(t, err, tt.rule)
		assert.Equal(t, tt.want, got, tt.rule)
	}
}

func TestZod_UnmodelledOptions(t *testing.T) {
	s := describe.String
	tests := []struct {
		rule string
		args []describe.Literal
		opt  describe.Option
	}{
		{"pattern", []describe.Literal{s("/^a/")}, opt("multiline", describe.Bool(true))},
		{"ip", nil, opt("cidr", s("optional"))},
		{"ip", nil, opt("version", s("ipvfuture"))},
		{"guid", nil, opt("version", s("uuidv9"))},
		{"guid", nil, opt("separator", s(":"))},
		{"email", nil, opt("allowUnicode", describe.Bool(false))},
		{"email", nil, describe.Option{Name: "tlds", Nested: true}},
		{"uri", nil, opt("scheme", s("https"))},
		{"uri", nil, opt("allowRelative", describe.Bool(true))},
		{"hex", nil, opt("byteAligned", describe.Bool(true))},
		{"base64", nil, opt("urlSafe", describe.Bool(true))},
		{"min", []describe.Literal{num("1")}, opt("x", describe.Bool(true))},
	}
	table := rules.Zod()
	for _, tt := range tests {
		t.Run(tt.rule+"."+tt.opt.Name, func(t *testing.T) {
			e, ok := table.Lookup(describe.KindString, tt.rule)
			require.True(t, ok)
			_, err := e(tt.args, []describe.Option{tt.opt})
			assert.True(t, errors.Is(err, rules.ErrUnsupportedArgs), "%v", err)
		})
	}
}

func TestTable_CloneIsIndependent(t *testing.T) {
	a := rules.Zod()
	a.Register(describe.KindBoolean, "truthy", rules.Plain(func([]describe.Literal) (string, error) { return "", nil }))
	_, ok := rules.Zod().Lookup(describe.KindBoolean, "truthy")
	assert.False(t, ok)
	assert.Contains(t, a.Names(describe.KindBoolean), "truthy")

	var empty *rules.Table
	_, ok = empty.Lookup(describe.KindString, "min")
	assert.False(t, ok)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"a\"b\\c\nd"`, rules.Quote("a\"b\\c\nd"))
	assert.Equal(t, `" x\u0001"`, rules.Quote(" x\x01"))
	assert.Equal(t, `"héllo"`, rules.Quote("héllo"))
}

func TestRegex(t *testing.T) {
	assert.Equal(t, "/^a$/gi", rules.Regex("/^a$/gi"))
	assert.Equal(t, `new RegExp("^a$")`, rules.Regex("^a$"))
	assert.Equal(t, `new RegExp("/a/x")`, rules.Regex("/a/x"))
}
