package zodgen

// Package zodgen compiles Joi describe() trees into Zod builder code.
//
// - Readers (source/gojson, source/yaml) decode descriptions keeping key order and number text
// - The describe package normalizes them into a closed Node tree
// - The rules package maps (type, rule) pairs to builder calls
// - The compiler package emits and assembles the final TypeScript text
//
// Design policy:
// - The root package only holds the error model (Issue, error kinds, Path) and diagnostics.
// - Emission and assembly live under internal/; the CLI is cmd/zodgen.
// - Every unsupported rule or feature is an error; nothing is dropped silently.
//
// Typical usage:
//
//  out, err := compiler.Compile(describeJSON, compiler.DefaultOptions())
//  out, diag, err := compiler.CompileWithDiag(describeJSON, compiler.DefaultOptions())
//  if is, ok := zodgen.AsIssue(err); ok {
//      fmt.Println(is.Path, is.Code)
//  }
