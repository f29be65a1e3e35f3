package hclunit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/specialistvlad/lambdagen/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersSrc = `
unit "example/orders" {
  version = "0.1.0"
}

import "ballerinax/awslambda" {}

type "Order" {}

function "createOrder" {
  public      = true
  annotations = [awslambda.Function]
  returns     = union(json, error)

  param "ctx" { type = awslambda.Context }
  param "input" { type = json }
}

function "helper" {
  param "o" { type = Order }
  returns = Order
}
`

const mainSrc = `
function "main" {
  public = true
  call "helper" {
    args = [o]
  }
}
`

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	reg := registry.New()
	diags := reg.LoadBuiltins(context.Background())
	require.False(t, diags.HasErrors(), diags.Error())
	return NewLoader(reg)
}

func summaries(diags hcl.Diagnostics) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Summary)
	}
	return out
}

func TestLoadSources_Unit(t *testing.T) {
	// --- Arrange ---
	loader := newTestLoader(t)

	// --- Act ---
	units, diags := loader.LoadSources(context.Background(), map[string][]byte{"orders.hcl": []byte(ordersSrc)})

	// --- Assert ---
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, units, 1)
	unit := units[0]
	assert.Equal(t, "example/orders:0.1.0", unit.ID.String())
	assert.Equal(t, []string{"orders.hcl"}, unit.Files)
	assert.Equal(t, "orders.hcl", unit.Range.Filename)

	require.Len(t, unit.Imports, 1)
	imp := unit.Imports[0]
	assert.Equal(t, "awslambda", imp.Alias)
	assert.True(t, imp.Matches("ballerinax", "awslambda"))
	require.NotNil(t, imp.Symbol)

	fn := unit.Function("createOrder")
	require.NotNil(t, fn)
	assert.Equal(t, "public function createOrder(awslambda:Context ctx, json input) returns json|error", fn.String())
	require.Len(t, fn.Annotations, 1)
	assert.Equal(t, ast.SymbolAnnotation, fn.Annotations[0].Symbol.Kind)
	assert.Equal(t, "Function", fn.Annotations[0].Symbol.Name)

	helper := unit.Function("helper")
	require.NotNil(t, helper)
	assert.False(t, helper.IsPublic())
	assert.Equal(t, "function helper(Order o) returns Order", helper.String())
}

func TestLoadSources_CallReferencingUnknownName(t *testing.T) {
	loader := newTestLoader(t)

	units, diags := loader.LoadSources(context.Background(), map[string][]byte{"orders.hcl": []byte(ordersSrc + mainSrc)})

	require.True(t, diags.HasErrors())
	assert.Contains(t, summaries(diags), "Unknown reference")
	assert.Empty(t, units)
}

func TestLoadSources_MergesFilesOfOneUnit(t *testing.T) {
	// --- Arrange ---
	loader := newTestLoader(t)
	sources := map[string][]byte{
		"b.hcl": []byte(`
unit "example/orders" {}
function "second" {
  call "first" {}
}
`),
		"a.hcl": []byte(`
unit "example/orders" {}
import "ballerinax/awslambda" { as = "lambda" }
function "first" {}
`),
		"c.hcl": []byte(`
unit "example/billing" {}
function "bill" {}
`),
	}

	// --- Act ---
	units, diags := loader.LoadSources(context.Background(), sources)

	// --- Assert ---
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, units, 2)
	orders := units[0]
	assert.Equal(t, "example/orders", orders.ID.Key())
	assert.Equal(t, []string{"a.hcl", "b.hcl"}, orders.Files)
	assert.Equal(t, "a.hcl", orders.Range.Filename)
	require.Len(t, orders.Functions, 2)
	assert.Equal(t, "first", orders.Functions[0].Name)
	assert.Equal(t, "second", orders.Functions[1].Name)
	assert.NotNil(t, orders.ImportByAlias("lambda"))

	second := orders.Functions[1]
	require.Len(t, second.Body.Stmts, 1)
	assert.Equal(t, "first()", ast.ExprString(second.Body.Stmts[0].(*ast.ExpressionStmt).Expr))

	assert.Equal(t, "example/billing", units[1].ID.Key())
}

func TestLoadSources_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		summary string
	}{
		{name: "missing unit block", src: `function "f" {}`, summary: "Missing unit block"},
		{name: "duplicate unit block", src: `unit "a/b" {} unit "a/c" {}`, summary: `Duplicate "unit" block`},
		{name: "invalid unit name", src: `unit "ab" {}`, summary: "Invalid unit name"},
		{name: "unknown package", src: `unit "a/b" {} import "acme/nope" {}`, summary: "Unknown package"},
		{
			name:    "version mismatch",
			src:     `unit "a/b" {} import "ballerinax/awslambda" { version = "9.9.9" }`,
			summary: "Package version mismatch",
		},
		{
			name:    "duplicate alias",
			src:     `unit "a/b" {} import "ballerinax/awslambda" {} import "ballerinax/awslambda" {}`,
			summary: "Duplicate import alias",
		},
		{name: "duplicate function", src: `unit "a/b" {} function "f" {} function "f" {}`, summary: "Duplicate declaration"},
		{
			name:    "unknown annotation",
			src:     `unit "a/b" {} import "ballerinax/awslambda" {} function "f" { annotations = [awslambda.Lambda] }`,
			summary: "Unknown annotation",
		},
		{
			name:    "annotation without import",
			src:     `unit "a/b" {} function "f" { annotations = [awslambda.Function] }`,
			summary: "Unknown annotation",
		},
		{
			name:    "unknown type",
			src:     `unit "a/b" {} function "f" { param "p" { type = Missing } }`,
			summary: "Unknown type",
		},
		{
			name:    "bad type constructor",
			src:     `unit "a/b" {} function "f" { returns = list(json) }`,
			summary: "Unknown type constructor",
		},
		{
			name:    "duplicate parameter",
			src:     `unit "a/b" {} function "f" { param "p" { type = json } param "p" { type = json } }`,
			summary: "Duplicate parameter",
		},
		{
			name:    "unknown callee",
			src:     `unit "a/b" {} function "f" { call "g" {} }`,
			summary: "Unknown function",
		},
		{
			name:    "type used as callee",
			src:     `unit "a/b" {} import "ballerinax/awslambda" {} function "f" { call "awslambda.Context" {} }`,
			summary: "Unknown function",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loader := newTestLoader(t)

			units, diags := loader.LoadSources(context.Background(), map[string][]byte{"bad.hcl": []byte(tc.src)})

			require.True(t, diags.HasErrors())
			assert.Contains(t, summaries(diags), tc.summary)
			assert.Empty(t, units)
		})
	}
}

func TestLoad_SkipsGeneratedFiles(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.hcl"), []byte(`unit "example/orders" {}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.gen.hcl"), []byte(`this is not hcl`), 0o644))

	// --- Act ---
	units, diags := newTestLoader(t).Load(context.Background(), dir)

	// --- Assert ---
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, units, 1)
	assert.Equal(t, []string{filepath.Join(dir, "orders.hcl")}, units[0].Files)
}
