package ast

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lambdagen/internal/pkgid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runtimeID = pkgid.MustParse("ballerinax/awslambda:0.0.0")

func TestFunction_String(t *testing.T) {
	ctxSym := NewTypeSymbol("Context", runtimeID, TagObject)
	fn := &Function{
		Name:  "echo",
		Flags: FlagPublic,
		RequiredParams: []*Param{
			{Name: "ctx", TypeNode: NewUserDefinedTypeNode("awslambda", ctxSym, hcl.Range{})},
			{Name: "input", TypeNode: NewBuiltinTypeNode(JSONType, hcl.Range{})},
		},
		ReturnTypeNode: NewUnionTypeNode([]*TypeNode{
			NewBuiltinTypeNode(JSONType, hcl.Range{}),
			NewBuiltinTypeNode(ErrorType, hcl.Range{}),
		}, hcl.Range{}),
	}

	assert.Equal(t, "public function echo(awslambda:Context ctx, json input) returns json|error", fn.String())
	assert.Equal(t, "(ballerinax/awslambda:Context, json) returns json|error", fn.Signature().String())
}

func TestFunction_ReturnTypeDefaultsToNil(t *testing.T) {
	fn := &Function{Name: "main"}
	assert.Same(t, NilType, fn.ReturnType())
	assert.Equal(t, "function main()", fn.String())
}

func TestBuiltinType(t *testing.T) {
	jsonType, ok := BuiltinType("json")
	require.True(t, ok)
	assert.Same(t, JSONType, jsonType)

	_, ok = BuiltinType("Context")
	assert.False(t, ok)
}

func TestNewTypeSymbol_RejectsBuiltinTag(t *testing.T) {
	assert.Panics(t, func() { NewTypeSymbol("Bad", runtimeID, TagJSON) })
}

func TestScope_DefineAndLookup(t *testing.T) {
	scope := NewScope(nil)
	reg := NewFunctionSymbol("register", runtimeID, FlagPublic, &Signature{Return: NilType})

	require.NoError(t, scope.Define(reg))
	require.Error(t, scope.Define(reg), "a second definition of the same name must fail")

	found, ok := scope.Lookup("register")
	require.True(t, ok)
	assert.Same(t, reg, found)
	assert.Equal(t, 1, scope.Len())

	var nilScope *Scope
	_, ok = nilScope.Lookup("register")
	assert.False(t, ok)
}

func TestUnit_AddFunction(t *testing.T) {
	// --- Arrange ---
	unitID := pkgid.MustParse("example/orders")
	unit := NewUnit(unitID, hcl.Range{Filename: "orders.hcl"})
	fn := &Function{Name: "main", Symbol: NewFunctionSymbol("main", unitID, FlagPublic, &Signature{Return: NilType})}
	clash := &Function{Name: "main", Symbol: NewFunctionSymbol("main", unitID, 0, &Signature{Return: NilType})}

	// --- Act ---
	err := unit.AddFunction(fn)
	clashErr := unit.AddFunction(clash)

	// --- Assert ---
	require.NoError(t, err)
	require.Error(t, clashErr)
	assert.Len(t, unit.Functions, 1, "a rejected declaration must not be appended")
	assert.Same(t, fn, unit.Function("main"))
	assert.True(t, unit.Scope().Has("main"))
}

func TestImport_Matches(t *testing.T) {
	imp := &Import{Org: "ballerinax", NameComps: []string{"awslambda"}, Alias: "awslambda"}
	nested := &Import{Org: "ballerinax", NameComps: []string{"awslambda", "internal"}}

	assert.True(t, imp.Matches("ballerinax", "awslambda"))
	assert.False(t, imp.Matches("ballerina", "awslambda"))
	assert.False(t, nested.Matches("ballerinax", "awslambda"))

	unit := &Unit{Imports: []*Import{nested, imp}}
	assert.Same(t, imp, unit.FindImport("ballerinax", "awslambda"))
	assert.Same(t, imp, unit.ImportByAlias("awslambda"))
	assert.Nil(t, unit.FindImport("ballerinax", "http"))
}

func TestInvocation_String(t *testing.T) {
	h1 := NewFunctionSymbol("h1", pkgid.MustParse("example/orders"), FlagPublic, &Signature{Return: NilType})
	call := &Invocation{
		PkgAlias: "awslambda",
		Name:     "register",
		Args:     []Expression{NewStringLiteral("h1", hcl.Range{}), NewVarRef(h1, hcl.Range{})},
	}
	assert.Equal(t, `awslambda:register("h1", h1)`, call.String())
}
