package lambda

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/specialistvlad/lambdagen/internal/pkgid"
)

var (
	runtimePkg = pkgid.MustParse("ballerinax/awslambda:0.0.0")
	unitPkg    = pkgid.MustParse("example/orders:1.0.0")
	unitRange  = hcl.Range{Filename: "orders.hcl", Start: hcl.InitialPos, End: hcl.InitialPos}
)

// runtimeFixture is a resolved awslambda import with the symbols a handler needs.
type runtimeFixture struct {
	imp        *ast.Import
	annotation *ast.Symbol
	context    *ast.Symbol
}

func newRuntimeFixture(ops ...string) *runtimeFixture {
	pkg := ast.NewPackageSymbol(runtimePkg)
	annotation := ast.NewAnnotationSymbol("Function", runtimePkg)
	context := ast.NewTypeSymbol("Context", runtimePkg, ast.TagObject)
	pkg.Scope.MustDefine(annotation)
	pkg.Scope.MustDefine(context)
	for _, op := range ops {
		pkg.Scope.MustDefine(ast.NewFunctionSymbol(op, runtimePkg, ast.FlagPublic, &ast.Signature{Return: ast.NilType}))
	}
	return &runtimeFixture{
		imp: &ast.Import{
			Org:       "ballerinax",
			NameComps: []string{"awslambda"},
			Alias:     "awslambda",
			Symbol:    pkg,
		},
		annotation: annotation,
		context:    context,
	}
}

func newFullRuntime() *runtimeFixture {
	return newRuntimeFixture("register", "process")
}

func (r *runtimeFixture) newUnit() *ast.Unit {
	unit := ast.NewUnit(unitPkg, unitRange)
	unit.Imports = append(unit.Imports, r.imp)
	return unit
}

func (r *runtimeFixture) tag() *ast.AnnotationAttachment {
	return &ast.AnnotationAttachment{PkgAlias: "awslambda", Name: "Function", Symbol: r.annotation}
}

func (r *runtimeFixture) contextParam() *ast.Param {
	return &ast.Param{Name: "ctx", TypeNode: ast.NewUserDefinedTypeNode("awslambda", r.context, hcl.Range{})}
}

func builtinParam(name string, t *ast.Type) *ast.Param {
	return &ast.Param{Name: name, TypeNode: ast.NewBuiltinTypeNode(t, hcl.Range{})}
}

func unionOf(types ...*ast.Type) *ast.TypeNode {
	members := make([]*ast.TypeNode, 0, len(types))
	for _, t := range types {
		members = append(members, ast.NewBuiltinTypeNode(t, hcl.Range{}))
	}
	return ast.NewUnionTypeNode(members, hcl.Range{})
}

// handler returns a public function with the valid handler signature.
func (r *runtimeFixture) handler(name string) *ast.Function {
	fn := &ast.Function{
		Name:           name,
		Flags:          ast.FlagPublic,
		RequiredParams: []*ast.Param{r.contextParam(), builtinParam("input", ast.JSONType)},
		ReturnTypeNode: unionOf(ast.JSONType, ast.ErrorType),
		Annotations:    []*ast.AnnotationAttachment{r.tag()},
		Range:          hcl.Range{Filename: "orders.hcl", Start: hcl.Pos{Line: 10, Column: 1}, End: hcl.Pos{Line: 10, Column: 20}},
	}
	fn.Symbol = ast.NewFunctionSymbol(name, unitPkg, ast.FlagPublic, fn.Signature())
	return fn
}

func mustAdd(unit *ast.Unit, fns ...*ast.Function) {
	for _, fn := range fns {
		if err := unit.AddFunction(fn); err != nil {
			panic(err)
		}
	}
}
