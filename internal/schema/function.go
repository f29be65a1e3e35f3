package schema

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/specialistvlad/lambdagen/internal/hclx"
	"github.com/specialistvlad/lambdagen/internal/pkgid"
)

// Resolver resolves the names a function declaration refers to.
type Resolver interface {
	hclx.TypeResolver
	ResolveAnnotation(alias, name string) (*ast.Symbol, bool)
}

// FunctionDecl is a decoded function header. Calls are decoded separately by
// DecodeCalls once every function they may refer to is declared.
type FunctionDecl struct {
	Function *ast.Function
	Calls    []*CallBlock
}

// DecodeFunction decodes a `function "name"` block declared in pkg.
// defaultPublic applies when the block has no `public` attribute. The
// returned function has a symbol but is not defined in any scope.
func DecodeFunction(block *hcl.Block, pkg pkgid.ID, defaultPublic bool, res Resolver) (*FunctionDecl, hcl.Diagnostics) {
	var body FunctionBody
	diags := gohcl.DecodeBody(block.Body, nil, &body)
	if diags.HasErrors() {
		return nil, diags
	}
	if !hclsyntax.ValidIdentifier(block.Labels[0]) {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid function name",
			Detail:   fmt.Sprintf("%q is not a valid identifier.", block.Labels[0]),
			Subject:  block.LabelRanges[0].Ptr(),
		})
	}

	fn := &ast.Function{
		Name:  block.Labels[0],
		Range: block.DefRange,
		Body:  ast.NewBlock(block.DefRange),
	}
	public := defaultPublic
	if body.Public != nil {
		public = *body.Public
	}
	if public {
		fn.Flags |= ast.FlagPublic
	}

	seen := make(map[string]struct{})
	decode := func(p *ParamBlock) *ast.Param {
		param, pDiags := decodeParam(p, pkg, res)
		diags = append(diags, pDiags...)
		if param == nil {
			return nil
		}
		if _, dup := seen[param.Name]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate parameter",
				Detail:   fmt.Sprintf("The function %q declares the parameter %q more than once.", fn.Name, param.Name),
				Subject:  param.Range.Ptr(),
			})
			return nil
		}
		seen[param.Name] = struct{}{}
		return param
	}

	for _, p := range body.Params {
		if param := decode(p); param != nil {
			fn.RequiredParams = append(fn.RequiredParams, param)
		}
	}
	for _, p := range body.Defaultable {
		if hclx.IsNull(p.Default) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing default value",
				Detail:   fmt.Sprintf("The defaultable parameter %q requires a default value.", p.Name),
				Subject:  hclx.BodyRange(p.Remain).Ptr(),
			})
		}
		if param := decode(p); param != nil {
			fn.DefaultableParams = append(fn.DefaultableParams, param)
		}
	}
	if body.Rest != nil {
		fn.RestParam = decode(body.Rest)
	}

	if !hclx.IsNull(body.Returns) {
		node, rDiags := hclx.TypeExpr(body.Returns, res)
		diags = append(diags, rDiags...)
		fn.ReturnTypeNode = node
	}

	if !hclx.IsNull(body.Annotations) {
		atts, aDiags := decodeAnnotations(body.Annotations, res)
		diags = append(diags, aDiags...)
		fn.Annotations = atts
	}

	if diags.HasErrors() {
		return nil, diags
	}

	fn.Symbol = ast.NewFunctionSymbol(fn.Name, pkg, fn.Flags, fn.Signature())
	for _, p := range fn.Params() {
		fn.Symbol.Scope.MustDefine(p.Symbol)
	}
	return &FunctionDecl{Function: fn, Calls: body.Calls}, diags
}

func decodeParam(p *ParamBlock, pkg pkgid.ID, res Resolver) (*ast.Param, hcl.Diagnostics) {
	if !hclsyntax.ValidIdentifier(p.Name) {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid parameter name",
			Detail:   fmt.Sprintf("%q is not a valid identifier.", p.Name),
			Subject:  hclx.BodyRange(p.Remain).Ptr(),
		}}
	}
	node, diags := hclx.TypeExpr(p.Type, res)
	if diags.HasErrors() {
		return nil, diags
	}
	return &ast.Param{
		Name:     p.Name,
		TypeNode: node,
		Symbol:   &ast.Symbol{Kind: ast.SymbolParameter, Name: p.Name, Pkg: pkg, Type: node.Type},
		Range:    hclx.BodyRange(p.Remain),
	}, diags
}

func decodeAnnotations(expr hcl.Expression, res Resolver) ([]*ast.AnnotationAttachment, hcl.Diagnostics) {
	refs, diags := hclx.ReferenceList(expr)
	if diags.HasErrors() {
		return nil, diags
	}

	atts := make([]*ast.AnnotationAttachment, 0, len(refs))
	for _, ref := range refs {
		alias, name, refDiags := hclx.QualifiedName(ref)
		diags = append(diags, refDiags...)
		if refDiags.HasErrors() {
			continue
		}
		sym, ok := res.ResolveAnnotation(alias, name)
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown annotation",
				Detail:   fmt.Sprintf("The annotation %s is not declared or not exported by the imported package.", hclx.DisplayName(alias, name)),
				Subject:  ref.Range().Ptr(),
			})
			continue
		}
		atts = append(atts, &ast.AnnotationAttachment{PkgAlias: alias, Name: name, Symbol: sym, Range: ref.Range()})
	}
	return atts, diags
}
