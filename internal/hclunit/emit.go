package hclunit

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/zclconf/go-cty/cty"
)

// EmitEntryPoint renders fn as a source file of unit, suitable for loading
// together with the unit's own files.
func EmitEntryPoint(unit *ast.Unit, fn *ast.Function) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	header := root.AppendNewBlock("unit", []string{unit.ID.Key()}).Body()
	if unit.ID.Version != "" {
		header.SetAttributeValue("version", cty.StringVal(unit.ID.Version))
	}
	root.AppendNewline()

	if err := appendFunction(root, fn); err != nil {
		return nil, err
	}
	return hclwrite.Format(f.Bytes()), nil
}

// EmitFunction renders a single function block.
func EmitFunction(fn *ast.Function) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	if err := appendFunction(f.Body(), fn); err != nil {
		return nil, err
	}
	return hclwrite.Format(f.Bytes()), nil
}

func appendFunction(parent *hclwrite.Body, fn *ast.Function) error {
	body := parent.AppendNewBlock("function", []string{fn.Name}).Body()
	if fn.IsPublic() {
		body.SetAttributeValue("public", cty.True)
	}

	if len(fn.Annotations) > 0 {
		refs := make([]hclwrite.Tokens, 0, len(fn.Annotations))
		for _, a := range fn.Annotations {
			refs = append(refs, referenceTokens(a.PkgAlias, a.Name))
		}
		body.SetAttributeRaw("annotations", hclwrite.TokensForTuple(refs))
	}
	if fn.ReturnTypeNode != nil {
		body.SetAttributeRaw("returns", typeTokens(fn.ReturnTypeNode))
	}

	appendParams := func(blockType string, params ...*ast.Param) {
		for _, p := range params {
			pb := body.AppendNewBlock(blockType, []string{p.Name}).Body()
			pb.SetAttributeRaw("type", typeTokens(p.TypeNode))
		}
	}
	appendParams("param", fn.RequiredParams...)
	if len(fn.DefaultableParams) > 0 {
		return fmt.Errorf("function %q: defaultable parameters cannot be rendered without their default values", fn.Name)
	}
	if fn.RestParam != nil {
		appendParams("rest", fn.RestParam)
	}

	if fn.Body == nil {
		return nil
	}
	for _, stmt := range fn.Body.Stmts {
		es, ok := stmt.(*ast.ExpressionStmt)
		if !ok {
			return fmt.Errorf("function %q: unsupported statement %T", fn.Name, stmt)
		}
		call, ok := es.Expr.(*ast.Invocation)
		if !ok {
			return fmt.Errorf("function %q: unsupported expression statement %T", fn.Name, es.Expr)
		}
		if err := appendCall(body, call); err != nil {
			return fmt.Errorf("function %q: %w", fn.Name, err)
		}
	}
	return nil
}

func appendCall(body *hclwrite.Body, call *ast.Invocation) error {
	target := call.Name
	if call.PkgAlias != "" {
		target = call.PkgAlias + "." + call.Name
	}
	cb := body.AppendNewBlock("call", []string{target}).Body()

	args := make([]hclwrite.Tokens, 0, len(call.Args))
	for _, arg := range call.Args {
		switch a := arg.(type) {
		case *ast.Literal:
			args = append(args, hclwrite.TokensForValue(a.Value))
		case *ast.VarRef:
			args = append(args, hclwrite.TokensForIdentifier(a.Name))
		default:
			return fmt.Errorf("unsupported argument %T in call to %s", arg, target)
		}
	}
	cb.SetAttributeRaw("args", hclwrite.TokensForTuple(args))
	return nil
}

func typeTokens(node *ast.TypeNode) hclwrite.Tokens {
	switch node.Kind {
	case ast.TypeNodeUserDefined:
		return referenceTokens(node.PkgAlias, node.Name)
	case ast.TypeNodeUnion:
		members := make([]hclwrite.Tokens, 0, len(node.Members))
		for _, m := range node.Members {
			members = append(members, typeTokens(m))
		}
		return hclwrite.TokensForFunctionCall("union", members...)
	default:
		if node.Type.Tag == ast.TagNil {
			return hclwrite.TokensForValue(cty.NullVal(cty.DynamicPseudoType))
		}
		return hclwrite.TokensForIdentifier(node.Type.Tag.String())
	}
}

func referenceTokens(alias, name string) hclwrite.Tokens {
	if alias == "" {
		return hclwrite.TokensForIdentifier(name)
	}
	return hclwrite.TokensForTraversal(hcl.Traversal{
		hcl.TraverseRoot{Name: alias},
		hcl.TraverseAttr{Name: name},
	})
}
