package registry

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/specialistvlad/lambdagen/internal/ctxlog"
	"github.com/specialistvlad/lambdagen/internal/fsutil"
	"github.com/specialistvlad/lambdagen/internal/pkgid"
	"github.com/specialistvlad/lambdagen/internal/schema"
	"go.uber.org/zap"
)

//go:embed builtin/*.hcl
var builtinFS embed.FS

// ManifestExtension is the file extension of package manifests.
const ManifestExtension = ".hcl"

// LoadBuiltins registers the packages embedded in the binary.
func (r *Registry) LoadBuiltins(ctx context.Context) hcl.Diagnostics {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return hcl.Diagnostics{readFailure("builtin", err)}
	}

	var diags hcl.Diagnostics
	for _, e := range entries {
		name := path.Join("builtin", e.Name())
		src, err := builtinFS.ReadFile(name)
		if err != nil {
			diags = append(diags, readFailure(name, err))
			continue
		}
		diags = append(diags, r.LoadManifest(ctx, name, src)...)
	}
	return diags
}

// LoadManifests registers every package declared in the manifest files found
// under paths. Each path may be a manifest file or a directory.
func (r *Registry) LoadManifests(ctx context.Context, paths ...string) hcl.Diagnostics {
	logger := ctxlog.FromContext(ctx)

	var diags hcl.Diagnostics
	for _, root := range paths {
		files, err := fsutil.FindFilesByExtension(root, ManifestExtension)
		if err != nil {
			diags = append(diags, readFailure(root, err))
			continue
		}
		if len(files) == 0 {
			logger.Warn("No package manifests found in path.", zap.String("path", root))
			continue
		}

		parser := hclparse.NewParser()
		for _, file := range files {
			hclFile, pDiags := parser.ParseHCLFile(file)
			diags = append(diags, pDiags...)
			if pDiags.HasErrors() {
				continue
			}
			diags = append(diags, r.loadBody(ctx, hclFile.Body)...)
		}
	}
	return diags
}

// LoadManifest parses src as a manifest and registers its packages.
func (r *Registry) LoadManifest(ctx context.Context, filename string, src []byte) hcl.Diagnostics {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return diags
	}
	return append(diags, r.loadBody(ctx, hclFile.Body)...)
}

func (r *Registry) loadBody(ctx context.Context, body hcl.Body) hcl.Diagnostics {
	content, diags := body.Content(schema.ManifestFileSchema)
	if diags.HasErrors() {
		return diags
	}

	for _, block := range content.Blocks {
		pkg, pDiags := decodePackage(block)
		diags = append(diags, pDiags...)
		if pkg == nil {
			continue
		}
		if existing, ok := r.Lookup(pkg.Pkg.Org, pkg.Pkg.Name); ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate package",
				Detail:   fmt.Sprintf("The package %s is already declared (version %q).", pkg.Pkg.Key(), existing.Pkg.Version),
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		r.Register(pkg)
		ctxlog.FromContext(ctx).Debug("Package manifest loaded.", zap.Stringer("package", pkg.Pkg), zap.Int("exports", pkg.Scope.Len()))
	}
	return diags
}

// decodePackage builds a package symbol from a `package "org/name"` block.
// Types and annotations are declared before functions so that function
// signatures may refer to them in any order.
func decodePackage(block *hcl.Block) (*ast.Symbol, hcl.Diagnostics) {
	id, err := pkgid.Parse(block.Labels[0])
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid package name",
			Detail:   err.Error(),
			Subject:  block.LabelRanges[0].Ptr(),
		}}
	}

	content, diags := block.Body.Content(schema.PackageSchema)
	if diags.HasErrors() {
		return nil, diags
	}
	if attr, ok := content.Attributes["version"]; ok {
		var version string
		vDiags := gohcl.DecodeExpression(attr.Expr, nil, &version)
		diags = append(diags, vDiags...)
		if !vDiags.HasErrors() && !pkgid.ValidVersion(version) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid package version",
				Detail:   fmt.Sprintf("%q is not a valid version.", version),
				Subject:  attr.Expr.Range().Ptr(),
			})
		}
		id.Version = version
	}

	pkg := ast.NewPackageSymbol(id)
	define := func(sym *ast.Symbol, rng hcl.Range) {
		if err := pkg.Scope.Define(sym); err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate declaration",
				Detail:   fmt.Sprintf("The package %s declares %q more than once.", id.Key(), sym.Name),
				Subject:  rng.Ptr(),
			})
		}
	}

	var functions []*hcl.Block
	for _, b := range content.Blocks {
		switch b.Type {
		case "type":
			sym, tDiags := decodeTypeDecl(b, id)
			diags = append(diags, tDiags...)
			if sym != nil {
				define(sym, b.DefRange)
			}
		case "annotation":
			var body schema.AnnotationBody
			diags = append(diags, gohcl.DecodeBody(b.Body, nil, &body)...)
			define(ast.NewAnnotationSymbol(b.Labels[0], id), b.DefRange)
		case "function":
			functions = append(functions, b)
		}
	}

	res := packageResolver{pkg: pkg}
	for _, b := range functions {
		decl, fDiags := schema.DecodeFunction(b, id, true, res)
		diags = append(diags, fDiags...)
		if decl == nil {
			continue
		}
		if len(decl.Calls) > 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unexpected call block",
				Detail:   fmt.Sprintf("The package function %q is a declaration and cannot have a body.", decl.Function.Name),
				Subject:  b.DefRange.Ptr(),
			})
			continue
		}
		define(decl.Function.Symbol, b.DefRange)
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return pkg, diags
}

// decodeTypeDecl decodes a `type "Name"` block into a type symbol owned by pkg.
func decodeTypeDecl(block *hcl.Block, pkg pkgid.ID) (*ast.Symbol, hcl.Diagnostics) {
	var body schema.TypeBody
	diags := gohcl.DecodeBody(block.Body, nil, &body)
	if diags.HasErrors() {
		return nil, diags
	}
	tag, ok := TypeKind(body.Kind)
	if !ok {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type kind",
			Detail:   fmt.Sprintf("The type %q has kind %q; use \"record\" or \"object\".", block.Labels[0], body.Kind),
			Subject:  block.DefRange.Ptr(),
		})
	}
	return ast.NewTypeSymbol(block.Labels[0], pkg, tag), diags
}

// TypeKind maps a `kind` attribute to a type tag. The empty kind is a record.
func TypeKind(kind string) (ast.TypeTag, bool) {
	switch kind {
	case "", "record":
		return ast.TagRecord, true
	case "object":
		return ast.TagObject, true
	}
	return ast.TagInvalid, false
}

// packageResolver resolves unqualified names against a package's own exports.
type packageResolver struct {
	pkg *ast.Symbol
}

func (p packageResolver) ResolveType(alias, name string) (*ast.Symbol, bool) {
	return p.resolve(alias, name, ast.SymbolType)
}

func (p packageResolver) ResolveAnnotation(alias, name string) (*ast.Symbol, bool) {
	return p.resolve(alias, name, ast.SymbolAnnotation)
}

func (p packageResolver) resolve(alias, name string, kind ast.SymbolKind) (*ast.Symbol, bool) {
	if alias != "" {
		return nil, false
	}
	sym, ok := p.pkg.Scope.Lookup(name)
	if !ok || sym.Kind != kind {
		return nil, false
	}
	return sym, true
}

func readFailure(path string, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Failed to read package manifests",
		Detail:   fmt.Sprintf("Could not read %s: %v.", path, err),
	}
}

var _ schema.Resolver = packageResolver{}
