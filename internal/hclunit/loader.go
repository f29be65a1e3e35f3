package hclunit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/specialistvlad/lambdagen/internal/ctxlog"
	"github.com/specialistvlad/lambdagen/internal/fsutil"
	"github.com/specialistvlad/lambdagen/internal/hclx"
	"github.com/specialistvlad/lambdagen/internal/pkgid"
	"github.com/specialistvlad/lambdagen/internal/registry"
	"github.com/specialistvlad/lambdagen/internal/schema"
	"go.uber.org/zap"
)

const (
	// SourceExtension is the extension of unit source files.
	SourceExtension = ".hcl"
	// GeneratedSuffix marks files written by EmitEntryPoint. Load skips them.
	GeneratedSuffix = ".gen.hcl"
)

// Loader builds units from HCL files.
type Loader struct {
	reg *registry.Registry
}

// NewLoader creates a loader that resolves imports against reg.
func NewLoader(reg *registry.Registry) *Loader {
	return &Loader{reg: reg}
}

// Load parses every unit file found under paths. Units whose files have
// errors are left out of the result; their problems are in the diagnostics.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*ast.Unit, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindAll(paths, SourceExtension)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Failed to read unit sources",
			Detail:   err.Error(),
		}}
	}

	parser := hclparse.NewParser()
	var parsed []*hcl.File
	var names []string
	var diags hcl.Diagnostics
	for _, file := range files {
		if strings.HasSuffix(file, GeneratedSuffix) {
			logger.Debug("Skipping generated file.", zap.String("file", file))
			continue
		}
		f, pDiags := parser.ParseHCLFile(file)
		diags = append(diags, pDiags...)
		if pDiags.HasErrors() {
			continue
		}
		parsed = append(parsed, f)
		names = append(names, file)
	}
	logger.Debug("Parsed unit sources.", zap.Int("files", len(parsed)))

	units, bDiags := l.build(ctx, names, parsed)
	return units, append(diags, bDiags...)
}

// LoadSources is like Load for in-memory sources keyed by file name.
func (l *Loader) LoadSources(ctx context.Context, sources map[string][]byte) ([]*ast.Unit, hcl.Diagnostics) {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	parser := hclparse.NewParser()
	var parsed []*hcl.File
	var kept []string
	var diags hcl.Diagnostics
	for _, name := range names {
		f, pDiags := parser.ParseHCL(sources[name], name)
		diags = append(diags, pDiags...)
		if pDiags.HasErrors() {
			continue
		}
		parsed = append(parsed, f)
		kept = append(kept, name)
	}

	units, bDiags := l.build(ctx, kept, parsed)
	return units, append(diags, bDiags...)
}

// unitFile is the top-level content of one source file.
type unitFile struct {
	name    string
	content *hcl.BodyContent
}

// unitGroup collects the files of one unit.
type unitGroup struct {
	id     pkgid.ID
	header *hcl.Block
	files  []*unitFile
}

func (l *Loader) build(ctx context.Context, names []string, files []*hcl.File) ([]*ast.Unit, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var groups []*unitGroup
	byKey := make(map[string]*unitGroup)

	for i, f := range files {
		content, cDiags := f.Body.Content(schema.UnitFileSchema)
		diags = append(diags, cDiags...)
		if cDiags.HasErrors() {
			continue
		}

		header, hDiags := hclx.FindUniqueBlock(content.Blocks, "unit")
		diags = append(diags, hDiags...)
		if hDiags.HasErrors() {
			continue
		}
		if header == nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing unit block",
				Detail:   "Every source file must declare the unit it belongs to with a unit \"org/name\" block.",
				Subject:  f.Body.MissingItemRange().Ptr(),
			})
			continue
		}

		id, idDiags := decodeUnitHeader(header)
		diags = append(diags, idDiags...)
		if idDiags.HasErrors() {
			continue
		}

		g, ok := byKey[id.Key()]
		if !ok {
			g = &unitGroup{id: id, header: header}
			byKey[id.Key()] = g
			groups = append(groups, g)
		} else if g.id.Version != id.Version {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Conflicting unit version",
				Detail:   fmt.Sprintf("The unit %s is declared with version %q here and %q in %s.", id.Key(), id.Version, g.id.Version, g.header.DefRange.Filename),
				Subject:  header.DefRange.Ptr(),
			})
			continue
		}
		g.files = append(g.files, &unitFile{name: names[i], content: content})
	}

	var units []*ast.Unit
	for _, g := range groups {
		unit, uDiags := l.buildUnit(g)
		diags = append(diags, uDiags...)
		if uDiags.HasErrors() {
			continue
		}
		ctxlog.FromContext(ctx).Debug("Unit loaded.",
			zap.Stringer("unit", unit.ID),
			zap.Int("files", len(unit.Files)),
			zap.Int("functions", len(unit.Functions)),
		)
		units = append(units, unit)
	}
	return units, diags
}

func decodeUnitHeader(block *hcl.Block) (pkgid.ID, hcl.Diagnostics) {
	id, err := pkgid.Parse(block.Labels[0])
	if err != nil {
		return pkgid.ID{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid unit name",
			Detail:   err.Error(),
			Subject:  block.LabelRanges[0].Ptr(),
		}}
	}

	var body schema.UnitBody
	diags := gohcl.DecodeBody(block.Body, nil, &body)
	if diags.HasErrors() {
		return pkgid.ID{}, diags
	}
	if body.Version != "" {
		if !pkgid.ValidVersion(body.Version) {
			return pkgid.ID{}, append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid unit version",
				Detail:   fmt.Sprintf("%q is not a valid version.", body.Version),
				Subject:  block.DefRange.Ptr(),
			})
		}
		id.Version = body.Version
	}
	return id, diags
}

// buildUnit declares imports and types first, then function headers, then
// function bodies, so that declaration order within and across files does
// not matter.
func (l *Loader) buildUnit(g *unitGroup) (*ast.Unit, hcl.Diagnostics) {
	unit := ast.NewUnit(g.id, g.header.DefRange)
	res := &unitResolver{unit: unit}
	var diags hcl.Diagnostics

	for _, f := range g.files {
		unit.Files = append(unit.Files, f.name)
		for _, b := range f.content.Blocks {
			switch b.Type {
			case "import":
				diags = append(diags, l.declareImport(unit, b)...)
			case "type":
				diags = append(diags, declareType(unit, b)...)
			}
		}
	}

	var decls []*schema.FunctionDecl
	for _, f := range g.files {
		for _, b := range f.content.Blocks {
			if b.Type != "function" {
				continue
			}
			decl, fDiags := schema.DecodeFunction(b, unit.ID, false, res)
			diags = append(diags, fDiags...)
			if decl == nil {
				continue
			}
			if err := unit.AddFunction(decl.Function); err != nil {
				diags = append(diags, duplicate(unit, decl.Function.Name, b.DefRange))
				continue
			}
			decls = append(decls, decl)
		}
	}

	for _, decl := range decls {
		diags = append(diags, schema.DecodeCalls(decl.Function, decl.Calls, res)...)
	}

	return unit, diags
}

func (l *Loader) declareImport(unit *ast.Unit, block *hcl.Block) hcl.Diagnostics {
	path := block.Labels[0]
	id, err := pkgid.Parse(path)
	if err != nil || id.Version != "" {
		detail := fmt.Sprintf("%q must have the form org/name; set the version with the version attribute.", path)
		if err != nil {
			detail = err.Error()
		}
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid import path",
			Detail:   detail,
			Subject:  block.LabelRanges[0].Ptr(),
		}}
	}

	var body schema.ImportBody
	diags := gohcl.DecodeBody(block.Body, nil, &body)
	if diags.HasErrors() {
		return diags
	}

	pkg, ok := l.reg.Lookup(id.Org, id.Name)
	if !ok {
		return append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown package",
			Detail:   fmt.Sprintf("The package %s is not available; add its manifest with --packages.", id.Key()),
			Subject:  block.LabelRanges[0].Ptr(),
		})
	}
	if body.Version != "" && body.Version != pkg.Pkg.Version {
		return append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Package version mismatch",
			Detail:   fmt.Sprintf("The import requires %s version %q but version %q is available.", id.Key(), body.Version, pkg.Pkg.Version),
			Subject:  block.DefRange.Ptr(),
		})
	}

	comps := id.NameComps()
	alias := body.As
	if alias == "" {
		alias = comps[len(comps)-1]
	}
	if existing := unit.ImportByAlias(alias); existing != nil {
		return append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Duplicate import alias",
			Detail:   fmt.Sprintf("The alias %q is already bound to %s/%s.", alias, existing.Org, existing.PackageName()),
			Subject:  block.DefRange.Ptr(),
		})
	}

	unit.Imports = append(unit.Imports, &ast.Import{
		Org:       id.Org,
		NameComps: comps,
		Version:   pkg.Pkg.Version,
		Alias:     alias,
		Symbol:    pkg,
		Range:     block.DefRange,
	})
	return diags
}

func declareType(unit *ast.Unit, block *hcl.Block) hcl.Diagnostics {
	var body schema.TypeBody
	diags := gohcl.DecodeBody(block.Body, nil, &body)
	if diags.HasErrors() {
		return diags
	}
	tag, ok := registry.TypeKind(body.Kind)
	if !ok {
		return append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type kind",
			Detail:   fmt.Sprintf("The type %q has kind %q; use \"record\" or \"object\".", block.Labels[0], body.Kind),
			Subject:  block.DefRange.Ptr(),
		})
	}
	name := block.Labels[0]
	if err := unit.Scope().Define(ast.NewTypeSymbol(name, unit.ID, tag)); err != nil {
		return append(diags, duplicate(unit, name, block.DefRange))
	}
	return diags
}

func duplicate(unit *ast.Unit, name string, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Duplicate declaration",
		Detail:   fmt.Sprintf("The unit %s declares %q more than once.", unit.ID.Key(), name),
		Subject:  rng.Ptr(),
	}
}
