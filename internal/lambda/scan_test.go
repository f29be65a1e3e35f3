package lambda

import (
	"testing"

	"github.com/specialistvlad/lambdagen/internal/ast"
	"github.com/specialistvlad/lambdagen/internal/pkgid"
	"github.com/stretchr/testify/assert"
)

func TestHasHandlerAnnotation(t *testing.T) {
	rt := newFullRuntime()
	id := DefaultIdentity()
	other := pkgid.MustParse("acme/awslambda")

	testCases := []struct {
		name        string
		annotations []*ast.AnnotationAttachment
		want        bool
	}{
		{name: "tagged", annotations: []*ast.AnnotationAttachment{rt.tag()}, want: true},
		{name: "untagged", want: false},
		{
			name: "tagged under another alias",
			annotations: []*ast.AnnotationAttachment{
				{PkgAlias: "lambda", Name: "Function", Symbol: rt.annotation},
			},
			want: true,
		},
		{
			name: "same name from another org",
			annotations: []*ast.AnnotationAttachment{
				{PkgAlias: "awslambda", Name: "Function", Symbol: ast.NewAnnotationSymbol("Function", other)},
			},
			want: false,
		},
		{
			name: "other annotation from the runtime",
			annotations: []*ast.AnnotationAttachment{
				{PkgAlias: "awslambda", Name: "Trigger", Symbol: ast.NewAnnotationSymbol("Trigger", runtimePkg)},
			},
			want: false,
		},
		{
			name:        "unresolved attachment",
			annotations: []*ast.AnnotationAttachment{{PkgAlias: "awslambda", Name: "Function"}},
			want:        false,
		},
		{
			name: "second of several attachments",
			annotations: []*ast.AnnotationAttachment{
				{PkgAlias: "log", Name: "Traced", Symbol: ast.NewAnnotationSymbol("Traced", pkgid.MustParse("acme/log"))},
				rt.tag(),
			},
			want: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fn := &ast.Function{Name: "f", Annotations: tc.annotations}
			assert.Equal(t, tc.want, HasHandlerAnnotation(fn, id))
		})
	}
}
