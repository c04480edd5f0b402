package parser_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"cmm/internal/ast"
	"cmm/internal/diag"
	"cmm/internal/parser"
	"cmm/internal/preproc"
	"cmm/internal/source"
	"cmm/internal/token"

	"github.com/google/go-cmp/cmp"
)

type parsed struct {
	fs  *source.FileSet
	b   *ast.Builder
	res parser.Result
}

func parse(t *testing.T, src string) (parsed, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(src))
	pp, err := preproc.New(context.Background(), fs, id, preproc.Config{})
	if err != nil {
		t.Fatalf("preproc.New: %v", err)
	}
	b := ast.NewBuilder(ast.Hints{})
	res, err := parser.Parse(context.Background(), fs, pp, b, parser.Options{})
	return parsed{fs: fs, b: b, res: res}, err
}

func mustParse(t *testing.T, src string) parsed {
	t.Helper()
	p, err := parse(t, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.res.Diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", messages(p.res.Diags))
	}
	return p
}

func messages(diags []diag.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func declKinds(p parsed) []ast.DeclKind {
	var out []ast.DeclKind
	for _, id := range p.res.Unit.Decls {
		out = append(out, p.b.Decls.Get(id).Kind)
	}
	return out
}

// sexpr prints an expression as a fully parenthesized prefix form.
func sexpr(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(id)
		return d.Name
	case ast.ExprLiteral:
		d, _ := b.Exprs.Literal(id)
		return d.Text
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		return fmt.Sprintf("(%s %s)", d.Op.Spelling(), sexpr(b, d.Operand))
	case ast.ExprPostfix:
		d, _ := b.Exprs.Postfix(id)
		return fmt.Sprintf("(%s %s)", sexpr(b, d.Operand), d.Op.Spelling())
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", d.Op.Spelling(), sexpr(b, d.Left), sexpr(b, d.Right))
	case ast.ExprConditional:
		d, _ := b.Exprs.Conditional(id)
		return fmt.Sprintf("(? %s %s %s)", sexpr(b, d.Cond), sexpr(b, d.Then), sexpr(b, d.Else))
	case ast.ExprCast:
		d, _ := b.Exprs.Cast(id)
		return fmt.Sprintf("(cast %s)", sexpr(b, d.Operand))
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		parts := []string{"call", sexpr(b, d.Callee)}
		for _, a := range d.Args {
			parts = append(parts, sexpr(b, a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprIndex:
		d, _ := b.Exprs.Index(id)
		return fmt.Sprintf("(index %s %s)", sexpr(b, d.Base), sexpr(b, d.Index))
	case ast.ExprMember:
		d, _ := b.Exprs.Member(id)
		op := "."
		if d.Arrow {
			op = "->"
		}
		return fmt.Sprintf("(%s %s %s)", op, sexpr(b, d.Base), d.Name)
	case ast.ExprSizeof:
		d, _ := b.Exprs.Sizeof(id)
		if d.Type.IsValid() {
			return fmt.Sprintf("(%s type)", d.Op.Spelling())
		}
		return fmt.Sprintf("(%s %s)", d.Op.Spelling(), sexpr(b, d.Operand))
	case ast.ExprCompoundLit:
		d, _ := b.Exprs.CompoundLit(id)
		return fmt.Sprintf("(compound %s)", sexpr(b, d.Init))
	case ast.ExprInitList:
		d, _ := b.Exprs.InitList(id)
		return fmt.Sprintf("{%d}", len(d.Items))
	}
	return "?"
}

// body returns the statements of the function defined by the last declaration.
func body(t *testing.T, p parsed) []ast.StmtID {
	t.Helper()
	decls := p.res.Unit.Decls
	fn, ok := p.b.Decls.Func(decls[len(decls)-1])
	if !ok {
		t.Fatalf("last declaration is %v, want a function definition", p.b.Decls.Get(decls[len(decls)-1]).Kind)
	}
	block, ok := p.b.Stmts.Compound(fn.Body)
	if !ok {
		t.Fatal("function body is not a compound statement")
	}
	return block.Items
}

func TestParse_Expressions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a + b * c - d", "(- (+ a (* b c)) d)"},
		{"x = y = 3", "(= x (= y 3))"},
		{"x += !y", "(+= x (! y))"},
		{"a ? b : c ? d : e", "(? a b (? c d e))"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a < b == c", "(== (< a b) c)"},
		{"a << 1 | b & 3 ^ c", "(| (<< a 1) (^ (& b 3) c))"},
		{"a, b", "(, a b)"},
		{"(T)x + 1", "(+ (cast x) 1)"},
		{"(a) * b", "(* a b)"},
		{"-*p", "(- (* p))"},
		{"++i + i--", "(+ (++ i) (i --))"},
		{"sizeof(T) + sizeof x", "(+ (sizeof type) (sizeof x))"},
		{"_Alignof(T)", "(alignof type)"},
		{"p->next[i].val++", "((. (index (-> p next) i) val) ++)"},
		{"f(1, g(2), 3)", "(call f 1 (call g 2) 3)"},
		{"f()", "(call f)"},
		{"(T){1, 2}.x", "(. (compound {2}) x)"},
		{"x = nullptr", "(= x nullptr)"},
		{"s = \"ab\" \"cd\"", "(= s \"ab\" \"cd\")"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := mustParse(t, "typedef int T;\nvoid f(void) { "+tt.src+"; }")
			items := body(t, p)
			if len(items) != 1 {
				t.Fatalf("got %d statements, want 1", len(items))
			}
			st, ok := p.b.Stmts.Expr(items[0])
			if !ok {
				t.Fatalf("statement is %v, want an expression statement", p.b.Stmts.Get(items[0]).Kind)
			}
			if got := sexpr(p.b, st.Expr); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParse_Declarations(t *testing.T) {
	p := mustParse(t, `typedef unsigned long size_t;
struct point { int x, y; unsigned flags : 3; };
enum color { RED, GREEN = 2, BLUE, };
static const char *names[3] = { "a", [2] = "c" };
int (*handler)(int, char *);
_Static_assert(sizeof(int) == 4, "int");
size_t len(const char *s, ...);
`)
	want := []ast.DeclKind{
		ast.DeclVar, ast.DeclVar, ast.DeclVar, ast.DeclVar,
		ast.DeclVar, ast.DeclStaticAssert, ast.DeclVar,
	}
	if diff := cmp.Diff(want, declKinds(p)); diff != "" {
		t.Fatalf("declaration kinds mismatch (-want +got):\n%s", diff)
	}
	decls := p.res.Unit.Decls

	point, _ := p.b.Decls.Var(decls[1])
	rec, ok := p.b.Decls.Record(point.Specs.Items[0].Tag)
	if !ok || rec.Name != "point" || !rec.HasBody || len(rec.Fields) != 2 {
		t.Fatalf("struct point = %+v", rec)
	}
	flags, _ := p.b.Decls.Field(rec.Fields[1])
	if !flags.Declarators[0].Width.IsValid() {
		t.Error("flags: missing bit-field width")
	}

	color, _ := p.b.Decls.Var(decls[2])
	enum, ok := p.b.Decls.Enum(color.Specs.Items[0].Tag)
	if !ok || len(enum.Enumerators) != 3 {
		t.Fatalf("enum color = %+v", enum)
	}
	green, _ := p.b.Decls.Enumerator(enum.Enumerators[1])
	if green.Name != "GREEN" || !green.Value.IsValid() {
		t.Errorf("GREEN = %+v", green)
	}

	names, _ := p.b.Decls.Var(decls[3])
	if got := p.b.Declarators.Name(names.Inits[0].Declarator); got != "names" {
		t.Errorf("declarator name = %q", got)
	}
	list, ok := p.b.Exprs.InitList(names.Inits[0].Init)
	if !ok || len(list.Items) != 2 {
		t.Fatalf("names initializer = %+v", list)
	}
	if d := list.Items[1].Designators; len(d) != 1 || !d[0].Index.IsValid() {
		t.Errorf("designators = %+v", d)
	}

	handler, _ := p.b.Decls.Var(decls[4])
	if p.b.Declarators.IsFunction(handler.Inits[0].Declarator) {
		t.Error("handler is a pointer to function, not a function")
	}

	assert, _ := p.b.Decls.StaticAssert(decls[5])
	if assert.Message != "int" {
		t.Errorf("static assert message = %q", assert.Message)
	}

	fn, _ := p.b.Decls.Var(decls[6])
	if fn.Specs.Items[0].Kind != ast.SpecTypedefName {
		t.Errorf("size_t parsed as %v", fn.Specs.Items[0].Kind)
	}
	d := fn.Inits[0].Declarator
	if !p.b.Declarators.IsFunction(d) {
		t.Fatal("len is not a function declarator")
	}
	if layer := p.b.Declarators.Get(d); len(layer.Params) != 1 || !layer.Variadic {
		t.Errorf("len params = %d variadic = %v", len(layer.Params), layer.Variadic)
	}
}

func TestParse_Declarators(t *testing.T) {
	tests := []struct {
		src  string
		want []ast.DeclaratorKind
	}{
		{"int x;", []ast.DeclaratorKind{ast.DeclaratorName}},
		{"int *a[3];", []ast.DeclaratorKind{ast.DeclaratorPointer, ast.DeclaratorArray, ast.DeclaratorName}},
		{"int (*a)[3];", []ast.DeclaratorKind{ast.DeclaratorArray, ast.DeclaratorPointer, ast.DeclaratorName}},
		{"int (*f)(void);", []ast.DeclaratorKind{ast.DeclaratorFunction, ast.DeclaratorPointer, ast.DeclaratorName}},
		{"char *const *p;", []ast.DeclaratorKind{ast.DeclaratorPointer, ast.DeclaratorPointer, ast.DeclaratorName}},
		{"int m[2][3];", []ast.DeclaratorKind{ast.DeclaratorArray, ast.DeclaratorArray, ast.DeclaratorName}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := mustParse(t, tt.src)
			v, _ := p.b.Decls.Var(p.res.Unit.Decls[0])
			var got []ast.DeclaratorKind
			for id := v.Inits[0].Declarator; id.IsValid(); id = p.b.Declarators.Get(id).Inner {
				got = append(got, p.b.Declarators.Get(id).Kind)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("chain mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Statements(t *testing.T) {
	p := mustParse(t, `int sum(int *xs, int n) {
	int total = 0;
	for (int i = 0; i < n; i++)
		total += xs[i];
	while (n--) { if (n == 3) break; else continue; }
	do n++; while (n < 10);
	switch (n) { case 1: return 1; default: ; }
	goto out;
out:
	;
	return total > 0 ? total : -total;
}`)
	var got []ast.StmtKind
	for _, id := range body(t, p) {
		got = append(got, p.b.Stmts.Get(id).Kind)
	}
	want := []ast.StmtKind{
		ast.StmtDecl, ast.StmtFor, ast.StmtWhile, ast.StmtDo,
		ast.StmtSwitch, ast.StmtGoto, ast.StmtLabel, ast.StmtReturn,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("statement kinds mismatch (-want +got):\n%s", diff)
	}

	items := body(t, p)
	loop, _ := p.b.Stmts.For(items[1])
	if !loop.InitDecl.IsValid() || loop.InitExpr.IsValid() {
		t.Errorf("for init = %+v", loop)
	}
	label, _ := p.b.Stmts.Label(items[6])
	if label.Label != "out" {
		t.Errorf("label = %q", label.Label)
	}
}

func TestParse_TypedefScopes(t *testing.T) {
	mustParse(t, "typedef int T;\nvoid f(void) { typedef char U; U u; T t; }\nT x;")

	p, err := parse(t, "void g(void) {\n\t{ typedef int V; }\n\tV v;\n}")
	if err != nil {
		t.Fatal(err)
	}
	msgs := messages(p.res.Diags)
	if !slices.Contains(msgs, "expected ';' before 'v'") {
		t.Errorf("diagnostics = %q, want one for the out-of-scope typedef", msgs)
	}
}

func TestParse_ParameterListComma(t *testing.T) {
	tests := []struct {
		src string
		ok  bool
	}{
		{"int f(int a, ...) { return a; }", true},
		{"int f(int a, char *b);", true},
		{"int f() { return 0; }", true},
		{"int f(int a, ) {}", false},
		{"int f(int a, char b, );", false},
		{"int f(,) {}", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, err := parse(t, tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if got := len(p.res.Diags) == 0; got != tt.ok {
				t.Fatalf("accepted = %v, want %v (diags %v)", got, tt.ok, p.res.Diags)
			}
			for _, d := range p.res.Diags {
				if d.Code != diag.SynExpected && d.Code != diag.SynUnexpectedToken {
					t.Errorf("unexpected code %s: %q", d.Code.ID(), d.Message)
				}
			}
		})
	}
}

func TestParse_Diagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
		at   string
	}{
		{"missing initializer", "int x = ;", diag.SynExpected, "unexpected ';' in initializer", ";"},
		{"missing semicolon", "int f(void) { return 1 }", diag.SynExpected, "expected ';' before '}'", "}"},
		{"nothing matches", ") int x;", diag.SynUnexpectedToken, "unexpected ')'", ")"},
		{"unterminated body", "int f(void) { return 1;", diag.SynExpected, "expected '}' before end of input", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parse(t, tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if len(p.res.Diags) == 0 {
				t.Fatal("no diagnostics")
			}
			d := p.res.Diags[0]
			if d.Code != tt.code || d.Message != tt.msg {
				t.Errorf("got %v %q, want %v %q", d.Code, d.Message, tt.code, tt.msg)
			}
			if got := p.fs.Text(d.Primary.First()); got != tt.at {
				t.Errorf("points at %q, want %q", got, tt.at)
			}
		})
	}
}

func TestParse_SourceErrorIsFatal(t *testing.T) {
	_, err := parse(t, "#include \"missing.h\"\nint x;")
	if err == nil {
		t.Fatal("want an error")
	}
	d, ok := diag.AsDiagnostic(err)
	if !ok || d.Code != diag.PPIncludeNotFound {
		t.Errorf("error = %v", err)
	}
}

func TestParse_Canceled(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte("int x;"))
	pp, err := preproc.New(context.Background(), fs, id, preproc.Config{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = parser.Parse(ctx, fs, pp, ast.NewBuilder(ast.Hints{}), parser.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestParse_PredeclaredTypedefs(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte("FILE *f;"))
	pp, err := preproc.New(context.Background(), fs, id, preproc.Config{})
	if err != nil {
		t.Fatal(err)
	}
	b := ast.NewBuilder(ast.Hints{})
	res, err := parser.Parse(context.Background(), fs, pp, b, parser.Options{Typedefs: []string{"FILE"}})
	if err != nil || len(res.Diags) != 0 {
		t.Fatalf("err = %v diags = %v", err, messages(res.Diags))
	}
	v, _ := b.Decls.Var(res.Unit.Decls[0])
	if v.Specs.Items[0].Kind != ast.SpecTypedefName || v.Specs.Items[0].Tok != token.Ident {
		t.Errorf("specs = %+v", v.Specs.Items)
	}
}
