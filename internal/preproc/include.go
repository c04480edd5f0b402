package preproc

import (
	"os"
	"path/filepath"

	"cmm/internal/diag"
	"cmm/internal/source"
	"cmm/internal/token"
	"cmm/internal/trace"
)

// include opens the named file in a child preprocessor that shares the
// macro table. produce drains the child before reading further input.
func (pp *Preprocessor) include(where source.Span) error {
	pp.push(HandlingInclude)
	defer pp.pop(HandlingInclude)

	tok, err := pp.Next()
	if err != nil {
		return err
	}
	var name string
	quoted := false
	switch {
	case tok.Kind == token.HeaderName:
		name = tok.Content
	case tok.Kind == token.StringLiteral && tok.Prefix == "" && len(tok.Text) >= 2:
		name = tok.Text[1 : len(tok.Text)-1]
		quoted = true
	default:
		return diag.Errorf(diag.PPMalformedDirective, tok.Span, "#include expects \"FILENAME\" or <FILENAME>")
	}
	if err := pp.readLineEnd(); err != nil {
		return err
	}

	path, ok := pp.findInclude(name, quoted)
	if !ok {
		return diag.Errorf(diag.PPIncludeNotFound, tok.Span, "'%s' file not found", name)
	}
	if pp.depth+1 > MaxIncludeDepth {
		return diag.Errorf(diag.PPIncludeTooDeep, where, "#include nested depth %d exceeds maximum of %d", pp.depth+1, MaxIncludeDepth)
	}

	id, ok := pp.fs.GetLatest(path)
	if !ok {
		if id, err = pp.fs.Load(path, source.FileIncluded); err != nil {
			return diag.Errorf(diag.IOLoadFileError, tok.Span, "cannot read '%s': %v", path, err)
		}
	}

	pp.childSpan = trace.Begin(pp.tracer, trace.ScopeFile, "include", pp.parentSpan).WithExtra("file", path)
	pp.child = newPreprocessor(pp.fs, pp.fs.Get(id), pp.cfg, pp.tracer, pp.depth+1)
	pp.child.parentSpan = pp.childSpan.ID()
	return nil
}

// findInclude searches the includer's directory (quoted form only) and then
// the include paths.
func (pp *Preprocessor) findInclude(name string, quoted bool) (string, bool) {
	if filepath.IsAbs(name) {
		return name, isFile(name)
	}
	dirs := make([]string, 0, len(pp.cfg.IncludePaths)+1)
	if quoted {
		dirs = append(dirs, pp.file.Dir())
	}
	dirs = append(dirs, pp.cfg.IncludePaths...)
	for _, dir := range dirs {
		p := filepath.Join(dir, name)
		if isFile(p) {
			return p, true
		}
	}
	return "", false
}

func isFile(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
