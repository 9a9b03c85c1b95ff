package gate

import (
	"errors"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

var (
	// errUnparseable is returned when a command cannot be parsed as shell.
	errUnparseable = errors.New("unparseable command")
	// errShellControl is returned when a command uses shell control syntax:
	// chaining, pipes, substitution, redirection, assignments, or anything
	// else that only has meaning when interpreted by a shell.
	errShellControl = errors.New("shell control syntax")
)

// normalize parses a command and verifies it is a single plain call with no
// shell control syntax. The only redirection permitted is the literal 2>&1
// stderr merge used by version-check commands; it is dropped from the
// normalized form since the executor captures stderr separately. Returns the
// printed call for pattern matching.
func normalize(cmd string) (string, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(cmd), "")
	if err != nil {
		return "", errUnparseable
	}
	call, err := singleCall(prog)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := syntax.NewPrinter().Print(&buf, call); err != nil {
		return "", errUnparseable
	}
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return "", errShellControl
	}
	return out, nil
}

// singleCall extracts the one plain CallExpr a safe command consists of.
func singleCall(prog *syntax.File) (*syntax.CallExpr, error) {
	if len(prog.Stmts) != 1 {
		return nil, errShellControl
	}
	stmt := prog.Stmts[0]
	if stmt.Background || stmt.Coprocess || stmt.Negated {
		return nil, errShellControl
	}
	for _, redir := range stmt.Redirs {
		if !isStderrMerge(redir) {
			return nil, errShellControl
		}
	}

	call, ok := stmt.Cmd.(*syntax.CallExpr)
	if !ok {
		return nil, errShellControl
	}
	// Environment assignments require a shell to take effect.
	if len(call.Assigns) > 0 || len(call.Args) == 0 {
		return nil, errShellControl
	}

	if containsExpansion(call) {
		return nil, errShellControl
	}
	return call, nil
}

// isStderrMerge reports whether a redirect is exactly the 2>&1 idiom.
func isStderrMerge(redir *syntax.Redirect) bool {
	if redir.Op != syntax.DplOut {
		return false
	}
	if redir.N == nil || redir.N.Value != "2" {
		return false
	}
	if redir.Word == nil || len(redir.Word.Parts) != 1 {
		return false
	}
	lit, ok := redir.Word.Parts[0].(*syntax.Lit)
	return ok && lit.Value == "1"
}

// containsExpansion reports whether any word of the call uses command,
// parameter, arithmetic, or process substitution. All of these can smuggle
// execution or environment-dependent values past the pattern tables.
func containsExpansion(call *syntax.CallExpr) bool {
	found := false
	syntax.Walk(call, func(node syntax.Node) bool {
		switch node.(type) {
		case *syntax.CmdSubst, *syntax.ProcSubst, *syntax.ParamExp, *syntax.ArithmExp, *syntax.ExtGlob:
			found = true
			return false
		}
		return !found
	})
	return found
}

// Argv splits an already-classified command into an argv slice using shell
// word rules (quoting respected) but without any shell interpretation or
// expansion. The permitted 2>&1 redirect is not part of the call and so
// never appears in the result.
func Argv(cmd string) ([]string, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(cmd), "")
	if err != nil {
		return nil, errUnparseable
	}
	call, err := singleCall(prog)
	if err != nil {
		return nil, err
	}

	cfg := &expand.Config{Env: expand.ListEnviron()}
	fields, err := expand.Fields(cfg, call.Args...)
	if err != nil {
		return nil, errUnparseable
	}
	return fields, nil
}
