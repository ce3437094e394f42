package lower

import (
	"strings"

	"github.com/reproto/reproto/internal/attr"
	"github.com/reproto/reproto/internal/diag"
	"github.com/reproto/reproto/internal/ir"
)

// lowerHTTP reads the `path`, `body`, `method`, and `accept` items of an
// `#[http(...)]` attribute selection, cross-checking every declared
// argument is used exactly once across `path` and `body`.
func (l *Lowerer) lowerHTTP(span diag.Span, sel *attr.Selection, arguments []ir.Argument, response *ir.Channel) *ir.EndpointHTTP {
	out := &ir.EndpointHTTP{Method: "GET"}

	unused := map[string]bool{}
	for _, a := range arguments {
		unused[a.Name] = true
	}

	if v, ok := sel.Take("path"); ok {
		spec, vars, err := parsePathSpec(v.Str)
		if err != nil {
			l.Diags.Errorf(v.Span, "bad path: %s: %s", v.Str, err.Error())
		} else {
			out.Path = spec
			for _, name := range vars {
				if !unused[name] {
					l.Diags.Errorf(v.Span, "no such argument: %s", name)
					continue
				}
				delete(unused, name)
			}
		}
	}

	if v, ok := sel.Take("body"); ok {
		name := v.Ident
		if name == "" {
			name = v.Str
		}
		if !unused[name] {
			l.Diags.Errorf(v.Span, "no such argument: %s", name)
		} else {
			delete(unused, name)
			out.Body = name
		}
	}

	if v, ok := sel.Take("method"); ok {
		switch v.Str {
		case "GET", "POST", "PUT", "UPDATE", "DELETE", "PATCH", "HEAD":
			out.Method = v.Str
		default:
			l.Diags.Errorf(v.Span, "no such method: %s", v.Str)
		}
	}

	if v, ok := sel.Take("accept"); ok {
		switch v.Str {
		case "application/json", "text/plain":
			out.Accept = v.Str
		default:
			l.Diags.Errorf(v.Span, "unsupported media type")
		}
		if v.Str != "application/json" && response != nil && response.Type.Kind != ir.TString {
			l.Diags.Errorf(v.Span, "only `string` responses are supported for the given accept")
		}
	}

	for name := range unused {
		l.Diags.Errorf(span, "argument not used in #[http(...)] attribute: %s", name)
	}

	return out
}

// parsePathSpec parses a `/foo/{bar}_baz` style template into a PathSpec,
// returning the set of `{variable}` names referenced. A backslash escapes
// the character that follows it, including `/`, `{`, and `}`.
func parsePathSpec(path string) (ir.PathSpec, []string, error) {
	var spec ir.PathSpec
	var vars []string

	for _, rawStep := range splitUnescaped(path, '/') {
		if rawStep == "" {
			continue
		}
		step, stepVars, err := parsePathStep(rawStep)
		if err != nil {
			return ir.PathSpec{}, nil, err
		}
		spec.Steps = append(spec.Steps, step)
		vars = append(vars, stepVars...)
	}

	return spec, vars, nil
}

func parsePathStep(raw string) (ir.PathStep, []string, error) {
	var step ir.PathStep
	var vars []string

	var lit strings.Builder
	runes := []rune(raw)
	i := 0
	flushLit := func() {
		if lit.Len() > 0 {
			step.Parts = append(step.Parts, ir.PathPart{Kind: ir.PathLiteral, Literal: lit.String()})
			lit.Reset()
		}
	}

	for i < len(runes) {
		switch runes[i] {
		case '\\':
			if i+1 < len(runes) {
				lit.WriteRune(runes[i+1])
				i += 2
				continue
			}
			i++
		case '{':
			flushLit()
			end := i + 1
			for end < len(runes) && runes[end] != '}' {
				end++
			}
			if end >= len(runes) {
				return ir.PathStep{}, nil, errUnterminatedVariable
			}
			name := string(runes[i+1 : end])
			step.Parts = append(step.Parts, ir.PathPart{Kind: ir.PathVariable, Variable: name})
			vars = append(vars, name)
			i = end + 1
		default:
			lit.WriteRune(runes[i])
			i++
		}
	}
	flushLit()

	return step, vars, nil
}

func splitUnescaped(s string, sep rune) []string {
	var out []string
	var cur strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			cur.WriteRune(runes[i])
			cur.WriteRune(runes[i+1])
			i++
			continue
		}
		if runes[i] == sep {
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(runes[i])
	}
	out = append(out, cur.String())
	return out
}

type pathError string

func (e pathError) Error() string { return string(e) }

const errUnterminatedVariable = pathError("unterminated variable reference")
