package lower

import (
	"github.com/reproto/reproto/internal/ast"
	"github.com/reproto/reproto/internal/attr"
	"github.com/reproto/reproto/internal/ir"
	"github.com/reproto/reproto/internal/scope"
)

// lowerService lowers a service declaration: its endpoints (each with an
// optional `#[http(...)]` binding) and any nested declarations, rejecting
// conflicting endpoint names and conflicting endpoint wire identifiers.
func (l *Lowerer) lowerService(body *ast.ServiceBody, s *scope.Scope, set *attr.Set) *ir.ServiceBody {
	if sel, ok := set.TakeSelection("http"); ok {
		sel.CheckUnused("http", l.Diags) // `url` carries no IR shape yet
	}

	out := &ir.ServiceBody{}

	seenNames := map[string]bool{}
	seenWireNames := map[string]bool{}

	for _, m := range body.Members {
		switch v := m.(type) {
		case *ast.Endpoint:
			ep, wireName := l.lowerEndpoint(v, s)

			if seenNames[ep.Name] {
				l.Diags.Errorf(v.EndpointSpan, "conflict in endpoint name `%s`", ep.Name)
				continue
			}
			seenNames[ep.Name] = true

			if seenWireNames[wireName] {
				l.Diags.Errorf(v.EndpointSpan, "conflicting id of endpoint `%s`", wireName)
				continue
			}
			seenWireNames[wireName] = true

			out.Endpoints = append(out.Endpoints, ep)
		case *ast.InnerDecl:
			out.Inner = append(out.Inner, l.lowerDecl(v.Decl, s))
		case *ast.OptionMember:
		}
	}

	return out
}

func (l *Lowerer) lowerEndpoint(e *ast.Endpoint, s *scope.Scope) (ir.Endpoint, string) {
	wireName := l.EndpointNaming.Convert(e.Name)

	out := ir.Endpoint{Name: e.Name, Comment: e.Comment}

	seenArgs := map[string]bool{}
	for _, a := range e.Arguments {
		if seenArgs[a.Name] {
			l.Diags.Errorf(a.ArgSpan, "argument `%s` already present", a.Name)
			continue
		}
		seenArgs[a.Name] = true
		out.Arguments = append(out.Arguments, ir.Argument{
			Name:    a.Name,
			Channel: l.lowerChannel(a.Channel, s),
		})
	}

	if e.Response != nil {
		ch := l.lowerChannel(*e.Response, s)
		out.Response = &ch
	}

	set := attr.NewSet(e.EndpointSpan, e.Attributes, l.Diags)
	if sel, ok := set.TakeSelection("http"); ok {
		out.HTTP = l.lowerHTTP(e.EndpointSpan, sel, out.Arguments, out.Response)
		sel.CheckUnused("http", l.Diags)
	}
	set.CheckUnused(l.Diags)

	return out, wireName
}

func (l *Lowerer) lowerChannel(c ast.Channel, s *scope.Scope) ir.Channel {
	return ir.Channel{Streaming: c.Streaming, Type: l.lowerType(c.Type, s)}
}
