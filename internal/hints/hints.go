// Package hints reads per-field cache policy out of a GraphQL schema.
//
// Fields opt into caching with the @cache directive:
//
//	type Query {
//	    popularPosts: PostConnection @cache(ttl: 300)
//	    viewer: User
//	}
//
// ttl is the entry lifetime in seconds; swr optionally extends it with a
// stale-while-revalidate window that the middleware folds into the store TTL.
// Fields without the directive carry no hint and fall back to the caller's
// default policy.
package hints

import (
	"fmt"
	"strconv"
	"time"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

const directiveName = "cache"

// prelude declares the directive so schema authors don't have to.
const prelude = `
directive @cache(ttl: Int!, swr: Int) on FIELD_DEFINITION
`

// Hint is the cache policy declared on one field.
type Hint struct {
	TTL time.Duration
	SWR time.Duration
}

// Hints holds the parsed per-field policies of one schema.
type Hints struct {
	fields map[string]Hint
}

// Load parses sdl and collects @cache hints. name identifies the source in
// error messages.
func Load(name, sdl string) (*Hints, error) {
	schema, err := gqlparser.LoadSchema(
		&ast.Source{Name: "graphcache/prelude", Input: prelude, BuiltIn: true},
		&ast.Source{Name: name, Input: sdl},
	)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", name, err)
	}

	h := &Hints{fields: make(map[string]Hint)}
	for typeName, def := range schema.Types {
		if def.Kind != ast.Object {
			continue
		}
		for _, field := range def.Fields {
			d := field.Directives.ForName(directiveName)
			if d == nil {
				continue
			}
			hint, err := hintFromDirective(d)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", typeName, field.Name, err)
			}
			h.fields[typeName+"."+field.Name] = hint
		}
	}
	return h, nil
}

func hintFromDirective(d *ast.Directive) (Hint, error) {
	var hint Hint
	ttl, err := secondsArg(d, "ttl")
	if err != nil {
		return hint, err
	}
	hint.TTL = ttl
	if d.Arguments.ForName("swr") != nil {
		swr, err := secondsArg(d, "swr")
		if err != nil {
			return hint, err
		}
		hint.SWR = swr
	}
	return hint, nil
}

func secondsArg(d *ast.Directive, name string) (time.Duration, error) {
	arg := d.Arguments.ForName(name)
	if arg == nil {
		return 0, fmt.Errorf("@%s missing %s argument", directiveName, name)
	}
	n, err := strconv.Atoi(arg.Value.Raw)
	if err != nil {
		return 0, fmt.Errorf("@%s %s: %w", directiveName, name, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("@%s %s must not be negative", directiveName, name)
	}
	return time.Duration(n) * time.Second, nil
}

// Field returns the hint declared on typeName.fieldName, if any.
func (h *Hints) Field(typeName, fieldName string) (Hint, bool) {
	if h == nil {
		return Hint{}, false
	}
	hint, ok := h.fields[typeName+"."+fieldName]
	return hint, ok
}

// StoreTTL is the lifetime the store entry gets: the freshness window plus
// the stale-while-revalidate extension.
func (h Hint) StoreTTL() time.Duration {
	return h.TTL + h.SWR
}
