// tokens.go defines the parsed representation of [name(args)] tokens.
package filter

// ParamType distinguishes the lexical class of a token parameter value.
type ParamType int

const (
	ParamString     ParamType = iota // quoted value, quotes stripped and escapes resolved
	ParamInteger                     // digit run, literal text preserved
	ParamReal                        // digits with a decimal point, literal text preserved
	ParamIdentifier                  // bare identifier
)

// Param is a single token parameter. Unnamed parameters are positional;
// named parameters (name=value) can additionally be looked up by name.
type Param struct {
	Name  string // empty for positional parameters
	Type  ParamType
	Value string
}

// Token is one parsed [name(args)] occurrence. Tokens are built fresh for
// each occurrence found during a scan and discarded after substitution.
type Token struct {
	Name   string
	Params []Param
}

// Arg returns the parameter at position i.
func (t *Token) Arg(i int) (Param, bool) {
	if i < 0 || i >= len(t.Params) {
		return Param{}, false
	}
	return t.Params[i], true
}

// Param returns the first parameter with the given name. Named parameters
// are order-independent for lookup.
func (t *Token) Param(name string) (Param, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
