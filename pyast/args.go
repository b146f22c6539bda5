// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Parameter list helpers.

package pyast

import "github.com/cockroachdb/errors"

// Positional returns positional-only parameters followed by regular ones.
func (a *Arguments) Positional() []Param {
	if a == nil {
		return nil
	}
	out := make([]Param, 0, len(a.PosOnly)+len(a.Args))
	out = append(out, a.PosOnly...)
	return append(out, a.Args...)
}

// Names returns every parameter name in declaration order.
func (a *Arguments) Names() []string {
	if a == nil {
		return nil
	}
	var names []string
	for _, p := range a.Positional() {
		names = append(names, p.Name)
	}
	if a.VarArg != nil {
		names = append(names, a.VarArg.Name)
	}
	for _, p := range a.KwOnly {
		names = append(names, p.Name)
	}
	if a.KwArg != nil {
		names = append(names, a.KwArg.Name)
	}
	return names
}

// HasStarred reports whether the signature has *args, keyword-only
// parameters or **kwargs.
func (a *Arguments) HasStarred() bool {
	return a != nil && (a.VarArg != nil || len(a.KwOnly) > 0 || a.KwArg != nil)
}

// Validate reports the signature errors the source compiler rejects.
func (a *Arguments) Validate() error {
	if a == nil {
		return nil
	}
	seen := make(map[string]bool)
	for _, name := range a.Names() {
		if seen[name] {
			return errors.Newf("duplicate argument '%s' in function definition", name)
		}
		seen[name] = true
	}
	defaulted := false
	for _, p := range a.Positional() {
		if p.HasDefault {
			defaulted = true
		} else if defaulted {
			return errors.New("parameter without a default follows parameter with a default")
		}
	}
	return nil
}
