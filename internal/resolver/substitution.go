package resolver

import (
	"errors"

	xsderrors "github.com/ocxtools/xsdmodel/errors"
	"github.com/ocxtools/xsdmodel/internal/graphcycle"
	"github.com/ocxtools/xsdmodel/internal/model"
)

// substitutions computes the transitive substitution closure: for every
// head element, all elements substitutable for it, directly or through a
// chain of substitution group links. Members keep declaration order; a
// member reachable through a chain follows the members of its own head.
func (r *resolver) substitutions() (map[model.QName][]model.QName, error) {
	direct := make(map[model.QName][]model.QName)
	names := r.reg.Names(model.CategoryElement)

	for _, name := range names {
		decl, _ := r.reg.Element(name)
		if decl.SubstitutionGroup.IsZero() {
			continue
		}
		head := decl.SubstitutionGroup.Name()
		if _, ok := r.reg.Element(head); !ok {
			return nil, &xsderrors.UnresolvedReference{
				Ref:      head.String(),
				Category: string(model.CategoryElement),
				From:     name.String(),
			}
		}
		direct[head] = append(direct[head], name)
	}

	err := graphcycle.Detect(graphcycle.Config[model.QName]{
		Exists: func(name model.QName) bool {
			_, ok := r.reg.Element(name)
			return ok
		},
		Next: func(name model.QName) ([]model.QName, error) {
			decl, _ := r.reg.Element(name)
			if decl.SubstitutionGroup.IsZero() {
				return nil, nil
			}
			return []model.QName{decl.SubstitutionGroup.Name()}, nil
		},
		Starts:  names,
		Missing: graphcycle.MissingPolicyIgnore,
	})
	if err != nil {
		var cycle graphcycle.CycleError[model.QName]
		if errors.As(err, &cycle) {
			chain := make([]string, 0, len(cycle.Chain))
			for _, name := range cycle.Chain {
				chain = append(chain, name.String())
			}
			return nil, &xsderrors.CyclicType{Name: cycle.Key.String(), Chain: chain}
		}
		return nil, err
	}

	closure := make(map[model.QName][]model.QName, len(direct))
	for head := range direct {
		var members []model.QName
		var expand func(model.QName)
		expand = func(name model.QName) {
			for _, member := range direct[name] {
				members = append(members, member)
				expand(member)
			}
		}
		expand(head)
		closure[head] = members
	}

	return closure, nil
}
