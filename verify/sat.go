package verify

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// builder accumulates Tseitin-encoded clauses over a gini.Gini
// instance. Variables are minted directly via z.Dimacs2Lit on an
// incrementing counter: gini reuses the solver's own variable/literal
// numbering as the CNF's, so there is no separate "allocate a fresh
// SAT variable" call to make.
type builder struct {
	g       *gini.Gini
	nextVar int
}

func newBuilder() *builder {
	return &builder{g: gini.New(), nextVar: 1}
}

// freshVar returns a brand-new literal representing an as-yet
// unconstrained boolean.
func (b *builder) freshVar() z.Lit {
	lit := z.Dimacs2Lit(b.nextVar)
	b.nextVar++
	return lit
}

func (b *builder) clause(lits ...z.Lit) {
	for _, l := range lits {
		b.g.Add(l)
	}
	b.g.Add(z.LitNull)
}

// trueLit is a literal permanently asserted true, used as the "always
// driven" source for nets tied to VCC.
func (b *builder) trueLit() z.Lit {
	v := b.freshVar()
	b.clause(v)
	return v
}

func (b *builder) falseLit() z.Lit { return b.trueLit().Not() }

// and2 returns a fresh literal o with o <-> (a && b) encoded as three
// clauses, the standard Tseitin AND gate.
func (b *builder) and2(a, c z.Lit) z.Lit {
	o := b.freshVar()
	b.clause(a.Not(), c.Not(), o)
	b.clause(a, o.Not())
	b.clause(c, o.Not())
	return o
}

// or2 returns a fresh literal o with o <-> (a || b).
func (b *builder) or2(a, c z.Lit) z.Lit {
	o := b.freshVar()
	b.clause(a, c, o.Not())
	b.clause(a.Not(), o)
	b.clause(c.Not(), o)
	return o
}

// orN folds or2 across a slice, returning falseLit for an empty slice,
// the identity element of OR.
func (b *builder) orN(lits []z.Lit) z.Lit {
	if len(lits) == 0 {
		return b.falseLit()
	}
	acc := lits[0]
	for _, l := range lits[1:] {
		acc = b.or2(acc, l)
	}
	return acc
}

// xor2 returns a fresh literal o with o <-> (a != b).
func (b *builder) xor2(a, c z.Lit) z.Lit {
	notBoth := b.and2(a, c).Not()
	eitherOne := b.or2(a, c)
	return b.and2(notBoth, eitherOne)
}

// assertTrue adds a unit clause forcing lit true.
func (b *builder) assertTrue(lit z.Lit) { b.clause(lit) }

// solve runs the SAT solver and reports whether the current clause set
// is satisfiable.
func (b *builder) solve() bool { return b.g.Solve() == 1 }
