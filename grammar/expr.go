package grammar

// PropertyAccess is Identifier "." Identifier (spec.md §4.2).
type PropertyAccess struct {
	NodeMeta
	Base string `@Ident`
	Prop string `Dot @Ident`
}

// ValueExpr is the narrow value grammar allowed inside property maps,
// lists, and the right-hand side of IN/comparisons: a PropertyAccess, a
// string literal, or an integer — no bare identifier, no float (spec.md
// §4.2 keeps floats scoped to function arguments only).
type ValueExpr struct {
	NodeMeta
	Property *PropertyAccess `(  @@`
	String   *string         `|  @String`
	Int      *int64          `|  @Integer )`
}

// List is "[" ValueExpr ("," ValueExpr)* "]" — at least one element, so an
// empty "[]" never matches (spec.md §8: "empty list in IN — rejected").
type List struct {
	NodeMeta
	Items []*ValueExpr `LBracket @@ (Comma @@)* RBracket`
}

// TypeCall is the single-argument form `type(Identifier)`.
type TypeCall struct {
	NodeMeta
	Arg string `"type" LParen @Ident RParen`
}

// CountArg is the argument accepted by count(...): an optional DISTINCT,
// then a PropertyAccess, a bare identifier, or "*".
type CountArg struct {
	NodeMeta
	Distinct bool            `@KwDistinct?`
	Property *PropertyAccess `(  @@`
	Ident    *string         `|  @Ident`
	Star     bool            `|  @Star )`
}

// CountCall is `count(...)`.
type CountCall struct {
	NodeMeta
	Arg *CountArg `"count" LParen @@ RParen`
}

// SumCall is `sum(PropertyAccess)`.
type SumCall struct {
	NodeMeta
	Arg *PropertyAccess `"sum" LParen @@ RParen`
}

// PercentileDiscCall is `percentileDisc(PropertyAccess, Float)`.
type PercentileDiscCall struct {
	NodeMeta
	Prop       *PropertyAccess `"percentileDisc" LParen @@`
	Percentile float64         `Comma @Float RParen`
}

// StdevCall is `stdev(PropertyAccess)`.
type StdevCall struct {
	NodeMeta
	Arg *PropertyAccess `"stdev" LParen @@ RParen`
}

// FunctionCall is the closed set of aggregate/scalar functions the
// read-only subset recognizes (spec.md §4.2); any other call name is not
// part of this grammar at all, rather than being accepted and rejected
// later.
type FunctionCall struct {
	NodeMeta
	Type           *TypeCall           `(  @@`
	Count          *CountCall          `|  @@`
	Sum            *SumCall            `|  @@`
	PercentileDisc *PercentileDiscCall `|  @@`
	Stdev          *StdevCall          `|  @@ )`
}
