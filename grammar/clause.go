package grammar

// PathBinding is `Identifier "=" Traversal`, the named-path form of MATCH.
type PathBinding struct {
	NodeMeta
	Name      string     `@Ident Eq`
	Traversal *Traversal `@@`
}

// MatchClause is "OPTIONAL"? "MATCH" (PatternList | PathBinding).
type MatchClause struct {
	NodeMeta
	Optional bool         `@KwOptional?`
	Patterns *PatternList `KwMatch (  @@`
	Path     *PathBinding `                |  @@ )`
}

// WhereClause is "WHERE" BoolExpr.
type WhereClause struct {
	NodeMeta
	Expr *BoolExpr `KwWhere @@`
}

// WithProjectionExpr is the narrow expression grammar a WITH projection
// accepts: a FunctionCall, a PropertyAccess, or a bare identifier.
type WithProjectionExpr struct {
	NodeMeta
	FunctionCall   *FunctionCall   `(  @@`
	PropertyAccess *PropertyAccess `|  @@`
	Ident          *string         `|  @Ident )`
}

// WithProjection is a WithProjectionExpr with an optional "AS alias".
type WithProjection struct {
	NodeMeta
	Expr  *WithProjectionExpr `@@`
	Alias string              `( KwAs @Ident )?`
}

// WithClause is "WITH" WithProjection ("," WithProjection)*.
type WithClause struct {
	NodeMeta
	Items []*WithProjection `KwWith @@ (Comma @@)*`
}

// OrderKey is a PropertyAccess or identifier with an optional ASC/DESC.
type OrderKey struct {
	NodeMeta
	Property *PropertyAccess `(  @@`
	Ident    *string         `|  @Ident )`
	Asc      bool            `( @KwAsc`
	Desc     bool            `| @KwDesc )?`
}

// OrderByClause is "ORDER" "BY" OrderKey ("," OrderKey)*.
type OrderByClause struct {
	NodeMeta
	Keys []*OrderKey `KwOrder KwBy @@ (Comma @@)*`
}

// SkipClause is "SKIP" Integer.
type SkipClause struct {
	NodeMeta
	N int64 `KwSkip @Integer`
}

// LimitClause is "LIMIT" Integer.
type LimitClause struct {
	NodeMeta
	N int64 `KwLimit @Integer`
}

// AsBinding is a FunctionCall/PropertyAccess/identifier bound to an alias
// via "AS" — the broader return-clause counterpart of WithProjection.
type AsBinding struct {
	NodeMeta
	FunctionCall   *FunctionCall   `(  @@`
	PropertyAccess *PropertyAccess `|  @@`
	Ident          *string         `|  @Ident )`
	Alias          string          `KwAs @Ident`
}

// ReturnProjection is the broader RETURN-clause projection grammar:
// StringLiteral | AsBinding | FunctionCall | BoolExpr | Float | Identifier
// (spec.md §4.5). AsBinding must be tried before the bare FunctionCall/
// Identifier alternatives that share its prefix, or the trailing
// "AS alias" would never be consumed.
type ReturnProjection struct {
	NodeMeta
	String       *string       `(  @String`
	AsBind       *AsBinding    `|  @@`
	FunctionCall *FunctionCall `|  @@`
	Bool         *BoolExpr     `|  @@`
	Float        *float64      `|  @Float`
	Ident        *string       `|  @Ident )`
}

// ReturnClause is "RETURN" ReturnProjection ("," ReturnProjection)*.
type ReturnClause struct {
	NodeMeta
	Items []*ReturnProjection `KwReturn @@ (Comma @@)*`
}
