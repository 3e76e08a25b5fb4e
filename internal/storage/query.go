package storage

// Query expressions shared by both backend adapters. The relational
// adapter compiles them to SQL, the document adapter evaluates them in
// memory; keeping one definition stops the two from drifting apart.
//
// Field names are the entity's JSON names ("title", "order", "projectId").

type Expr interface{ expr() }

// Eq matches records whose field equals the value.
type Eq struct {
	Field string
	Value any
}

// Ne matches records whose field differs from the value.
type Ne struct {
	Field string
	Value any
}

// Contains matches records whose string field contains the value,
// case-insensitively.
type Contains struct {
	Field string
	Value string
}

// Lt matches records whose field is strictly less than the value.
type Lt struct {
	Field string
	Value any
}

// Gt matches records whose field is strictly greater than the value.
type Gt struct {
	Field string
	Value any
}

// Or matches records satisfying any branch.
type Or []Expr

// And matches records satisfying every branch.
type And []Expr

func (Eq) expr()       {}
func (Ne) expr()       {}
func (Contains) expr() {}
func (Lt) expr()       {}
func (Gt) expr()       {}
func (Or) expr()       {}
func (And) expr()      {}

// Order is a single-field sort.
type Order struct {
	Field string
	Desc  bool
}

func Asc(field string) *Order  { return &Order{Field: field} }
func Desc(field string) *Order { return &Order{Field: field, Desc: true} }

// ListOptions parameterizes List calls. Zero value lists everything in
// backend-defined order.
type ListOptions struct {
	Where   Expr
	OrderBy *Order
}
