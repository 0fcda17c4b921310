package interp

// Program is a parsed script: an ordered statement list.
type Program struct {
	Stmts []Stmt
}

type Stmt interface{ stmtNode() }

// RequireStmt asserts that a context binding exists: @required name;
type RequireStmt struct {
	Name string
	Line int
}

// ImportStmt evaluates a file relative to the working directory and binds
// its result payload: @import name "path";
type ImportStmt struct {
	Name string
	Path string
	Line int
}

// AssignStmt binds a value: name := expr;
type AssignStmt struct {
	Name  string
	Value Expr
	Line  int
}

// ReturnStmt terminates the program with a result. Value may be nil.
type ReturnStmt struct {
	Value Expr
	Line  int
}

// RaiseStmt terminates the program with a thrown value.
type RaiseStmt struct {
	Value Expr
	Line  int
}

type ExprStmt struct {
	Value Expr
	Line  int
}

func (*RequireStmt) stmtNode() {}
func (*ImportStmt) stmtNode()  {}
func (*AssignStmt) stmtNode()  {}
func (*ReturnStmt) stmtNode()  {}
func (*RaiseStmt) stmtNode()   {}
func (*ExprStmt) stmtNode()    {}

type Expr interface{ exprNode() }

type IntLit struct{ Value int64 }
type FloatLit struct{ Value float64 }
type StringLit struct{ Value string }
type BoolLit struct{ Value bool }
type NullLit struct{}
type Ident struct{ Name string }

// RangeExpr is an inclusive integer range: lo..hi
type RangeExpr struct{ Lo, Hi Expr }

// PairExpr is a key/value association: key => value
type PairExpr struct{ Key, Val Expr }

// NamedExpr tags an expression with an identifier, valid inside tuple
// literals and call arguments: name: expr
type NamedExpr struct {
	Name string
	Val  Expr
}

type TupleLit struct{ Elems []Expr }

type CallExpr struct {
	Callee Expr
	Args   []Expr
	Line   int
}

type MemberExpr struct {
	Recv Expr
	Name string
	Line int
}

type BinaryExpr struct {
	Op          string
	Left, Right Expr
	Line        int
}

type UnaryExpr struct {
	Op      string
	Operand Expr
}

func (*IntLit) exprNode()     {}
func (*FloatLit) exprNode()   {}
func (*StringLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*NullLit) exprNode()    {}
func (*Ident) exprNode()      {}
func (*RangeExpr) exprNode()  {}
func (*PairExpr) exprNode()   {}
func (*NamedExpr) exprNode()  {}
func (*TupleLit) exprNode()   {}
func (*CallExpr) exprNode()   {}
func (*MemberExpr) exprNode() {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
