package ast

type (
	ExprID       uint32
	StmtID       uint32
	DeclID       uint32
	DeclaratorID uint32
	// PayloadID указывает в арену данных конкретного варианта.
	PayloadID uint32
)

const (
	NoExprID       ExprID       = 0
	NoStmtID       StmtID       = 0
	NoDeclID       DeclID       = 0
	NoDeclaratorID DeclaratorID = 0
	NoPayloadID    PayloadID    = 0
)

func (id ExprID) IsValid() bool       { return id != NoExprID }
func (id StmtID) IsValid() bool       { return id != NoStmtID }
func (id DeclID) IsValid() bool       { return id != NoDeclID }
func (id DeclaratorID) IsValid() bool { return id != NoDeclaratorID }
func (id PayloadID) IsValid() bool    { return id != NoPayloadID }
