package frontend

// String names a Kind the way the token-listing menu and error messages
// print it. Hand-written rather than `stringer`-generated, since nothing in
// this build is allowed to run `go generate`.
func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindEOF:
		return "eof"
	case KindEpsilon:
		return "epsilon"
	case KindNum:
		return "num"
	case KindRNum:
		return "rnum"
	case KindID:
		return "id"
	case KindFieldID:
		return "fieldid"
	case KindFunID:
		return "funid"
	case KindRUID:
		return "ruid"
	case KindMain:
		return "main"
	case KindWith:
		return "with"
	case KindParameters:
		return "parameters"
	case KindEnd:
		return "end"
	case KindWhile:
		return "while"
	case KindUnion:
		return "union"
	case KindEndUnion:
		return "endunion"
	case KindDefineType:
		return "definetype"
	case KindAs:
		return "as"
	case KindType:
		return "type"
	case KindGlobal:
		return "global"
	case KindParameter:
		return "parameter"
	case KindList:
		return "list"
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindEndWhile:
		return "endwhile"
	case KindIf:
		return "if"
	case KindThen:
		return "then"
	case KindEndIf:
		return "endif"
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	case KindReturn:
		return "return"
	case KindCall:
		return "call"
	case KindRecord:
		return "record"
	case KindEndRecord:
		return "endrecord"
	case KindElse:
		return "else"
	case KindSquareOpen:
		return "sql"
	case KindSquareClose:
		return "sqr"
	case KindComma:
		return "comma"
	case KindSemicolon:
		return "sem"
	case KindColon:
		return "colon"
	case KindDot:
		return "dot"
	case KindParenOpen:
		return "op"
	case KindParenClose:
		return "cl"
	case KindPlus:
		return "plus"
	case KindMinus:
		return "minus"
	case KindMul:
		return "mul"
	case KindDiv:
		return "div"
	case KindAssignOp:
		return "assignop"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	case KindLT:
		return "lt"
	case KindLE:
		return "le"
	case KindEQ:
		return "eq"
	case KindGT:
		return "gt"
	case KindGE:
		return "ge"
	case KindNE:
		return "ne"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}
