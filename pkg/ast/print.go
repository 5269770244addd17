package ast

import (
	"fmt"
	"strconv"
	"strings"
)

var unaryOpSymbols = map[UnaryKind]string{
	Neg: "-",
	Not: "!",
}

var binOpSymbols = map[BinKind]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Pow: "^",
	Mod: "mod",
	Eq:  "==",
	Ne:  "!=",
	Lt:  "<",
	Le:  "<=",
	Gt:  ">",
	Ge:  ">=",
	And: "&&",
	Or:  "||",
}

func (n *NumberNode) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *VarNode) String() string { return n.Name }

func (n *UnaryOpNode) String() string {
	return fmt.Sprintf("(%s%s)", unaryOpSymbols[n.Kind], n.Child.String())
}

func (n *BinOpNode) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), binOpSymbols[n.Kind], n.Right.String())
}

func (n *CallNode) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}

func (n *LogBaseNode) String() string {
	return fmt.Sprintf("log:%s(%s)", strconv.FormatFloat(n.Base, 'g', -1, 64), n.Arg.String())
}

func (n *AbsNode) String() string {
	return fmt.Sprintf("|%s|", n.Child.String())
}

func (n *FactorialNode) String() string {
	return fmt.Sprintf("(%s)!", n.Child.String())
}
