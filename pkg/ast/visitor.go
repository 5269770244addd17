package ast

// CollectVars walks node and returns the distinct variable names it
// references, in first-encountered order.
func CollectVars(node Node) []string {
	seen := make(map[string]bool)
	var names []string
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *NumberNode:
		case *VarNode:
			if !seen[v.Name] {
				seen[v.Name] = true
				names = append(names, v.Name)
			}
		case *UnaryOpNode:
			walk(v.Child)
		case *BinOpNode:
			walk(v.Left)
			walk(v.Right)
		case *CallNode:
			for _, a := range v.Args {
				walk(a)
			}
		case *LogBaseNode:
			walk(v.Arg)
		case *AbsNode:
			walk(v.Child)
		case *FactorialNode:
			walk(v.Child)
		}
	}
	walk(node)
	return names
}
