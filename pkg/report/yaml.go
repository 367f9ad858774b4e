package report

import "drac/pkg/compiler"

// yamlNode is the serialised form of a compiler.Node.
type yamlNode struct {
	Kind     string      `yaml:"kind"`
	Token    *yamlToken  `yaml:"token,omitempty"`
	Children []*yamlNode `yaml:"children,omitempty"`
}

type yamlToken struct {
	Category string `yaml:"category"`
	Lexeme   string `yaml:"lexeme"`
	Row      int    `yaml:"row"`
	Column   int    `yaml:"column"`
}

func exportNode(n *compiler.Node) *yamlNode {
	out := &yamlNode{Kind: n.Kind.String()}
	if n.Token != nil {
		out.Token = &yamlToken{
			Category: n.Token.Category.String(),
			Lexeme:   n.Token.Lexeme,
			Row:      n.Token.Row,
			Column:   n.Token.Column,
		}
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, exportNode(c))
	}
	return out
}
