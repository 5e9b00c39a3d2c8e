package output

import (
	"path"
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// kindColumn aligns the kind labels.
	kindColumn = 36
)

// TreeNode is a file or directory in an output tree.
type TreeNode struct {
	Name     string
	Kind     string
	IsDir    bool
	Children []*TreeNode
}

// child returns the named child, creating it when absent.
func (n *TreeNode) child(name string, isDir bool) *TreeNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	c := &TreeNode{Name: name, IsDir: isDir}
	n.Children = append(n.Children, c)
	return c
}

// RenderOutputTree renders the files of an output directory. files maps
// slash-separated paths relative to dir to their output kind.
func RenderOutputTree(dir string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	root := &TreeNode{Name: dir, IsDir: true}
	for p, kind := range files {
		parts := strings.Split(path.Clean(p), "/")
		current := root
		for i, part := range parts {
			current = current.child(part, i < len(parts)-1)
		}
		current.Kind = kind
	}
	sortTree(root)

	var sb strings.Builder
	sb.WriteString(StyleNoun.Render(root.Name + "/"))
	sb.WriteString("\n")
	for i, c := range root.Children {
		renderNode(&sb, c, "", i == len(root.Children)-1)
	}
	return sb.String()
}

// sortTree orders directories first, then by name.
func sortTree(node *TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	for _, c := range node.Children {
		sortTree(c)
	}
}

func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isLast bool) {
	connector, childPrefix := treeEdge, prefix+treeVert
	if isLast {
		connector, childPrefix = treeLast, prefix+treeSpace
	}

	name := node.Name
	if node.IsDir {
		name += "/"
	}
	line := prefix + connector + name
	sb.WriteString(line)
	if node.Kind != "" {
		// Box-drawing runes are multi-byte; pad on rune count.
		padding := kindColumn - len([]rune(line))
		if padding < 2 {
			padding = 2
		}
		sb.WriteString(strings.Repeat(" ", padding))
		sb.WriteString(kindStyle(node.Kind).Render(node.Kind))
	}
	sb.WriteString("\n")

	for i, c := range node.Children {
		renderNode(sb, c, childPrefix, i == len(node.Children)-1)
	}
}
