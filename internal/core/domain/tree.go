package domain

import (
	"sort"
	"strings"
)

// NodeKind distinguishes directory and file tree nodes.
type NodeKind int

const (
	// NodeDirectory is a folder grouping node.
	NodeDirectory NodeKind = iota

	// NodeFile is a leaf pointing at a document.
	NodeFile
)

// TreeNode is one node of the derived folder tree.
// The root is a synthetic directory with an empty path. Trees are pure
// projections of the document collection and are recomputed on read.
type TreeNode struct {
	// Kind is NodeDirectory or NodeFile.
	Kind NodeKind

	// Name is the display label, the last path segment.
	Name string

	// Path is the full slash-joined path from the root.
	Path string

	// DocumentID links a file node to its document. Empty for directories.
	DocumentID string

	// Children holds child nodes, directories first, each kind sorted by
	// case-insensitive name. Nil for file nodes.
	Children []*TreeNode
}

// IsDir reports whether the node is a directory.
func (n *TreeNode) IsDir() bool {
	return n.Kind == NodeDirectory
}

// BuildTree projects the document collection onto a folder tree.
// Directory nodes are shared across documents with a common path prefix,
// and the final sort makes the result independent of insertion order.
// Directory grouping is case-sensitive, matching filesystem semantics.
func BuildTree(docs map[string]Document, order []string) *TreeNode {
	root := &TreeNode{Kind: NodeDirectory}
	dirs := map[string]*TreeNode{"": root}

	for _, id := range order {
		doc, ok := docs[id]
		if !ok {
			continue
		}
		insertDocument(root, dirs, doc)
	}

	sortChildren(root)
	return root
}

// insertDocument walks the document's path, creating directory nodes on
// first encounter, and attaches a file node at the end.
func insertDocument(root *TreeNode, dirs map[string]*TreeNode, doc Document) {
	segments := splitPath(doc.EffectivePath())
	if len(segments) == 0 {
		root.Children = append(root.Children, &TreeNode{
			Kind:       NodeFile,
			Name:       doc.Name,
			Path:       doc.Name,
			DocumentID: doc.ID,
		})
		return
	}

	parent := root
	prefix := ""
	for _, seg := range segments[:len(segments)-1] {
		parent, prefix = childDirectory(dirs, parent, prefix, seg)
	}

	last := segments[len(segments)-1]
	if strings.HasSuffix(strings.ToLower(last), ".pdf") {
		parent.Children = append(parent.Children, &TreeNode{
			Kind:       NodeFile,
			Name:       last,
			Path:       joinPath(prefix, last),
			DocumentID: doc.ID,
		})
		return
	}

	// Malformed or extensionless trailing segment: treat it as one more
	// directory level and attach the file under it by its raw name.
	parent, prefix = childDirectory(dirs, parent, prefix, last)
	parent.Children = append(parent.Children, &TreeNode{
		Kind:       NodeFile,
		Name:       doc.Name,
		Path:       joinPath(prefix, doc.Name),
		DocumentID: doc.ID,
	})
}

// childDirectory returns the directory node for prefix/seg, creating and
// memoising it on first encounter so path prefixes share a single node.
func childDirectory(dirs map[string]*TreeNode, parent *TreeNode, prefix, seg string) (*TreeNode, string) {
	path := joinPath(prefix, seg)
	if dir, ok := dirs[path]; ok {
		return dir, path
	}

	dir := &TreeNode{Kind: NodeDirectory, Name: seg, Path: path}
	dirs[path] = dir
	parent.Children = append(parent.Children, dir)
	return dir, path
}

// splitPath splits a slash-delimited path, discarding empty segments so
// leading, trailing, and doubled separators collapse away.
func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

func joinPath(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + "/" + seg
}

// sortChildren recursively orders every directory's children:
// directories before files, then case-insensitive by name within kind.
func sortChildren(n *TreeNode) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.Kind != b.Kind {
			return a.Kind == NodeDirectory
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
	for _, child := range n.Children {
		if child.IsDir() {
			sortChildren(child)
		}
	}
}
