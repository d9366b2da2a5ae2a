// Adapts Folder and Article to the tree.Node contract. Value receivers so
// the types satisfy the interface when used as slice elements.

package models

// NodeID implements tree.Node.
func (f Folder) NodeID() string { return f.ID }

// NodeParentID implements tree.Node.
func (f Folder) NodeParentID() string { return f.ParentID }

// NodeSortOrder implements tree.Node.
func (f Folder) NodeSortOrder() int { return f.SortOrder }

// SiblingKey implements tree.Node. Folder siblings share a parent.
func (f Folder) SiblingKey() string { return f.ParentID }

// NodeID implements tree.Node.
func (a Article) NodeID() string { return a.ID }

// NodeParentID implements tree.Node.
func (a Article) NodeParentID() string { return a.ParentID }

// NodeSortOrder implements tree.Node.
func (a Article) NodeSortOrder() int { return a.SortOrder }

// SiblingKey implements tree.Node. Article siblings share both a parent
// article and an owning folder.
func (a Article) SiblingKey() string { return a.ParentID + "\x00" + a.FolderID }
