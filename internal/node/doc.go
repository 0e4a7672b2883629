// Package node implements the synthesis tree: synths (leaves that run one
// audio computation per block) and groups (containers that decide how their
// children are ordered).
//
// # Groups
//
// A SequentialGroup runs its children strictly in list order. A ParallelGroup
// declares its children independent of one another, so a dispatcher may run
// them concurrently. Both share the same bookkeeping: an ordered child list,
// cached direct synth/group counts, and the parent back-reference stored on
// every child. A group is the only place where a child's parent is set or
// cleared.
//
// # Ownership
//
// Nodes are reference counted. A node is created with one reference held by
// its creator, gains one when it is attached to a group and loses it when it
// is detached. When the count reaches zero the node is disposed: a group frees
// its children and the release hook installed by the owner (usually the node
// graph's arena) runs.
//
// # Compilation
//
// FillQueue walks a tree depth first and emits one queue.Item per synth. The
// recursion threads the successor set through return values: compiling a
// subtree returns the items that whatever precedes it must point at. Sequential
// groups chain their children back to front; parallel groups compile every
// child against the same successors and return the union of their heads.
// TailNodes tells the builder how many predecessors a following sibling has to
// wait for.
package node
