// Package graph provides the node graph: the synthesis tree addressed by node
// id, as seen by the control layer.
//
// # Why Graph Package Exists
//
// Groups only know about their direct children and take node values, not
// ids. Control messages, on the other hand, say "add synth 1004 after node
// 1001" or "free group 7". NodeGraph bridges the two: it owns the root group
// and a nodestore.Arena that maps ids to live nodes, and it turns each
// id-addressed edit into group operations.
//
// # Responsibilities
//
//   - **Identity:** allocates ids for nodes created with nodeid.Auto and
//     rejects ids already in use.
//   - **Placement:** resolves a Placement (target id + position) to a parent
//     group and a constraint.
//   - **Bookkeeping:** every node carries a release hook that drops it from
//     the arena, so freeing a group forgets its whole subtree.
//   - **Planning:** Compile returns the execution queue for the current tree,
//     cached until the next structural edit.
//
// # Thread-Safety
//
// Edits and Compile are serialized by a single mutex. Pause, Resume and Set
// do not change the compiled plan; the dispatcher reads the paused flag when
// it reaches each item.
package graph
