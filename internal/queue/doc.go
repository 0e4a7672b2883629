// Package queue holds the execution plan compiled from the synthesis tree for
// one audio block.
//
// A Queue is a flat list of Items. Each Item wraps one synth (a Job), lists the
// items that must run after it (its successors) and carries an activation
// limit: the number of predecessor items that must finish before it becomes
// eligible. Items with a limit of zero are runnable as soon as the block starts.
//
// The queue is written once by the builder in package node and then handed to
// a dispatcher, which arms every item, runs the initially runnable ones and
// signals successors as work completes. Arm resets the per-block state, so a
// cached plan is dispatched again every block until a structural edit of the
// tree makes the node graph compile a new one.
package queue
