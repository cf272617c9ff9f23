// Package adaptive implements a responsive container that switches between
// alternative widget sub-trees ("variants") as the layout changes.
//
// A View owns a Registry of templates, a Store holding the active variant (and,
// when retention is on, previously active variants), and a Selector mapping the
// shared DisplayContext to a variant id. Every View created against the same Env
// reads and writes the same DisplayContext, so one geometry message reaching any
// View is visible to all of them.
//
// All methods run on the Bubble Tea update goroutine; none of the types here are
// safe for concurrent use.
package adaptive
