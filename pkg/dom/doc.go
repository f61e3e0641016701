// Package dom provides the in-memory host tree that components render into.
//
// A Document owns a root element with a body. Nodes carry attributes, a class
// list, inline style, event listeners and a layout box. Insertion into and
// removal from the document notify lifecycle observers, which is how
// components learn that they have been attached.
//
// Render code does not mutate nodes directly; it records mutations in a
// Patch, which the caller commits once every render hook has succeeded.
package dom
