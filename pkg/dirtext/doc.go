// Package dirtext turns a directory tree into a single text blob that can
// be embedded in a prompt.
//
// Entries are written depth-first, sorted by name, with paths relative to
// the serialized directory:
//
//	Directory: docs/
//	File: docs/intro.md
//	# Intro
//
//	File: logo.png (content ignored)
//
// Ignored directories are listed but not descended into. Ignored, binary,
// oversized and non-regular files are listed without content. Which entries
// are ignored is decided by a rules.Classifier.
package dirtext
