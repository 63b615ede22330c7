// Package placeholders resolves {{...}} tokens in prompt templates.
//
// A token is `{{ [directive:] body }}` where the optional directive is one
// of file, option or content, and the body is a pipe-separated fallback
// chain of references evaluated left to right. The first reference that
// yields a usable (present, non-blank) value wins; a token with no usable
// reference is left in the output byte for byte.
//
// Formatting runs in two phases:
//
//  1. A bounded fixpoint loop (MaxRecursionIterations) resolves tokens that
//     start with a property path, since property values may themselves
//     contain further tokens.
//  2. A single final pass resolves standard placeholders, option:, file:
//     and content: directives and any remaining chains.
//
// File and directory content is escaped ({{ becomes \{\{) when it is
// spliced in, so it is never scanned as a token during the same call. The
// escapes are removed at the end unless Options.PreserveEscapes is set.
//
// Path failures never abort formatting: they are rendered inline at the
// token position as a bracketed marker such as
// "[Error: File not found: notes.txt]".
package placeholders
