// Package filesystem provides the read-only filesystem access used by promptfill.
//
// The placeholder engine, path resolver and directory serializer all read
// through the FS interface, so they can run against the real OS filesystem
// or an in-memory afero filesystem in tests.
package filesystem
