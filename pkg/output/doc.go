// Package output writes rendered prompts to disk.
//
// Writes go through a synthfs pipeline on the OS filesystem so the parent
// directory creation and the file write run as one batch. An existing file
// is only replaced when the caller asks for it.
package output
