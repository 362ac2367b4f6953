// Package textutil provides small text helpers shared by the profile editor,
// the archive assembler, and the CLI.
//
// The primary use cases are:
//   - Normalizing user-entered link keys into lowercase tokens
//   - Sanitizing identifiers before they become archive file names
//   - Title-casing keys into display labels and counting user-visible characters
package textutil
