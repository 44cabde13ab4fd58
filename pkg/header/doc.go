// Package header implements the JNRRD header: parsing the JSON-line header
// section, the ordered field store with per-namespace extension trees, and
// serialization back to header lines.
//
// A JNRRD header is a sequence of lines, each a JSON object with exactly one
// key, terminated by a blank line or by the first line that is not such an
// object. Keys containing a colon are extension fields (`ns:dotted.path[0]`)
// and are merged into a nested tree per namespace; all other keys are core
// fields stored flat with last-write-wins semantics.
package header
