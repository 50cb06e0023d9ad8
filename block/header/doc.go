// Package header implements the three allocation-header codecs a memory
// block may carry: legacy (64 bytes), compact (16 bytes), and none
// (headerless). Each codec exposes the same capability set — get_size,
// get_extra, get_flags, write, invalidate, reinit — so the block package
// can dispatch on a HeaderType tag without a dynamic strategy object.
//
// Write is always a relaxed, non-temporal copy: it does not itself flush
// or drain. The commit boundary belongs to whoever calls write. Fields
// are read and written with plain encoding/binary little-endian calls,
// no unsafe pointer tricks, because the standard library already
// compiles these down about as far as they'll go.
package header
