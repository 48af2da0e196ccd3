// Package envfile parses and serializes dotenv-style files.
//
// A .env file is line-oriented: one KEY=VALUE pair per line, with
// #-prefixed comment lines and blank lines permitted. The parser builds
// an ordered Document that preserves standalone comments; blank lines
// are normalized away on serialization.
//
// # Parsing Rules
//
// The first '=' on a line separates key from value. Keys are trimmed of
// surrounding whitespace; lines with an empty key are silently ignored.
// Duplicate keys are permitted and the last occurrence wins. Values are
// trimmed, then stripped of surrounding quotes when the value starts and
// ends with the same quote character and is at least two characters long.
// Double-quoted values support the escapes \n \r \t \" and \\ so values
// containing newlines survive a round trip.
//
// Lines with no '=' produce a ParseError carrying the 1-based line
// number. Input that is not valid UTF-8 fails with an encoding error
// regardless of parse options. The parser never panics on arbitrary
// input.
//
// # Serialization Rules
//
// Serialize writes keys in lexicographic order so the same document
// always produces the same bytes and diffs stay stable across runs.
// Values containing '=', '#', quotes, control characters, or leading or
// trailing whitespace are wrapped in double quotes with the escapes
// above; all other values are written bare.
package envfile
