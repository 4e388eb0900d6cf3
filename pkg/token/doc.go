// Package token mints opaque, unpredictable identifiers. These are plain
// random strings — not JWTs, not signed, not parseable — so possession of a
// token proves nothing except that the server previously handed it out.
package token
