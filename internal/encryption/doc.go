// Package encryption processes files through a cascade chain: whole-file
// read, encrypt or decrypt, then atomic write. The crypto step completes
// before any byte reaches the destination, so failures leave the original
// untouched.
package encryption
