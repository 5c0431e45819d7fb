// Package phpserial reads and writes the length prefixed serialization format
// used by PHP (s:5:"hello";, i:3;, a:1:{...}).
//
// Decode and Unmarshal handle well formed input. Repair recovers what it can
// from truncated arrays or arrays whose string lengths no longer match their
// content, which is the usual result of a charset conversion or a search and
// replace over a database dump:
//
//	recovered := phpserial.Repair(`a:2:{s:4:"name";s:3:"Zoë";s:3:"age";i:4;`)
//	fixed := recovered.Serialize() // a:2:{s:4:"name";s:4:"Zoë";s:3:"age";i:4;}
package phpserial
