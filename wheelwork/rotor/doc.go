// Package rotor implements the keyed material of the wheelwork engine:
// the rotating substitution rotor and the five-rotor secret.
//
// A rotor is a keyed permutation of the 256 byte values with a rotating
// offset. A secret bundles exactly five rotors with a noise-prefix length
// and tracks which rotor is currently active. Secrets serialize to a
// textual record so both parties of an exchange can hold identical
// material; transient rotation state is never persisted.
//
// Nothing in this package is a vetted cryptographic primitive. The rotors
// obfuscate; they do not authenticate and they carry no security proof.
package rotor
