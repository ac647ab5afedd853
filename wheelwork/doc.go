// Package wheelwork provides a rotor-based byte substitution engine,
// modeled on the electromechanical cipher machines of the rotor era.
//
// Five keyed rotors (rotating 256-entry substitution tables) form a
// shared secret. An engine built from that secret obfuscates arbitrary
// byte sequences and inverts them again, optionally interleaving and
// prefixing random noise. Subpackages provide the keyed material (rotor),
// the transformation algorithms (cipher), a tagged wire frame (envelope),
// armored key persistence (keyfile), and a QUIC message transport
// (transport/quic).
//
// wheelwork is an obfuscation toy, not a vetted cryptographic primitive:
// there is no security proof, no integrity check, and no authenticity
// guarantee. Do not protect anything valuable with it.
package wheelwork
