// Package cipher implements the wheelwork transformation algorithms: the
// encoder that turns raw bytes into a framed obfuscated stream and the
// decoder that inverts it.
//
// Stream layout, common to both modes:
//
//	noise × prefix_length ‖ selector ‖ (per input byte: [noise]? transformed)
//
// The selector is a raw random byte; selector mod 5 names the rotor the
// stream begins on. The raw stream carries no mode discriminator, so the
// decoding party must know out-of-band whether a stream was produced in
// shallow or cascade mode. The envelope package wraps streams in a tagged
// frame for callers who want the mode carried in-band.
//
// Encoder and Decoder each own a private deep copy of their secret, so two
// components built from the same logical secret never disturb each other's
// rotation state.
package cipher
