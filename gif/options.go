package gif

// Option configures a Decoder at Open time. Modeled as functional
// options rather than a config struct or file, matching the teacher's
// own constructor-parameter style (gsc/gp.NewDecoder(r, palette),
// gsc/lzstd.NewDecoder(r, voc, unpackLength)) generalized to the small
// number of knobs this format actually needs (spec §10.3).
type Option func(*settings)

type settings struct {
	warn   WarnFunc
	strict bool
}

// WithWarnSink routes decode-time warnings (unknown extension labels,
// comment text, skipped plain-text blocks) through fn instead of
// discarding them.
func WithWarnSink(fn WarnFunc) Option {
	return func(s *settings) { s.warn = fn }
}

// WithStrictPalette rejects any decoded palette index that falls
// outside the active palette's size (spec §4.6 "Bounds", optional
// strict mode). Off by default, matching the reference decoder's
// lenient behavior.
func WithStrictPalette(strict bool) Option {
	return func(s *settings) { s.strict = strict }
}
