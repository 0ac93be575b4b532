// Package gif decodes the legacy color-indexed animated bitmap
// container format described by this module's specification into a
// stream of palette-index frames. It is a thin public contract over
// internal/gif, which owns the block demultiplexer and the LZW
// decompressor (spec §2).
package gif

import (
	internalgif "github.com/cam-per/gifdec/internal/gif"
)

// Kind classifies a decode error (spec §7).
type Kind = internalgif.Kind

const (
	KindIO                = internalgif.KindIO
	KindInvalidMagic      = internalgif.KindInvalidMagic
	KindUnsupportedFormat = internalgif.KindUnsupportedFormat
	KindMalformedStream   = internalgif.KindMalformedStream
	KindResourceExhausted = internalgif.KindResourceExhausted
)

// Error is the error type returned by Open and NextFrame.
type Error = internalgif.Error

// Disposal is the graphic-control disposal method (spec §3).
type Disposal = internalgif.Disposal

const (
	DisposalUnspecified       = internalgif.DisposalUnspecified
	DisposalKeep              = internalgif.DisposalKeep
	DisposalRestoreBackground = internalgif.DisposalRestoreBackground
	DisposalRestorePrevious   = internalgif.DisposalRestorePrevious
)

// FrameMeta is the last graphic-control block seen before a frame
// (spec §3).
type FrameMeta = internalgif.FrameMeta

// FrameRect locates a frame's image within the logical screen (spec §3).
type FrameRect = internalgif.FrameRect

// Palette is an ordered sequence of RGB triplets (spec §3).
type Palette = internalgif.Palette

// WarnFunc receives a diagnostic message for a recoverable condition
// (spec §7, §9). Pass one via WithWarnSink; the zero value discards
// warnings.
type WarnFunc = internalgif.WarnFunc
