package flacscan

import "github.com/sirupsen/logrus"

// Option configures behavior when scanning FLAC files.
//
// Options use the functional options pattern, letting callers override
// the four narrow collaborators (ContainerScanner, CueParser, Catalog,
// ID3Mapper) without changing GetTag's or Open's signature.
//
// Example:
//
//	tags, warnings, err := flacscan.GetTag("album.flac", "",
//	    flacscan.WithCatalog(myCatalog),
//	    flacscan.WithArtworkSuppressed(true),
//	)
type Option func(*openOptions)

// openOptions holds the resolved configuration for one scan.
type openOptions struct {
	containerScanner ContainerScanner
	cueParser        CueParser
	catalog          Catalog
	id3Mapper        ID3Mapper
	logger           *logrus.Logger
	suppressArtwork  bool
}

// WithContainerScanner overrides the default FLAC container scanner.
func WithContainerScanner(s ContainerScanner) Option {
	return func(o *openOptions) { o.containerScanner = s }
}

// WithCueParser overrides the default embedded cue-sheet text parser.
func WithCueParser(p CueParser) Option {
	return func(o *openOptions) { o.cueParser = p }
}

// WithCatalog overrides the default in-memory catalog sink.
func WithCatalog(c Catalog) Option {
	return func(o *openOptions) { o.catalog = c }
}

// WithID3Mapper overrides the default ID3v2 passthrough mapper.
func WithID3Mapper(m ID3Mapper) Option {
	return func(o *openOptions) { o.id3Mapper = m }
}

// WithLogger overrides the process-wide logger used to report §7
// degradation warnings. Defaults to logrus.StandardLogger().
func WithLogger(l *logrus.Logger) Option {
	return func(o *openOptions) { o.logger = l }
}

// WithArtworkSuppressed(true) turns artwork suppression on: ARTWORK
// carries the resolved image's byte length instead of its bytes.
// Suppression is also on whenever the AUDIO_SCAN_NO_ARTWORK environment
// variable is set, to any value; passing false does not turn it off.
func WithArtworkSuppressed(suppress bool) Option {
	return func(o *openOptions) { o.suppressArtwork = suppress }
}
