package sandbox

import (
	"go.uber.org/zap"
)

// DefaultMaxFileSize caps how much content a single read returns.
const DefaultMaxFileSize = 10 * 1024 * 1024

// Config carries the tunable limits for a sandbox.
type Config struct {
	// MaxFileSize is the largest file Read will return, in bytes.
	MaxFileSize int64

	// BinarySampleSize is the number of leading bytes inspected for
	// binary detection.
	BinarySampleSize int
}

// Sandbox provides the file primitives confined to a base directory.
// Every path the primitives touch must resolve inside that directory.
type Sandbox struct {
	resolver    *Resolver
	detector    *BinaryDetector
	maxFileSize int64
	log         *zap.Logger
}

// New canonicalizes the base directory and builds a sandbox over it.
func New(baseDir string, cfg Config, log *zap.Logger) (*Sandbox, error) {
	canonical, err := CanonicalizeBase(baseDir)
	if err != nil {
		return nil, err
	}

	maxFileSize := cfg.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Sandbox{
		resolver:    NewResolver(canonical),
		detector:    NewBinaryDetector(cfg.BinarySampleSize),
		maxFileSize: maxFileSize,
		log:         log,
	}, nil
}

// BaseDir returns the canonical base directory.
func (s *Sandbox) BaseDir() string {
	return s.resolver.BaseDir()
}
