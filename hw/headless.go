package hw

import (
	"sync/atomic"

	"github.com/cespare/xxhash"

	"objdemo/emu/log"
)

type HeadlessConfig struct {
	// SaveFrameNum is the frame number (0-based) to save as a PNG file, in
	// SaveFramePath, scaled by SaveFrameScale. Disabled if SaveFramePath
	// is empty.
	SaveFrameNum   int64
	SaveFramePath  string
	SaveFrameScale int

	// KeepHashes records the hash of every frame, not only the last one.
	KeepHashes bool
}

// Headless is a Sink without display. It hashes frames and can save one of
// them as a PNG.
type Headless struct {
	cfg HeadlessConfig

	presented atomic.Int64
	lastHash  atomic.Uint64
	hashes    []uint64
}

func NewHeadless(cfg HeadlessConfig) *Headless {
	return &Headless{cfg: cfg}
}

func (h *Headless) Present(f Frame) error {
	n := h.presented.Load()
	sum := xxhash.Sum64(f)
	h.lastHash.Store(sum)
	if h.cfg.KeepHashes {
		h.hashes = append(h.hashes, sum)
	}

	if h.cfg.SaveFramePath != "" && n == h.cfg.SaveFrameNum {
		if err := SaveAsPNG(f.Image(), h.cfg.SaveFrameScale, h.cfg.SaveFramePath); err != nil {
			return err
		}
		log.ModOutput.InfoZ("frame saved").
			Int64("frame", n).
			String("path", h.cfg.SaveFramePath).
			End()
	}

	h.presented.Store(n + 1)
	return nil
}

func (h *Headless) Poll() bool { return true }

func (h *Headless) Close() error { return nil }

// Presented returns the number of frames presented so far.
func (h *Headless) Presented() int64 { return h.presented.Load() }

// LastHash returns the xxhash64 of the last presented frame.
func (h *Headless) LastHash() uint64 { return h.lastHash.Load() }

// Hashes returns the hash of every presented frame (KeepHashes only). It must
// not be called while frames are being presented.
func (h *Headless) Hashes() []uint64 { return h.hashes }
