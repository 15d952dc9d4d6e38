package statistic

import (
	"activitybot/internal/statistic/interfaces"
	"activitybot/internal/structures"
	"fmt"
	"github.com/klauspost/compress/zstd"
)

// backupLevel is used when backup.level is unset.
const backupLevel = zstd.SpeedBetterCompression

// ZstdCompression packs backup archives. Backups are written one at a time,
// so the encoder runs single-threaded and keeps no window between calls.
type ZstdCompression struct {
	level   zstd.EncoderLevel
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/4)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}

func archiveLevel(name string) (zstd.EncoderLevel, error) {
	if name == "" {
		return backupLevel, nil
	}
	ok, level := zstd.EncoderLevelFromString(name)
	if !ok {
		return 0, fmt.Errorf("unknown backup compression level %q", name)
	}
	return level, nil
}

func NewZstdCompressor(conf *structures.Config) (interfaces.CompressorInterface, error) {
	level, err := archiveLevel(conf.Backup.Level)
	if err != nil {
		return nil, err
	}
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(level),
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderCRC(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{level: level, encoder: encoder, decoder: decoder}, nil
}
