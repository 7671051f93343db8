package emotion

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrUnsupportedAudio is returned for WAV files that are not plain PCM
var ErrUnsupportedAudio = errors.New("unsupported audio format")

type wavFormat struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// LoadAudio reads an 8 or 16 bit PCM WAV file into mono samples in [-1, 1].
// Channels are averaged and the clip is scaled by its peak amplitude.
func LoadAudio(path string) ([]float32, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open audio: %w", err)
	}
	samples, rate, err := DecodeWAV(data)
	if err != nil {
		return nil, 0, fmt.Errorf("decode audio %s: %w", path, err)
	}
	return samples, rate, nil
}

// DecodeWAV parses a RIFF/WAVE byte stream, see LoadAudio
func DecodeWAV(data []byte) ([]float32, int, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("%w: not a RIFF/WAVE file", ErrUnsupportedAudio)
	}

	var (
		format  *wavFormat
		payload []byte
	)
	rest := data[12:]
	for len(rest) >= 8 {
		id := string(rest[0:4])
		size := int(binary.LittleEndian.Uint32(rest[4:8]))
		rest = rest[8:]
		if size > len(rest) {
			size = len(rest)
		}
		chunk := rest[:size]

		switch id {
		case "fmt ":
			var f wavFormat
			if err := binary.Read(bytes.NewReader(chunk), binary.LittleEndian, &f); err != nil {
				return nil, 0, fmt.Errorf("%w: short fmt chunk", ErrUnsupportedAudio)
			}
			format = &f
		case "data":
			payload = chunk
		}

		// chunks are padded to an even length
		if size%2 == 1 && size < len(rest) {
			size++
		}
		rest = rest[size:]
	}

	if format == nil {
		return nil, 0, fmt.Errorf("%w: missing fmt chunk", ErrUnsupportedAudio)
	}
	if format.AudioFormat != 1 {
		return nil, 0, fmt.Errorf("%w: compression code %d, only PCM is read", ErrUnsupportedAudio, format.AudioFormat)
	}
	if format.Channels == 0 || format.SampleRate == 0 {
		return nil, 0, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedAudio, format.Channels, format.SampleRate)
	}

	var width int
	switch format.BitsPerSample {
	case 8:
		width = 1
	case 16:
		width = 2
	default:
		return nil, 0, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedAudio, format.BitsPerSample)
	}

	channels := int(format.Channels)
	frameBytes := width * channels
	frames := len(payload) / frameBytes
	if frames == 0 {
		return nil, 0, errors.New("no audio samples")
	}

	samples := make([]float32, frames)
	var peak float32
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			off := i*frameBytes + c*width
			if width == 1 {
				// 8 bit PCM is unsigned around 128
				sum += float32(int(payload[off]) - 128)
			} else {
				sum += float32(int16(binary.LittleEndian.Uint16(payload[off:])))
			}
		}
		s := sum / float32(channels)
		samples[i] = s
		if a := float32(math.Abs(float64(s))); a > peak {
			peak = a
		}
	}

	if peak > 0 {
		for i := range samples {
			samples[i] /= peak
		}
	}
	return samples, int(format.SampleRate), nil
}
