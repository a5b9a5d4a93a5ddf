package audio

import (
	"encoding/binary"
	"errors"
	"os"
	"time"
)

// Clip errors.
var (
	ErrEmptyClip    = errors.New("clip has no audio data")
	ErrPlayerClosed = errors.New("audio player is closed")
	ErrNotWAV       = errors.New("not a valid WAV file")
)

// Clip is decoded audio ready for exclusive playback.
type Clip struct {
	Name       string
	PCM        []byte
	SampleRate int
	Channels   int
}

// Duration computes the clip length from the PCM size, assuming 16-bit
// samples.
func (c *Clip) Duration() time.Duration {
	rate := c.SampleRate
	if rate == 0 {
		rate = SampleRate
	}
	channels := c.Channels
	if channels == 0 {
		channels = ChannelCount
	}
	samples := len(c.PCM) / 2 / channels
	return time.Duration(samples) * time.Second / time.Duration(rate)
}

// LoadWAV reads a PCM WAV file from disk, walking the RIFF chunks to find
// the format and data sections.
func LoadWAV(path string) (*Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	clip, err := DecodeWAV(data)
	if err != nil {
		return nil, err
	}
	clip.Name = path
	return clip, nil
}

// DecodeWAV extracts PCM data and format from an in-memory WAV image.
func DecodeWAV(wav []byte) (*Clip, error) {
	if len(wav) < 44 {
		return nil, ErrNotWAV
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	clip := &Clip{SampleRate: SampleRate, Channels: ChannelCount}

	pos := 12
	for pos+8 <= len(wav) {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		body := pos + 8

		switch chunkID {
		case "fmt ":
			if body+16 <= len(wav) {
				clip.Channels = int(binary.LittleEndian.Uint16(wav[body+2 : body+4]))
				clip.SampleRate = int(binary.LittleEndian.Uint32(wav[body+4 : body+8]))
			}
		case "data":
			end := body + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			clip.PCM = wav[body:end]
			return clip, nil
		}

		pos = body + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, ErrNotWAV
}
