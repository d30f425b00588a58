package export

import (
	"encoding/binary"
	"strconv"
	"strings"
)

const (
	defaultSampleRate = 24000
	wavChannels       = 1
	wavBitsPerSample  = 16
)

// WrapPCM wraps a raw 16-bit mono PCM payload in a WAV container so the
// synthesized speech is playable and saveable as a regular audio file.
// The sample rate is taken from the provider's reported media type
// (e.g. "audio/L16;codec=pcm;rate=24000").
func WrapPCM(pcm []byte, mimeType string) []byte {
	rate := sampleRateFromMIME(mimeType)

	byteRate := rate * wavChannels * wavBitsPerSample / 8
	blockAlign := wavChannels * wavBitsPerSample / 8

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(pcm)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM format
	binary.LittleEndian.PutUint16(header[22:24], wavChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(rate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], wavBitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(pcm)))

	return append(header, pcm...)
}

// sampleRateFromMIME extracts the rate parameter from an audio media type.
func sampleRateFromMIME(mimeType string) int {
	for _, param := range strings.Split(mimeType, ";") {
		param = strings.TrimSpace(param)
		if value, ok := strings.CutPrefix(param, "rate="); ok {
			if rate, err := strconv.Atoi(value); err == nil && rate > 0 {
				return rate
			}
		}
	}
	return defaultSampleRate
}
