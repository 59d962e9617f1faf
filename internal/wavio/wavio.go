// Package wavio reads and writes the uncompressed PCM wave containers taper
// records into. The header carries channel count, sample rate and a 16-bit
// depth; the body is the captured chunks concatenated in order.
package wavio

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/dgnsrekt/taper/recorder/audio"
)

// Write encodes chunks into w as a wave container in the given format.
func Write(f *os.File, format audio.Format, chunks [][]byte) error {
	enc := wav.NewEncoder(f, format.SampleRate, audio.BitDepth, format.Channels, 1)

	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	samples := make([]int, 0, total/audio.BytesPerSample)
	for _, c := range chunks {
		for i := 0; i+1 < len(c); i += audio.BytesPerSample {
			samples = append(samples, int(int16(binary.LittleEndian.Uint16(c[i:]))))
		}
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		Data:           samples,
		SourceBitDepth: audio.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wave data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wave container: %w", err)
	}
	return nil
}

// WriteFile writes chunks to a new wave file at path.
func WriteFile(path string, format audio.Format, chunks [][]byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, format, chunks); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the wave file at path into its format and raw PCM body.
func ReadFile(path string) (audio.Format, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return audio.Format{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return audio.Format{}, nil, fmt.Errorf("decode %s: %w", path, err)
	}

	format := audio.Format{
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}
	pcm := make([]byte, len(buf.Data)*audio.BytesPerSample)
	for i, s := range buf.Data {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(s)))
	}
	return format, pcm, nil
}

// Duration reads only enough of the file at path to report its play time.
func Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	d, err := dec.Duration()
	if err != nil {
		return 0, fmt.Errorf("read duration of %s: %w", path, err)
	}
	return d, nil
}
