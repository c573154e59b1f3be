package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/spaghettifunk/topdown/engine/core"
)

const (
	wavFormatPCM = 1
	// Clips are short effects; anything larger is almost certainly not one.
	maxWAVFileSize = 64 << 20
)

// DecodeWAV reads a whole RIFF/WAVE file holding uncompressed mono or stereo
// PCM of 8, 16, 24 or 32 bits. A data chunk cut short by the end of the file
// is kept up to its last whole frame.
func DecodeWAV(r io.Reader) (*goaudio.IntBuffer, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxWAVFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnsupportedWAV, err)
	}
	if len(raw) > maxWAVFileSize {
		return nil, fmt.Errorf("%w: file larger than %d bytes", core.ErrUnsupportedWAV, maxWAVFileSize)
	}
	if err := checkChunks(raw); err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(bytes.NewReader(raw))
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrUnsupportedWAV, err)
		}
		return nil, fmt.Errorf("%w: missing or invalid fmt chunk", core.ErrUnsupportedWAV)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: compression tag %d", core.ErrUnsupportedWAV, dec.WavAudioFormat)
	}
	if dec.NumChans > 2 {
		return nil, fmt.Errorf("%w: %d channels", core.ErrUnsupportedWAV, dec.NumChans)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnsupportedWAV, err)
	}
	ch := buf.Format.NumChannels
	buf.Data = buf.Data[:len(buf.Data)-len(buf.Data)%ch]
	if len(buf.Data) == 0 {
		return nil, fmt.Errorf("%w: no samples", core.ErrUnsupportedWAV)
	}
	return buf, nil
}

// checkChunks walks the chunk headers of an in-memory RIFF/WAVE file and
// rejects any chunk, other than a truncated "data" chunk, that declares more
// bytes than the file holds.
func checkChunks(raw []byte) error {
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return fmt.Errorf("%w: not a RIFF/WAVE stream", core.ErrUnsupportedWAV)
	}
	for off := 12; off+8 <= len(raw); {
		id := string(raw[off : off+4])
		size := int64(binary.LittleEndian.Uint32(raw[off+4 : off+8]))
		left := int64(len(raw) - off - 8)
		if size > left {
			if id == "data" {
				return nil
			}
			return fmt.Errorf("%w: %q chunk declares %d bytes, %d left", core.ErrUnsupportedWAV, id, size, left)
		}
		off += 8 + int(size+size&1)
	}
	return nil
}

// SourceFormat describes a decoded buffer with samples narrowed to 16 bit
// when they are wider.
func SourceFormat(buf *goaudio.IntBuffer) Format {
	f := Format{BitDepth: 2}
	if buf == nil || buf.Format == nil {
		return f
	}
	f.SampleRate = buf.Format.SampleRate
	f.Channels = buf.Format.NumChannels
	if buf.SourceBitDepth == 8 {
		f.BitDepth = 1
	}
	return f
}

// Convert renders a decoded buffer as interleaved PCM in the target format:
// channels are averaged or duplicated, the rate is changed by nearest-sample
// picking, and samples are rescaled to the target depth.
func Convert(buf *goaudio.IntBuffer, target Format) ([]byte, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if buf == nil || buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: buffer has no format", core.ErrUnsupportedWAV)
	}
	if ch := buf.Format.NumChannels; ch != 1 && ch != 2 {
		return nil, fmt.Errorf("%w: %d channels", core.ErrUnsupportedWAV, ch)
	}
	switch buf.SourceBitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bit samples", core.ErrUnsupportedWAV, buf.SourceBitDepth)
	}

	srcRate := int64(buf.Format.SampleRate)
	srcFrames := buf.NumFrames()
	dstFrames := int(int64(srcFrames) * int64(target.SampleRate) / srcRate)

	var out bytes.Buffer
	out.Grow(dstFrames * target.FrameSize())
	for i := 0; i < dstFrames; i++ {
		src := int(int64(i) * srcRate / int64(target.SampleRate))
		if src >= srcFrames {
			src = srcFrames - 1
		}
		left, right := readFrame(buf, src)
		switch target.Channels {
		case 1:
			writeSample(&out, target.BitDepth, int16((int32(left)+int32(right))/2))
		case 2:
			writeSample(&out, target.BitDepth, left)
			writeSample(&out, target.BitDepth, right)
		}
	}
	return out.Bytes(), nil
}

// readFrame returns the frame as signed 16 bit left/right samples; mono
// frames return the same sample twice.
func readFrame(buf *goaudio.IntBuffer, frame int) (int16, int16) {
	ch := buf.Format.NumChannels
	left := toInt16(buf.Data[frame*ch], buf.SourceBitDepth)
	if ch == 1 {
		return left, left
	}
	return left, toInt16(buf.Data[frame*ch+1], buf.SourceBitDepth)
}

// 8 bit WAV samples are unsigned, every other depth is signed.
func toInt16(v, depth int) int16 {
	switch depth {
	case 8:
		return int16((v - 128) << 8)
	case 24:
		return int16(v >> 8)
	case 32:
		return int16(v >> 16)
	}
	return int16(v)
}

func writeSample(out *bytes.Buffer, depth int, s int16) {
	if depth == 1 {
		out.WriteByte(byte(int(s>>8) + 128))
		return
	}
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(s))
	out.Write(b[:])
}
