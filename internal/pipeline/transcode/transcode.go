// Package transcode re-encodes a video's audio with a pitch shift while
// copying the video stream untouched.
package transcode

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/qmdang/pitchshift-be/internal/pipeline/pitch"
)

// TranscodeError wraps any failure from the external transcoding process
type TranscodeError struct {
	Err error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("transcoding failed: %v", e.Err)
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}

// Transcoder shells out to ffmpeg with a fixed pitch-shift filter recipe
type Transcoder struct {
	FFmpegPath string
	SampleRate int
	Timeout    time.Duration
}

// NewTranscoder creates a transcoder using the given ffmpeg binary and
// audio sample rate (44100 for standard web video)
func NewTranscoder(ffmpegPath string, sampleRate int, timeout time.Duration) *Transcoder {
	return &Transcoder{
		FFmpegPath: ffmpegPath,
		SampleRate: sampleRate,
		Timeout:    timeout,
	}
}

// AudioFilter builds the ffmpeg filter chain for a semitone shift.
// asetrate reinterprets the sample rate as rate*factor, shifting both
// pitch and tempo; aresample back to the original rate restores tempo
// and duration while the pitch shift persists.
func AudioFilter(sampleRate, pitchShift int) string {
	factor := pitch.Factor(pitchShift)
	return fmt.Sprintf("asetrate=%d*%s,aresample=%d",
		sampleRate,
		strconv.FormatFloat(factor, 'f', -1, 64),
		sampleRate,
	)
}

// Args builds the full ffmpeg argument list. The video stream is copied
// without re-encoding; the audio stream is filtered then encoded as AAC.
func (t *Transcoder) Args(inputPath, outputPath string, pitchShift int) []string {
	return []string{
		"-i", inputPath,
		"-af", AudioFilter(t.SampleRate, pitchShift),
		"-c:v", "copy",
		"-c:a", "aac",
		"-y", outputPath,
	}
}

// Transcode runs ffmpeg over inputPath, writing the pitch-shifted result
// to outputPath. Any failure to start or a non-zero exit is a
// TranscodeError naming the missing tool.
func (t *Transcoder) Transcode(ctx context.Context, inputPath, outputPath string, pitchShift int) error {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, t.FFmpegPath, t.Args(inputPath, outputPath, pitchShift)...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			lines := strings.Split(detail, "\n")
			detail = strings.TrimSpace(lines[len(lines)-1])
			return &TranscodeError{
				Err: fmt.Errorf("%s: %v: %s. Make sure ffmpeg is installed", t.FFmpegPath, err, detail),
			}
		}
		return &TranscodeError{
			Err: fmt.Errorf("failed to run %s: %v. Make sure ffmpeg is installed", t.FFmpegPath, err),
		}
	}

	return nil
}
