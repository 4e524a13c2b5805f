package transcode

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioFilter(t *testing.T) {
	tests := []struct {
		name       string
		pitchShift int
		want       string
	}{
		{
			name:       "zero shift passes audio through at factor 1",
			pitchShift: 0,
			want:       "asetrate=44100*1,aresample=44100",
		},
		{
			name:       "octave down resamples at half rate then restores",
			pitchShift: -12,
			want:       "asetrate=44100*0.5,aresample=44100",
		},
		{
			name:       "octave up resamples at double rate then restores",
			pitchShift: 12,
			want:       "asetrate=44100*2,aresample=44100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AudioFilter(44100, tt.pitchShift))
		})
	}
}

func TestAudioFilterFractionalFactor(t *testing.T) {
	filter := AudioFilter(44100, 7)
	assert.Contains(t, filter, "asetrate=44100*1.49830")
	assert.Contains(t, filter, ",aresample=44100")
}

func TestArgs(t *testing.T) {
	tr := NewTranscoder("ffmpeg", 44100, 0)
	args := tr.Args("/tmp/in.mp4", "/tmp/out.mp4", 3)

	assert.Equal(t, "-i", args[0])
	assert.Equal(t, "/tmp/in.mp4", args[1])
	// Video stream copied untouched, audio re-encoded as AAC
	assert.Contains(t, args, "copy")
	assert.Contains(t, args, "aac")
	assert.Equal(t, "/tmp/out.mp4", args[len(args)-1])
}

func TestTranscodeMissingTool(t *testing.T) {
	dir := t.TempDir()
	tr := NewTranscoder("/nonexistent/ffmpeg", 44100, time.Minute)

	err := tr.Transcode(context.Background(),
		filepath.Join(dir, "in.mp4"),
		filepath.Join(dir, "out.mp4"),
		5,
	)

	var transcodeErr *TranscodeError
	require.ErrorAs(t, err, &transcodeErr)
	assert.Contains(t, transcodeErr.Error(), "ffmpeg is installed")
}
