package config

import "time"

// Encoding constants
const (
	// DefaultVideoCodec is the video encoding codec
	DefaultVideoCodec = "libx264"

	// DefaultAudioCodec is the audio encoding codec
	DefaultAudioCodec = "aac"

	// AudioBitrate is the audio quality bitrate
	AudioBitrate = "192k"

	// DefaultVideoPreset is the ffmpeg encoding speed preset
	DefaultVideoPreset = "medium"
)

// Pipeline constants
const (
	// MinTargetDuration is the shortest accepted target video length in seconds
	MinTargetDuration = 20.0

	// MaxTargetDuration is the longest accepted target video length in seconds (30 minutes)
	MaxTargetDuration = 1800.0

	// JobWallTimeout caps a web-triggered pipeline run
	JobWallTimeout = 5 * time.Minute
)

// Metadata constants
const (
	// MaxTitleLength is the maximum character length for video titles
	MaxTitleLength = 100

	// MaxDescriptionLength is the YouTube description limit
	MaxDescriptionLength = 5000

	// MaxTags is the maximum number of tags attached to an upload
	MaxTags = 15
)

// DefaultDisclaimerText is shown near the bottom for the full video duration.
const DefaultDisclaimerText = "본 영상은 투자 참고용이며 투자 책임은 본인에게 있습니다"
