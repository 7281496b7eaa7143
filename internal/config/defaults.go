package config

const (
	defaultLibraryDir       = "reel"
	defaultRecorderBinary   = "obs-cli"
	defaultRecordingsDir    = "~/Videos"
	defaultStopTimeout      = 15
	defaultFFmpegBinary     = "ffmpeg"
	defaultFFprobeBinary    = "ffprobe"
	defaultRenderMinFreeMiB = 512
	defaultLogLevel         = "info"
	defaultLogFormat        = "text"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
		},
		Recorder: Recorder{
			Binary:        defaultRecorderBinary,
			RecordingsDir: defaultRecordingsDir,
			Extensions:    []string{".mp4", ".mkv", ".mov"},
			StopTimeout:   defaultStopTimeout,
		},
		Render: Render{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			MinFreeMiB:    defaultRenderMinFreeMiB,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
