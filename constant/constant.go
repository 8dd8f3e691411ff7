package constant

const (
	WINDOW_TITLE  = "Not Alone"
	WINDOW_WIDTH  = 800
	WINDOW_HEIGHT = 600
	NUM_BUFFERS   = 3
	TARGET_FPS    = 60
	AUDIO_FREQ    = 44100
	CHANNELS      = 2
	AUDIO_SAMPLES = 1024
	SOUND_DIR     = "sounds"
)
