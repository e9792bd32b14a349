package parameter

// Capture defaults
const (
	// CaptureFPS is the target sampling rate of the surface capture sink
	CaptureFPS = 60

	// CaptureJPEGQuality is the per-frame JPEG quality of the MJPEG sink
	CaptureJPEGQuality = 85

	// ArtifactPrefix prefixes saved artifact file names
	ArtifactPrefix = "car-race-"

	// ArtifactExt is the saved artifact extension
	ArtifactExt = ".mjpeg"

	// ArtifactMIME is the artifact content type
	ArtifactMIME = "video/x-motion-jpeg"
)
