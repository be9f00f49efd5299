package ir

// Version constants for the frame schema and engine.
const (
	// FrameVersion is the frame schema version. Bump it when the canonical
	// frame encoding changes, since trace digests depend on it.
	FrameVersion = "1"

	// EngineVersion is the sortviz engine version.
	EngineVersion = "0.1.0"
)
