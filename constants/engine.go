package constants

// Vision engine identifiers.
const (
	EngineGemini       = "gemini"
	EngineGoogleVision = "google-vision"
	EngineTesseract    = "tesseract"
)

// APIVersion is reported by the health and status endpoints.
const APIVersion = "1.0.0"
