package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication and session errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotSignedIn      = fmt.Errorf("please sign in")
	ErrSessionCorrupted = fmt.Errorf("session data corrupted")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and catalog errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrSongNotFound       = fmt.Errorf("song not found")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrAlreadyLiked       = fmt.Errorf("song already liked")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrEmptyName       = fmt.Errorf("name must not be empty")

	// Capture and detection errors
	ErrCaptureBusy     = fmt.Errorf("capture already in progress")
	ErrCameraDenied    = fmt.Errorf("camera unavailable")
	ErrNoFace          = fmt.Errorf("no face detected")
	ErrDetectionFailed = fmt.Errorf("expression detection failed")
)
