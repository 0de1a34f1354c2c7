package transcode

import "errors"

// ErrUnsupportedFormat reports a file extension with no registered decoder.
var ErrUnsupportedFormat = errors.New("transcode: unsupported audio format")
