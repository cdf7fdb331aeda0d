package loctext

import "errors"

// ErrNotInitialized is returned when the culture registry is used before Initialize.
var ErrNotInitialized = errors.New("loctext: culture registry not initialized")

// ErrAlreadyInitialized is returned by a second call to Initialize.
var ErrAlreadyInitialized = errors.New("loctext: culture registry already initialized")

// ErrInitialization wraps failures to load locale data during Initialize.
var ErrInitialization = errors.New("loctext: cannot load locale data")

// ErrUnknownLocale indicates that a culture identifier could not be resolved.
var ErrUnknownLocale = errors.New("loctext: unknown locale")

// ErrUnknownTimeZone indicates that a time zone name could not be loaded.
var ErrUnknownTimeZone = errors.New("loctext: unknown time zone")

// ErrUnsupportedNumber is returned by AsNumber for non numeric values.
var ErrUnsupportedNumber = errors.New("loctext: unsupported number type")

// ErrBiDiComputation is only ever logged, the analyzer falls back to left-to-right.
var ErrBiDiComputation = errors.New("loctext: bidi computation failed")
