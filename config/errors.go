package config

import "errors"

var (
	// ErrParse is returned when the file is not valid YAML for File.
	ErrParse = errors.New("config: cannot parse file")

	// ErrInvalid is returned when a parsed file fails validation.
	ErrInvalid = errors.New("config: invalid file")
)
