package main

import "errors"

// Sentinel errors for command operations
var (
	// ErrReported marks a failure whose message was already printed.
	ErrReported = errors.New("error already reported")
	// ErrInputFileNotExist is returned when the source file is missing.
	ErrInputFileNotExist = errors.New("input file does not exist")
)
