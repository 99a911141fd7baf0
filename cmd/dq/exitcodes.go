package main

// Exit codes shared by all subcommands.
const (
	ExitSuccess   = 0 // Success
	ExitError     = 1 // General error (invalid arguments, runtime failure)
	ExitDataError = 3 // Data error (malformed input, validation failure)
)
