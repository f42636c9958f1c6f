// Package iocli abstracts terminal input and output for the commands.
package iocli

//go:generate moq -out io_mock.go . IO

// IO is the terminal seen by a command: output, prompts and hidden input.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	// Confirm asks a yes/no question; only y and yes count as consent.
	Confirm(prompt string) (bool, error)
	Write(p []byte) (n int, err error)
}
