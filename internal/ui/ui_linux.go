package ui

const (
	passwordPromptTitle = "Enter your sudo password"
	authFailedMessage   = "Sorry, that password was rejected. Try again."
)
