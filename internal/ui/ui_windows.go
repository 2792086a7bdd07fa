package ui

const (
	passwordPromptTitle = "Enter the Administrator password"
	authFailedMessage   = "Sorry, that password was rejected. Try again."
)
