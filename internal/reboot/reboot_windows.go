package reboot

// Args returns the command used to reboot the system immediately. The
// command requires elevated privileges, so callers pass it through the
// privileged executor rather than spawning it directly.
func Args() []string {
	return []string{"shutdown", "/r", "/t", "0"}
}
