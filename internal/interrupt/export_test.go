package interrupt

// resetInstall lets each test install its own bridge.
func resetInstall() {
	installMu.Lock()
	installed = false
	installMu.Unlock()
}
