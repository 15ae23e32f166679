package web

// SandboxCapabilities is the capability set granted to embedded legacy
// screens. Legacy pages rely on same-origin cookies, their own scripts,
// form posts, and popup report windows; no other capability is granted.
const SandboxCapabilities = "allow-same-origin allow-scripts allow-forms allow-popups"

// Embed describes one legacy screen hosted inside the shell.
type Embed struct {
	SourcePath string
	Title      string
	Degraded   bool
	Note       string
}

func (e Embed) Sandbox() string {
	return SandboxCapabilities
}
