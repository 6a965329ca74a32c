package pagesnap

// Console banners.
const (
	ContentBanner = "=== EXTRACTED CONTENT ==="
	HTMLBanner    = "=== FULL PAGE HTML ==="
)

// Acknowledgement returns the message shown once the artifact name has been saved.
func Acknowledgement(name string) string {
	return "Content extracted! Check your downloads for " + name +
		" and check the console for the full HTML."
}

// Console mirrors snapshot data to a diagnostic log.
type Console interface {
	// Log writes a banner line followed by body.
	Log(banner, body string) error
}

// Notifier shows a user-facing message, blocking until acknowledged
// when the implementation supports it.
type Notifier interface {
	Notify(message string) error
}
