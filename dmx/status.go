package dmx

// StatusWriter is a function type for writing human-readable status
// lines. Platforms redirect it to USB CDC, a log file, stdout, etc.
type StatusWriter func(string)

// statusPrintln is the global status output. No-op by default so the
// core never blocks on a sink that is not there.
var statusPrintln StatusWriter = func(s string) {}

// SetStatusWriter sets the platform-specific status output function.
func SetStatusWriter(w StatusWriter) {
	if w == nil {
		w = func(s string) {}
	}
	statusPrintln = w
}
