package detect

// DependencyGap names a detected ecosystem whose dependency directory is
// absent, with the install command that would create it.
type DependencyGap struct {
	Ecosystem string
	Marker    string // the missing directory
	Fix       string
}

// dependencyMarkers mirrors the install-directory checks of the detectors
// whose ecosystems install into a well-known location.
var dependencyMarkers = []struct {
	detector Detector
	marker   string
	fix      string
}{
	{nodeDetector{}, "node_modules", "npm install"},
	{phpDetector{}, "vendor", "composer install"},
	{flutterDetector{}, ".dart_tool", "flutter pub get"},
}

// FindDependencyGap reports the first detected ecosystem in dir whose
// dependency directory is missing. Purely a filesystem inspection; nothing
// is executed.
func FindDependencyGap(dir string) (DependencyGap, bool) {
	for _, m := range dependencyMarkers {
		if m.detector.Detect(dir) && !dirExists(dir, m.marker) {
			return DependencyGap{
				Ecosystem: m.detector.Name(),
				Marker:    m.marker,
				Fix:       m.fix,
			}, true
		}
	}
	return DependencyGap{}, false
}
