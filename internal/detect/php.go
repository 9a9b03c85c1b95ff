package detect

type phpDetector struct{}

func (phpDetector) Name() string { return "PHP" }

func (phpDetector) Detect(dir string) bool {
	return fileExists(dir, "composer.json")
}

func (phpDetector) Analyze(dir string) map[string]string {
	facts := map[string]string{"config": "composer.json"}
	if fileExists(dir, "composer.lock") {
		facts["lockfile"] = "composer.lock"
	}
	return facts
}

func (phpDetector) Checks() []Check {
	return []Check{
		toolCheck("php", "--version", "install PHP from https://www.php.net"),
		toolCheck("composer", "--version", "install Composer from https://getcomposer.org"),
		depsCheck("dependencies installed", "vendor", "composer install"),
	}
}
