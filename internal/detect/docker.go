package detect

type dockerDetector struct{}

func (dockerDetector) Name() string { return "Docker" }

func (dockerDetector) Detect(dir string) bool {
	return anyFileExists(dir, "Dockerfile", "docker-compose.yml", "docker-compose.yaml", "compose.yaml", "compose.yml")
}

func (dockerDetector) Analyze(dir string) map[string]string {
	facts := map[string]string{}
	if fileExists(dir, "Dockerfile") {
		facts["dockerfile"] = "Dockerfile"
	}
	for _, name := range []string{"docker-compose.yml", "docker-compose.yaml", "compose.yaml", "compose.yml"} {
		if fileExists(dir, name) {
			facts["compose"] = name
			break
		}
	}
	return facts
}

func (dockerDetector) Checks() []Check {
	return []Check{
		toolCheck("docker", "--version", "install Docker from https://docs.docker.com/get-docker"),
	}
}
