package detect

type dotnetDetector struct{}

func (dotnetDetector) Name() string { return ".NET" }

func (dotnetDetector) Detect(dir string) bool {
	return fileExists(dir, "global.json") || anyGlob(dir, "*.csproj", "*.sln", "*.fsproj")
}

func (dotnetDetector) Analyze(dir string) map[string]string {
	facts := map[string]string{}
	if fileExists(dir, "global.json") {
		facts["config"] = "global.json"
	}
	if anyGlob(dir, "*.sln") {
		facts["solution"] = "present"
	}
	return facts
}

func (dotnetDetector) Checks() []Check {
	return []Check{
		toolCheck("dotnet", "--version", "install the .NET SDK from https://dotnet.microsoft.com"),
	}
}
