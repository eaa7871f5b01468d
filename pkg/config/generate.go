package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent generates the odev.toml file content with all
// values present but commented out, so users uncomment what they change
func GenerateConfigContent() (string, error) {
	raw, err := toml.Marshal(tomlView(Default()))
	if err != nil {
		return "", err
	}

	header := "# odev configuration\n" +
		"# Uncomment a value to override the built-in default.\n\n"
	return header + commentOutConfigValues(string(raw)), nil
}

// tomlView mirrors Config with toml tags so the generated file uses the
// same key names the koanf loader reads back
func tomlView(c *Config) map[string]interface{} {
	return map[string]interface{}{
		"upstream": map[string]interface{}{
			"repo_api":       c.Upstream.RepoAPI,
			"install_script": c.Upstream.InstallScript,
		},
		"compose": map[string]interface{}{
			"manifest": c.Compose.Manifest,
			"env_file": c.Compose.EnvFile,
		},
		"scaffold": map[string]interface{}{
			"root":    c.Scaffold.Root,
			"subdirs": c.Scaffold.Subdirs,
		},
		"http": map[string]interface{}{
			"timeout": c.HTTP.Timeout.String(),
		},
	}
}

// commentOutConfigValues takes TOML content and comments out all
// non-comment, non-blank lines that contain configuration values
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g. [upstream], [compose]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
