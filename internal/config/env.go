package config

import (
	"strconv"
	"strings"
)

// EnvDebugShader enables shader debug dumps. Any value other than one
// strconv.ParseBool reads as false turns dumping on, including the empty
// string.
const EnvDebugShader = "DEBUG_SHADER"

// EnvAssetRoot overrides the shader asset directory.
const EnvAssetRoot = "LIFE_ASSETS"

// ApplyEnv applies the recognised variables of environ ("KEY=value" pairs).
func (c *Config) ApplyEnv(environ []string) {
	env := envMap(environ)
	if v, ok := env[EnvDebugShader]; ok {
		c.DebugShader = DebugShaderEnabled(v)
	}
	if v, ok := env[EnvAssetRoot]; ok && v != "" {
		c.AssetRoot = v
	}
}

// DebugShaderEnabled interprets a DEBUG_SHADER value.
func DebugShaderEnabled(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return true
	}
	return b
}

func envMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}
