// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

/* ------------ logging helpers (stderr) ------------ */

var logOut io.Writer = os.Stderr

func Infof(format string, a ...any) {
	fmt.Fprintf(logOut, "[INFO] "+format+"\n", a...)
}

func Warnf(format string, a ...any) {
	fmt.Fprintf(logOut, "[WARN] "+format+"\n", a...)
}

/* ------------ config path ------------ */

func getIniPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	iniPath, err := os.UserHomeDir()
	if err != nil {
		iniPath = "."
	}
	return iniPath + string(os.PathSeparator) + IniName
}

/* ------------ output ------------ */

func TranslateFormat(format string) string {
	switch strings.ToLower(format) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	default:
		return "short"
	}
}

// FormatOutput renders v as indented JSON or YAML. "short" is rendered by
// the caller, so it falls back to JSON here.
func FormatOutput(v any, format string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal output: %w", err)
	}
	if TranslateFormat(format) == "yaml" {
		y, err := yaml.JSONToYAML(b)
		if err != nil {
			return "", fmt.Errorf("json to yaml failed: %w", err)
		}
		return string(y), nil
	}
	return PrettyJSON(b), nil
}

func PrettyJSON(b []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "  "); err != nil {
		return string(b)
	}
	return out.String()
}

func HumanBytes(n int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)
	switch {
	case n >= GB:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
