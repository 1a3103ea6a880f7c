package main

import (
	"os"
	"strings"

	"taskboard/internal/cli"
)

const directTaskPrefix = "task:"

func directTaskID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, directTaskPrefix) {
		return "", false
	}
	id := strings.TrimSpace(strings.TrimPrefix(s, directTaskPrefix))
	return id, id != ""
}

func rewriteDirectTaskLookupArgs(argv []string) []string {
	// `taskboard task:<id>` works like `taskboard tasks show <id>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
	// before parsing. Persistent flags may come first, so look for the first
	// positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":        true,
		"--config":     true,
		"--boards-url": true,
		"--storage":    true,
		"--redis-url":  true,
		"--format":     true,
		"--log-level":  true,
	}
	boolFlags := map[string]bool{
		"--pretty":   true,
		"--log-json": true,
		"--offline":  true,
	}

	rewrite := func(i int, id string) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "tasks", "show", id)
		out = append(out, argv[i+1:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				if id, ok := directTaskID(argv[i+1]); ok {
					return rewrite(i+1, id)
				}
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if id, ok := directTaskID(a); ok {
			return rewrite(i, id)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectTaskLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
