// Package generator runs the external text/color pipeline (fortune, cowsay,
// lolcat, ...) and captures its ANSI-colored output.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// DefaultCommand is the pipeline used when none is configured.
const DefaultCommand = "fortune | cowsay | lolcat -f"

// ErrEmptyOutput means the pipeline ran but produced nothing to render.
var ErrEmptyOutput = errors.New("generator: command produced empty output")

var (
	lolcatPattern       = regexp.MustCompile(`\blolcat\b`)
	lolcatForcedPattern = regexp.MustCompile(`\blolcat\b\s+(-f|--force)\b`)
	escapePattern       = regexp.MustCompile(`\x1b\[`)
)

// Normalize rewrites the first bare lolcat invocation to lolcat -f, since
// lolcat drops color when its output is a pipe.
func Normalize(command string) string {
	if lolcatPattern.MatchString(command) && !lolcatForcedPattern.MatchString(command) {
		loc := lolcatPattern.FindStringIndex(command)
		return command[:loc[1]] + " -f" + command[loc[1]:]
	}
	return command
}

// WantsColor reports whether the command asks for colored output.
func WantsColor(command string) bool {
	return lolcatPattern.MatchString(command)
}

// HasEscapes reports whether output contains any CSI escape sequence.
func HasEscapes(output string) bool {
	return escapePattern.MatchString(output)
}

// Run executes the shell pipeline and returns its raw ANSI output. The
// environment forces color so tools keep their escape codes when writing to
// a pipe. Failures carry a stderr excerpt for diagnosis.
func Run(ctx context.Context, command string) (string, error) {
	normalized := Normalize(command)

	cmd := exec.CommandContext(ctx, "bash", "-lc", normalized)
	env := append(os.Environ(),
		"CLICOLOR_FORCE=1",
		"FORCE_COLOR=3",
	)
	if os.Getenv("TERM") == "" {
		env = append(env, "TERM=xterm-256color")
	}
	if os.Getenv("COLORTERM") == "" {
		env = append(env, "COLORTERM=truecolor")
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("generator: command failed: %s", msg)
	}

	output := stdout.String()
	if output == "" {
		return "", ErrEmptyOutput
	}
	return output, nil
}
