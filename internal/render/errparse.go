package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParsedError is a structured view of a failed render's stderr.
type ParsedError struct {
	ErrorType  string // e.g. "NameError"
	Message    string // e.g. "name 'Circl' is not defined"
	LineNumber int    // 1-based line in the user's scene file, 0 if unknown
	Summary    string // one-liner suitable for a failure reason
}

var (
	ansiRe      = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	exceptionRe = regexp.MustCompile(`^(\w[\w.]*): (.+)$`)
	fileLineRe  = regexp.MustCompile(`File "([^"]+)", line (\d+)`)
)

const tracebackMarker = "Traceback (most recent call last):"

// ParseStderr extracts the exception type, message, and best line number from
// the last traceback block of a manim subprocess's stderr. scenePath, when
// known, is used to prefer frames from the user's own scene file over
// library frames.
func ParseStderr(stderr, scenePath string) ParsedError {
	cleaned := ansiRe.ReplaceAllString(stderr, "")

	var parsed ParsedError
	if pos := strings.LastIndex(cleaned, tracebackMarker); pos != -1 {
		lines := strings.Split(cleaned[pos:], "\n")

		// Exception type/message come from the final non-empty line.
		for i := len(lines) - 1; i >= 0; i-- {
			line := strings.TrimSpace(lines[i])
			if line == "" {
				continue
			}
			if m := exceptionRe.FindStringSubmatch(line); m != nil {
				parsed.ErrorType = m[1]
				parsed.Message = m[2]
			}
			break
		}

		parsed.LineNumber = bestFrameLine(lines, scenePath)
	}

	parsed.Summary = buildSummary(parsed, cleaned)
	return parsed
}

// bestFrameLine picks the most useful "File ..., line N" frame: prefer the
// scene file itself, then any non-library frame, then the last frame seen.
func bestFrameLine(lines []string, scenePath string) int {
	type frame struct {
		path string
		line int
	}
	var frames []frame
	for _, line := range lines {
		if m := fileLineRe.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			frames = append(frames, frame{path: m[1], line: n})
		}
	}
	if len(frames) == 0 {
		return 0
	}

	if scenePath != "" {
		for i := len(frames) - 1; i >= 0; i-- {
			f := frames[i]
			if strings.Contains(f.path, scenePath) && !strings.Contains(f.path, "site-packages") {
				return f.line
			}
		}
	}
	for i := len(frames) - 1; i >= 0; i-- {
		if !strings.Contains(frames[i].path, "site-packages") {
			return frames[i].line
		}
	}
	return frames[len(frames)-1].line
}

func buildSummary(parsed ParsedError, cleaned string) string {
	if parsed.ErrorType != "" && parsed.Message != "" {
		if parsed.LineNumber > 0 {
			return fmt.Sprintf("%s on line %d: %s", parsed.ErrorType, parsed.LineNumber, parsed.Message)
		}
		return fmt.Sprintf("%s: %s", parsed.ErrorType, parsed.Message)
	}

	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			if len(line) > 120 {
				return line[:120]
			}
			return line
		}
	}
	return "Unknown render error"
}
