package shader

import (
	"regexp"
	"strings"
)

var (
	// vertexEntryRegex matches every @vertex function and captures its name.
	vertexEntryRegex = regexp.MustCompile(`@vertex\s+fn\s+(\w+)`)

	// fragmentEntryRegex matches every @fragment function and captures its name.
	fragmentEntryRegex = regexp.MustCompile(`@fragment\s+fn\s+(\w+)`)
)

// parseEntryPoints extracts the vertex and fragment entry point names from WGSL source.
// Comments are stripped first so commented-out entry points are ignored.
//
// Parameters:
//   - source: the raw WGSL source code string
//
// Returns:
//   - []string: the @vertex function names in source order
//   - []string: the @fragment function names in source order
func parseEntryPoints(source string) (vertex, fragment []string) {
	cleaned := stripComments(source)
	for _, m := range vertexEntryRegex.FindAllStringSubmatch(cleaned, -1) {
		vertex = append(vertex, m[1])
	}
	for _, m := range fragmentEntryRegex.FindAllStringSubmatch(cleaned, -1) {
		fragment = append(fragment, m[1])
	}
	return vertex, fragment
}

// stripComments removes both block and line comments from WGSL source.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments.
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes /* ... */ comments, which nest in WGSL.
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			if source[i] == '/' && source[i+1] == '*' {
				depth++
				i++
				continue
			}
			if source[i] == '*' && source[i+1] == '/' && depth > 0 {
				depth--
				i++
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
