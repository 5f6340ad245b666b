package cli

import (
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// helpRule styles the help lines its pattern matches. Patterns with a
// capture group style only the middle group (a command or flag name).
type helpRule struct {
	re    *regexp.Regexp
	style func(string) string
}

var helpRules = []helpRule{
	// "Usage:", "Flags:", "Global Flags:"
	{regexp.MustCompile(`^[A-Z][A-Za-z ]+:$`), Info},
	// footer: Use "hours [command] --help" ...
	{regexp.MustCompile(`^Use "`), Silent},
	// "  -h, --help   help for hours"
	{regexp.MustCompile(`^( +)(-.+?)( {2,}.*)$`), Primary},
	// "  add         Add hours to one category of a week"
	{regexp.MustCompile(`^( {2})(\S+)(\s{2,}.*)$`), Primary},
}

// styledHelp renders cobra's usage text with section and name highlighting.
func styledHelp(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()

	var buf strings.Builder
	cmd.SetOut(&buf)
	cmd.InitDefaultHelpFlag()
	_ = cmd.Usage()
	cmd.SetOut(out)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = styleHelpLine(line)
	}
	cmd.Print(strings.Join(lines, "\n") + "\n")
}

func styleHelpLine(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, r := range helpRules {
		if r.re.NumSubexp() == 0 {
			if r.re.MatchString(trimmed) {
				return r.style(line)
			}
			continue
		}
		if m := r.re.FindStringSubmatch(line); m != nil {
			return m[1] + r.style(m[2]) + m[3]
		}
	}
	return line
}
