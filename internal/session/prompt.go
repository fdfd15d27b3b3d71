package session

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"docgaps/internal/parser"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	refStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))
)

// TermPrompter reads operator choices line by line from a terminal.
type TermPrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewTermPrompter(in io.Reader, out io.Writer) *TermPrompter {
	return &TermPrompter{in: bufio.NewScanner(in), out: out}
}

func (p *TermPrompter) Choose(msg string, valid string) (byte, error) {
	for {
		fmt.Fprint(p.out, promptStyle.Render(msg))
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		ans := strings.ToLower(strings.TrimSpace(p.in.Text()))
		if ans != "" && strings.IndexByte(valid, ans[0]) >= 0 {
			return ans[0], nil
		}
		fmt.Fprintf(p.out, "Please enter one of: %s.\n", choicesList(valid))
	}
}

func (p *TermPrompter) Collect(msg, seed string) (string, error) {
	fmt.Fprintln(p.out, msg)
	if seed != "" {
		fmt.Fprintln(p.out, "(Current text shown below; edit as needed, then press ENTER on a blank line)")
		fmt.Fprintln(p.out, seed)
	}

	var lines []string
	for p.in.Scan() {
		line := p.in.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := p.in.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func (p *TermPrompter) Say(msg string) {
	fmt.Fprintln(p.out, msg)
}

func choicesList(valid string) string {
	chars := strings.Split(valid, "")
	sort.Strings(chars)
	return strings.Join(chars, ", ")
}

func banner(idx, total int, tgt parser.Target) string {
	head := bannerStyle.Render(strings.Repeat("=", 80))
	ref := refStyle.Render(fmt.Sprintf("[%d/%d] %s", idx, total, tgt.Ref()))
	return "\n" + head + "\n" + ref + "\n"
}

func indentBlock(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ln != "" {
			lines[i] = prefix + ln
		}
	}
	return strings.Join(lines, "\n")
}
