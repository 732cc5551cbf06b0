// Package ui renders gatekeeper's terminal output and reads operator input.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

const defaultWidth = 80

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Console writes styled lines to out and reads answers from in.
type Console struct {
	out   io.Writer
	in    *bufio.Reader
	width int

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
}

// NewConsole creates a console. With noColor set, no escape codes are written.
func NewConsole(in io.Reader, out io.Writer, noColor bool) *Console {
	c := &Console{
		out:    out,
		in:     bufio.NewReader(in),
		width:  terminalWidth(),
		green:  color.New(color.FgGreen, color.Bold),
		red:    color.New(color.FgRed, color.Bold),
		yellow: color.New(color.FgYellow, color.Bold),
		cyan:   color.New(color.FgCyan, color.Bold),
	}
	if noColor {
		for _, col := range []*color.Color{c.green, c.red, c.yellow, c.cyan} {
			col.DisableColor()
		}
	}
	return c
}

// SetWidth overrides the detected terminal width.
func (c *Console) SetWidth(width int) {
	if width > 0 {
		c.width = width
	}
}

func (c *Console) Out() io.Writer {
	return c.out
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Progress prints a "[+]" step line.
func (c *Console) Progress(format string, a ...any) {
	c.green.Fprintf(c.out, "[+] "+format+"\n", a...)
}

// Success prints a "[✓]" line.
func (c *Console) Success(format string, a ...any) {
	c.green.Fprintf(c.out, "[✓] "+format+"\n", a...)
}

// Notice prints a "[*]" line.
func (c *Console) Notice(format string, a ...any) {
	c.yellow.Fprintf(c.out, "[*] "+format+"\n", a...)
}

// Failure prints a "[!]" line.
func (c *Console) Failure(format string, a ...any) {
	c.red.Fprintf(c.out, "[!] "+format+"\n", a...)
}

// Denied prints a "[✗]" line.
func (c *Console) Denied(format string, a ...any) {
	c.red.Fprintf(c.out, "[✗] "+format+"\n", a...)
}

// Headline prints a bold red line with no prefix.
func (c *Console) Headline(format string, a ...any) {
	c.red.Fprintf(c.out, format+"\n", a...)
}

// Highlight returns s in the accent color.
func (c *Console) Highlight(s string) string {
	return c.cyan.Sprint(s)
}

// Banner prints each line centered in green.
func (c *Console) Banner(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(c.out, Center(c.green.Sprint(line), c.width))
	}
}

// Prompt writes label and returns the next input line without its line
// ending. At end of input it returns the partial line and io.EOF.
func (c *Console) Prompt(label string) (string, error) {
	c.red.Fprintf(c.out, "[?] %s", label)
	line, err := c.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil {
		if line != "" && err == io.EOF {
			return line, nil
		}
		return line, err
	}
	return line, nil
}

// VisibleLength is the rune count of s without ANSI color sequences.
func VisibleLength(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}

// Center pads line so its visible text sits in the middle of width columns.
// Plain lines wider than width are trimmed evenly from both ends; lines
// carrying escape codes are left untrimmed so no sequence is cut in half.
func Center(line string, width int) string {
	visible := VisibleLength(line)
	if visible > width {
		if line != ansiPattern.ReplaceAllString(line, "") {
			return line
		}
		runes := []rune(line)
		excess := visible - width
		start := excess / 2
		end := len(runes) - (excess - start)
		return string(runes[start:end])
	}
	return strings.Repeat(" ", (width-visible)/2) + line
}

func terminalWidth() int {
	if v, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && v > 0 {
		return v
	}
	return defaultWidth
}
