// Package fancy renders gazetteer data for the terminal.
package fancy

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/pcvolkmer/ags-example/app/models"
)

var (
	ColorBlue     = lipgloss.Color("39")
	ColorGreen    = lipgloss.Color("82")
	ColorYellow   = lipgloss.Color("228")
	ColorCyan     = lipgloss.Color("45")
	ColorRed      = lipgloss.Color("196")
	ColorGray     = lipgloss.Color("250")
	ColorWhite    = lipgloss.Color("15")
	ColorDarkGray = lipgloss.Color("240")
)

var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	CodeStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	ScoreStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	DeprecatedStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Strikethrough(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)
)

// Tree returns a new tree with the common styling applied.
func Tree() *tree.Tree {
	t := tree.New()
	t.EnumeratorStyle(BranchStyle)
	t.Enumerator(tree.RoundedEnumerator)
	return t
}

// BranchNode creates a styled section header node.
func BranchNode(title string, count string) *tree.Tree {
	return tree.New().Root(
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			HeaderStyle.Render(title),
			" ",
			InfoStyle.Render(count),
		),
	)
}

// ZipTree renders ambiguous postal codes by bucket, each with the districts
// it is assigned to. districtsOf may be nil.
func ZipTree(title string, groups models.ZipGroups, districtsOf func(zip string) []string) *tree.Tree {
	root := Tree().Root(RootStyle.Render(title))
	for _, label := range groups.Labels() {
		zips := groups[label]
		branch := BranchNode(label, fmt.Sprintf("(%d)", len(zips)))
		for _, zip := range zips {
			if districtsOf == nil {
				branch.Child(CodeStyle.Render(zip))
				continue
			}
			node := tree.New().Root(CodeStyle.Render(zip))
			for _, d := range districtsOf(zip) {
				node.Child(d)
			}
			branch.Child(node)
		}
		root.Child(branch)
	}
	return root
}

// EntryLine renders one search result on a single line.
func EntryLine(e models.Entry) string {
	line := fmt.Sprintf("%s  %s  %s", CodeStyle.Render(e.MunicipalityCode), e.PostalCode, e.PlaceName)
	if e.DistrictName != "" {
		line += InfoStyle.Render(" (" + e.DistrictName + ")")
	}
	if e.Deprecated {
		line = DeprecatedStyle.Render(line)
	}
	line += " " + ScoreStyle.Render(fmt.Sprintf("%d", e.Similarity))
	if e.ZipCollision {
		line += " " + WarnStyle.Render("!")
	}
	return line
}

// TruncateString truncates a string if it exceeds maxLength runes.
func TruncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength || maxLength < 3 {
		return s
	}
	return string(r[:maxLength-3]) + "..."
}
