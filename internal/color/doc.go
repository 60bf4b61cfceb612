// Package color holds the terminal styles of the ddsmatrix console output.
//
// Styles are built on lipgloss, which degrades to plain text when the output
// is not a terminal or NO_COLOR is set. Colors adapt to dark and light
// backgrounds; Initialize forces one of the two.
//
// Usage:
//
//	fmt.Println(color.Status("PASS"))
package color
