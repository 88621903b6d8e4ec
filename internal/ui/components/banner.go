package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordbuddy/internal/ui/theme"
)

const bannerArt = `██╗    ██╗ ██████╗ ██████╗ ██████╗
██║    ██║██╔═══██╗██╔══██╗██╔══██╗
██║ █╗ ██║██║   ██║██████╔╝██║  ██║
██║███╗██║██║   ██║██╔══██╗██║  ██║
╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝
 ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝
██████╗ ██╗   ██╗██████╗ ██████╗ ██╗   ██╗
██╔══██╗██║   ██║██╔══██╗██╔══██╗╚██╗ ██╔╝
██████╔╝██║   ██║██║  ██║██║  ██║ ╚████╔╝
██╔══██╗██║   ██║██║  ██║██║  ██║  ╚██╔╝
██████╔╝╚██████╔╝██████╔╝██████╔╝   ██║
╚═════╝  ╚═════╝ ╚═════╝ ╚═════╝    ╚═╝`

const bannerCompact = "W O R D · B U D D Y"

// Banner returns the title art in the primary color, or a one-line title
// when compact is set or width is below the art width.
func Banner(width int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if compact || width < lipgloss.Width(bannerArt) {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
