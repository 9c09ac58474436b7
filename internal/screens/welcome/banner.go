package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗ █████╗ ███╗   ██╗ █████╗ ███████╗
 ██║ ██╔╝██╔══██╗████╗  ██║██╔══██╗╚══███╔╝
 █████╔╝ ███████║██╔██╗ ██║███████║  ███╔╝
 ██╔═██╗ ██╔══██║██║╚██╗██║██╔══██║ ███╔╝
 ██║  ██╗██║  ██║██║ ╚████║██║  ██║███████╗
 ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚══════╝`

const bannerCompact = "K A N A Z"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 46

// RenderBanner returns the KANAZ banner styled in the primary color.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
