package components

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

const bannerArt = ` ███╗   ███╗ █████╗ ████████╗██╗  ██╗ █████╗ ██╗  ██╗██╗   ██╗
 ████╗ ████║██╔══██╗╚══██╔══╝██║  ██║██╔══██╗╚██╗██╔╝╚██╗ ██╔╝
 ██╔████╔██║███████║   ██║   ███████║███████║ ╚███╔╝  ╚████╔╝
 ██║╚██╔╝██║██╔══██║   ██║   ██╔══██║██╔══██║ ██╔██╗   ╚██╔╝
 ██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║██║  ██║██╔╝ ██╗   ██║
 ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝`

const bannerCompact = "M · A · T · H · A · X · Y"

// BannerMinWidth is the narrowest width that fits the block-letter banner.
const BannerMinWidth = 64

// Banner renders the MATHAXY title in fg, falling back to spaced capitals
// on narrow terminals.
func Banner(width int, fg color.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Bold(true)

	if width < BannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
