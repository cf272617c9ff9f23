package app

import "github.com/zjrosen/adaptive/internal/layout"

// arrangement places the main and sidebar views inside the body area.
type arrangement struct {
	sideBySide bool
	main       layout.Dim
	sidebar    layout.Dim
}

// arrange honors the sidebar's size request first. A sidebar asking for less
// than the full width sits to the right of main, otherwise it folds below.
func arrange(width, height int, mainHint, sideHint layout.Size) arrangement {
	if sideHint.Width.Unit != layout.UnitFill {
		sw := sideHint.Width.Resolve(width, width/3)
		mw := mainHint.Width.Resolve(width-sw, width-sw)
		return arrangement{
			sideBySide: true,
			main:       layout.Dim{Width: mw, Height: mainHint.Height.Resolve(height, height)},
			sidebar:    layout.Dim{Width: sw, Height: sideHint.Height.Resolve(height, height)},
		}
	}

	sh := sideHint.Height.Resolve(height, height/4)
	mh := mainHint.Height.Resolve(height-sh, height-sh)
	return arrangement{
		main:    layout.Dim{Width: mainHint.Width.Resolve(width, width), Height: mh},
		sidebar: layout.Dim{Width: sideHint.Width.Resolve(width, width), Height: sh},
	}
}
