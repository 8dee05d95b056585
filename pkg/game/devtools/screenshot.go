package devtools

import (
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"mapgen/pkg/engine/world"
	"mapgen/pkg/game/generator"
)

// ScreenshotFilename returns a timestamped default file name
func ScreenshotFilename() string {
	return fmt.Sprintf("screenshot-%s.html", time.Now().Format("20060102-150405"))
}

// SaveScreenshotHTML renders the whole floor as an HTML page and writes it to
// path (a timestamped name when empty). Secret doors are highlighted when
// revealSecrets is set; messages are appended below the map.
func SaveScreenshotHTML(f *generator.Floor, path string, revealSecrets bool, messages []string) (string, error) {
	if f == nil {
		return "", fmt.Errorf("no floor")
	}
	if path == "" {
		path = ScreenshotFilename()
	}
	if err := os.WriteFile(path, []byte(RenderHTML(f, revealSecrets, messages)), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// RenderHTML returns the floor as a standalone HTML page
func RenderHTML(f *generator.Floor, revealSecrets bool, messages []string) string {
	var page strings.Builder

	page.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Dungeon Map - Screenshot</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .meta {
            color: #888;
            margin-bottom: 20px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.0;
            font-size: 12px;
        }
        .wall { color: #666; }
        .floor { color: #888; }
        .corridor { color: #555; }
        .door { color: #00aa00; font-weight: bold; }
        .secret { color: #ffff00; font-weight: bold; }
        .up { color: #00ffff; font-weight: bold; }
        .down { color: #ff4444; font-weight: bold; }
        .void { color: #1a1a2e; }
        .messages {
            margin-top: 20px;
            border-top: 1px solid #333;
            padding-top: 10px;
        }
        .message { color: #ccc; margin: 5px 0; }
    </style>
</head>
<body>
`)

	p := f.Parameters()
	page.WriteString(fmt.Sprintf(`    <div class="header">Seed %d</div>`+"\n", f.Seed()))
	page.WriteString(fmt.Sprintf(`    <div class="meta">%dx%d, %d rooms, %d hidden, hidden/niche/deception %d%%/%d%%/%d%%</div>`+"\n",
		f.Width(), f.Height(), f.RoomCount(), len(f.HiddenRooms()), p.HiddenRoomPercent, p.NichePercent, p.DeceptionPercent))

	page.WriteString(`    <div class="map-container">` + "\n")
	for y := 0; y < f.Height(); y++ {
		page.WriteString(`        <div class="map-row">`)
		for x := 0; x < f.Width(); x++ {
			icon, class := cellHTMLInfo(f, x, y, revealSecrets)
			page.WriteString(fmt.Sprintf(`<span class="%s">%s</span>`, class, icon))
		}
		page.WriteString("</div>\n")
	}
	page.WriteString(`    </div>` + "\n")

	if len(messages) > 0 {
		page.WriteString(`    <div class="messages">` + "\n")
		for _, msg := range messages {
			page.WriteString(fmt.Sprintf(`        <div class="message">%s</div>`+"\n", html.EscapeString(stripANSI(msg))))
		}
		page.WriteString(`    </div>` + "\n")
	}

	page.WriteString(`</body>
</html>
`)
	return page.String()
}

// cellHTMLInfo returns the icon and CSS class for a cell
func cellHTMLInfo(f *generator.Floor, x, y int, revealSecrets bool) (string, string) {
	if revealSecrets && f.IsSecretDoor(x, y) {
		return "▣", "secret"
	}
	switch f.Tile(x, y) {
	case world.Wall:
		return "▒", "wall"
	case world.Floor:
		if f.RoomAt(x, y) < 0 {
			return "░", "corridor"
		}
		return "·", "floor"
	case world.Door:
		return "□", "door"
	case world.UpStairs:
		return "▲", "up"
	case world.DownStairs:
		return "▼", "down"
	default:
		return " ", "void"
	}
}

// stripANSI removes ANSI escape codes from a string
func stripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
