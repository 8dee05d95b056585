package renderer

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"mapgen/pkg/engine/input"
	"mapgen/pkg/engine/world"
	"mapgen/pkg/game/generator"
	"mapgen/pkg/game/state"
)

// Icons used when secrets are revealed or a cell is off the floor
const (
	IconSecret = 'S'
	IconVoid   = ' '
)

var (
	ColorWall        color.Style
	ColorFloor       color.Style
	ColorCorridor    color.Style
	ColorDoor        color.Style
	ColorSecret      color.Style
	ColorUpStairs    color.Style
	ColorDownStairs  color.Style
	ColorAction      color.Style
	ColorActionShort color.Style
	ColorDenied      color.Style
	ColorSubtle      color.Style
	ColorHeader      color.Style

	regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:?.=+-]+)}`)

	// dynamicGet is used for runtime translation key lookups.
	dynamicGet = gotext.Get
)

func init() {
	InitColors()
}

// InitColors initializes the color styles
func InitColors() {
	ColorWall = color.Style{color.FgGray}
	ColorFloor = color.Style{color.FgWhite}
	ColorCorridor = color.Style{color.FgBlue}
	ColorDoor = color.Style{color.FgGreen, color.OpBold}
	ColorSecret = color.Style{color.FgYellow, color.OpBold}
	ColorUpStairs = color.Style{color.FgCyan, color.OpBold}
	ColorDownStairs = color.Style{color.FgRed, color.OpBold}
	ColorAction = color.Style{color.FgMagenta}
	ColorActionShort = color.Style{color.FgMagenta, color.OpBold}
	ColorDenied = color.Style{color.FgRed, color.OpBold}
	ColorSubtle = color.Style{color.FgGray, color.OpBold}
	ColorHeader = color.Style{color.FgLightMagenta, color.OpBold}
}

// ColorFor returns the gookit style of a text style
func ColorFor(style TextStyle) color.Style {
	switch style {
	case StyleWall:
		return ColorWall
	case StyleFloor:
		return ColorFloor
	case StyleCorridor:
		return ColorCorridor
	case StyleDoor:
		return ColorDoor
	case StyleSecret:
		return ColorSecret
	case StyleUpStairs:
		return ColorUpStairs
	case StyleDownStairs:
		return ColorDownStairs
	case StyleAction:
		return ColorAction
	case StyleActionShort:
		return ColorActionShort
	case StyleDenied:
		return ColorDenied
	case StyleSubtle:
		return ColorSubtle
	case StyleHeader:
		return ColorHeader
	default:
		return color.Style{}
	}
}

// FormatString formats a string with special markup:
// GT{KEY} translates, ACTION{key} highlights a key, DENIED{text} marks an error.
func FormatString(msg string, a ...any) string {
	ret := msg
	if len(a) > 0 {
		ret = fmt.Sprintf(msg, a...)
	}

	matches := regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ACTION":
			val = ColorActionShort.Sprint(operand[0:1]) + ColorAction.Sprint(operand[1:])
		case "DENIED":
			val = ColorDenied.Sprint(operand)
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// PlainString is FormatString without colour codes, for backends that
// style cells themselves
func PlainString(msg string, a ...any) string {
	return color.ClearCode(FormatString(msg, a...))
}

// Classify returns the glyph and style used to draw cell (x, y) of f.
// Secret doors show as walls unless revealSecrets is set.
func Classify(f *generator.Floor, x, y int, revealSecrets bool) (rune, TextStyle) {
	if f == nil || !f.InBounds(x, y) {
		return IconVoid, StyleVoid
	}
	if revealSecrets && f.IsSecretDoor(x, y) {
		return IconSecret, StyleSecret
	}
	t := f.Tile(x, y)
	switch t {
	case world.Wall:
		return t.Glyph(), StyleWall
	case world.Floor:
		if f.RoomAt(x, y) < 0 {
			return t.Glyph(), StyleCorridor
		}
		return t.Glyph(), StyleFloor
	case world.Door:
		return t.Glyph(), StyleDoor
	case world.UpStairs:
		return t.Glyph(), StyleUpStairs
	case world.DownStairs:
		return t.Glyph(), StyleDownStairs
	default:
		return IconVoid, StyleVoid
	}
}

// LegendEntry pairs a glyph with its translated description
type LegendEntry struct {
	Glyph rune
	Style TextStyle
	Label string
}

// Legend lists every glyph a viewer can draw
func Legend() []LegendEntry {
	return []LegendEntry{
		{world.Wall.Glyph(), StyleWall, gotext.Get("LEGEND_WALL")},
		{world.Floor.Glyph(), StyleFloor, gotext.Get("LEGEND_FLOOR")},
		{world.Floor.Glyph(), StyleCorridor, gotext.Get("LEGEND_CORRIDOR")},
		{world.Door.Glyph(), StyleDoor, gotext.Get("LEGEND_DOOR")},
		{IconSecret, StyleSecret, gotext.Get("LEGEND_SECRET")},
		{world.UpStairs.Glyph(), StyleUpStairs, gotext.Get("LEGEND_UP")},
		{world.DownStairs.Glyph(), StyleDownStairs, gotext.Get("LEGEND_DOWN")},
	}
}

// StatusLine summarises the floor shown by the session
func StatusLine(s *state.Session) string {
	f := s.Floor()
	if f == nil {
		return gotext.Get("NO_FLOOR")
	}
	secrets := gotext.Get("STATUS_OFF")
	if s.RevealSecrets {
		secrets = gotext.Get("STATUS_ON")
	}
	return fmt.Sprintf(gotext.Get("STATUS_LINE"), f.Seed(), f.Width(), f.Height(), f.RoomCount(), len(f.HiddenRooms()), secrets)
}

// HelpLines lists the current key bindings, one action per line
func HelpLines() []string {
	byAction := input.GetBindingsByAction()
	lines := make([]string, 0, len(byAction))
	for a := input.ActionPanNorth; a <= input.ActionZoomOut; a++ {
		codes, ok := byAction[a]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-15s %s", input.ActionName(a), strings.Join(codes, " ")))
	}
	return lines
}

// PrintMessagesPane renders the messages log pane
func PrintMessagesPane(w io.Writer, width int, messages []string) {
	label := gotext.Get("MESSAGES_LABEL")
	labelLen := len([]rune(label))
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := width - sideLen - labelLen
	if rightLen < 1 {
		rightLen = 1
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, ColorSubtle.Sprint(strings.Repeat("─", sideLen)+label+strings.Repeat("─", rightLen)))

	if len(messages) == 0 {
		fmt.Fprintln(w, ColorSubtle.Sprint("  "+gotext.Get("NO_MESSAGES")))
	} else {
		for _, msg := range messages {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}

	fmt.Fprintln(w, ColorSubtle.Sprint(strings.Repeat("─", max(width, 1))))
}
