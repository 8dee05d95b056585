package renderer

import (
	"fmt"

	"github.com/leonelquinteros/gotext"

	"mapgen/pkg/engine/input"
	"mapgen/pkg/game/devtools"
	"mapgen/pkg/game/export"
	"mapgen/pkg/game/state"
)

// ExportFilename is the default binary export name for a seed
func ExportFilename(seed uint16) string {
	return fmt.Sprintf("floor-%d.bin", seed)
}

// HandleIntent applies an intent to the session, including the actions that
// write files (dump, screenshot, export) and help. Results are reported
// through the session message log.
func HandleIntent(s *state.Session, intent input.Intent) {
	if s.Apply(intent) {
		return
	}

	f := s.Floor()
	switch intent.Action {
	case input.ActionHelp:
		s.ShowHelp = !s.ShowHelp
	case input.ActionDump:
		if f == nil {
			return
		}
		path, err := devtools.DumpFloorToFile(f, "")
		report(s, "MSG_DUMP_SAVED", path, err)
	case input.ActionScreenshot:
		if f == nil {
			return
		}
		path, err := devtools.SaveScreenshotHTML(f, "", s.RevealSecrets, s.Messages)
		report(s, "MSG_SCREENSHOT_SAVED", path, err)
	case input.ActionExport:
		if f == nil {
			return
		}
		path := ExportFilename(f.Seed())
		report(s, "MSG_EXPORT_SAVED", path, export.SaveBinary(path, f))
	}
}

func report(s *state.Session, key, path string, err error) {
	if err != nil {
		s.AddMessage(fmt.Sprintf(gotext.Get("MSG_WRITE_FAILED"), err))
		return
	}
	s.AddMessage(fmt.Sprintf(dynamicGet(key), path))
}

// Run drives a blocking renderer until the session quits
func Run(r Renderer, s *state.Session) {
	for !s.Quit {
		r.RenderFrame(s)
		HandleIntent(s, r.GetInput())
	}
}
