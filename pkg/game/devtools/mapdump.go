// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mapgen/pkg/engine/world"
	"mapgen/pkg/game/generator"
)

const mapDumpFilename = "map.txt"

// cellSymbol returns the single-character symbol for a cell. When
// revealSecrets is set, walled-over doors show as 'S'.
func cellSymbol(f *generator.Floor, x, y int, revealSecrets bool) rune {
	if revealSecrets && f.IsSecretDoor(x, y) {
		return 'S'
	}
	return f.Tile(x, y).Glyph()
}

// writeMapGrid writes the floor one row per line
func writeMapGrid(w io.Writer, f *generator.Floor, revealSecrets bool) {
	for y := 0; y < f.Height(); y++ {
		row := make([]rune, f.Width())
		for x := range row {
			row[x] = cellSymbol(f, x, y, revealSecrets)
		}
		fmt.Fprintln(w, string(row))
	}
}

// DumpFloor writes a full debug dump: metadata, legend, the map as seen,
// the map with secrets revealed, and room/corridor/secret door lists.
// Format is human- and LLM-readable (sections, key: value, consistent structure).
func DumpFloor(w io.Writer, f *generator.Floor) error {
	bw := bufio.NewWriter(w)
	p := f.Parameters()
	up, down := f.Stairs()

	// --- Metadata ---
	fmt.Fprintln(bw, "=== MAP DUMP DEBUG (rooms, corridors, obfuscation) ===")
	fmt.Fprintln(bw, "")
	fmt.Fprintln(bw, "--- Metadata ---")
	fmt.Fprintf(bw, "seed: %d\n", f.Seed())
	fmt.Fprintf(bw, "map_width: %d\n", f.Width())
	fmt.Fprintf(bw, "map_height: %d\n", f.Height())
	fmt.Fprintf(bw, "coordinate_system: x,y (0-based, x=horizontal, y=vertical)\n")
	fmt.Fprintf(bw, "grid_size: %d\n", p.GridSize)
	fmt.Fprintf(bw, "max_rooms: %d\n", p.MaxRooms)
	fmt.Fprintf(bw, "room_size: %d..%d\n", p.MinRoomSize, p.MaxRoomSize)
	fmt.Fprintf(bw, "min_room_distance: %d\n", p.MinRoomDistance)
	fmt.Fprintf(bw, "hidden_room_percent: %d\n", p.HiddenRoomPercent)
	fmt.Fprintf(bw, "niche_percent: %d\n", p.NichePercent)
	fmt.Fprintf(bw, "deception_percent: %d\n", p.DeceptionPercent)
	fmt.Fprintf(bw, "room_count: %d\n", f.RoomCount())
	fmt.Fprintf(bw, "up_stairs: %d,%d\n", up.X, up.Y)
	fmt.Fprintf(bw, "down_stairs: %d,%d\n", down.X, down.Y)
	for _, t := range world.AllTiles() {
		fmt.Fprintf(bw, "tiles_%s: %d\n", t, f.Count(t))
	}
	fmt.Fprintln(bw, "")

	// --- Legend ---
	fmt.Fprintln(bw, "--- Legend (cell symbols) ---")
	fmt.Fprintln(bw, "' ' = empty  # = wall  . = floor  + = door  < = up stairs  > = down stairs  S = secret door (revealed map only)")
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "--- Map (as generated; secret doors look like walls) ---")
	writeMapGrid(bw, f, false)
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "--- Map (secrets revealed) ---")
	writeMapGrid(bw, f, true)
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "Rooms:")
	for i, r := range f.Rooms() {
		c := r.Center()
		fmt.Fprintf(bw, "  id: %d x: %d y: %d w: %d h: %d center: %d,%d priority: %d connections: %d connected: %v hidden: %v\n",
			i, r.X, r.Y, r.W, r.H, c.X, c.Y, r.Priority, r.Connections, r.Connected, r.Hidden)
	}
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "Corridors:")
	for i, c := range f.Corridors() {
		if len(c.Path) == 0 {
			continue
		}
		start, end := c.Path[0], c.Path[len(c.Path)-1]
		fmt.Fprintf(bw, "  id: %d kind: %s from_room: %d to_room: %d cells: %d start: %d,%d end: %d,%d\n",
			i, c.Kind, c.From, c.To, len(c.Path), start.X, start.Y, end.X, end.Y)
	}
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "Secret doors:")
	secrets := f.SecretDoors()
	if len(secrets) == 0 {
		fmt.Fprintln(bw, "  (none)")
	}
	for _, s := range secrets {
		fmt.Fprintf(bw, "  x: %d y: %d\n", s.X, s.Y)
	}
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "=== END MAP DUMP ===")
	return bw.Flush()
}

// DumpFloorToFile writes DumpFloor output to path, or map.txt when path is
// empty, and returns the absolute path written
func DumpFloorToFile(f *generator.Floor, path string) (string, error) {
	if f == nil {
		return "", fmt.Errorf("no floor")
	}
	if path == "" {
		path = mapDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	out, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := DumpFloor(out, f); err != nil {
		return absPath, err
	}
	if err := out.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
