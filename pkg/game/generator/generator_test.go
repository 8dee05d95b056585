package generator

import (
	"bytes"
	"errors"
	"testing"

	"mapgen/pkg/engine/world"
)

// generate runs one generation with a fixed seed and fails the test on error
func generate(t *testing.T, seed uint16, cfg Config) *Floor {
	t.Helper()
	g := New()
	if err := g.SetParameters(cfg); err != nil {
		t.Fatalf("SetParameters(%+v) = %v", cfg, err)
	}
	g.Init(seed)
	if err := g.GenerateDungeon(); err != nil {
		t.Fatalf("GenerateDungeon() seed %d cfg %+v = %v", seed, cfg, err)
	}
	return g.Floor()
}

func TestGenerateDungeon_SameSeedIsIdentical(t *testing.T) {
	a := generate(t, 42, DefaultConfig())
	b := generate(t, 42, DefaultConfig())
	if !bytes.Equal(a.Packed(), b.Packed()) {
		t.Error("seed 42 produced two different tile buffers")
	}
	if a.RoomCount() != b.RoomCount() {
		t.Errorf("RoomCount() = %d and %d for the same seed", a.RoomCount(), b.RoomCount())
	}
}

func TestGenerateDungeon_RegenerateWithFixedSeed(t *testing.T) {
	g := New()
	g.Init(42)
	if err := g.GenerateDungeon(); err != nil {
		t.Fatal(err)
	}
	first := g.Floor().Packed()
	if err := g.GenerateDungeon(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, g.Floor().Packed()) {
		t.Error("regenerating with a fixed seed changed the map")
	}
}

func TestGenerateDungeon_DifferentSeedsDiffer(t *testing.T) {
	a := generate(t, 42, DefaultConfig())
	b := generate(t, 43, DefaultConfig())
	if bytes.Equal(a.Packed(), b.Packed()) {
		t.Error("seeds 42 and 43 produced identical maps")
	}
}

func TestGenerateDungeon_InvariantsHoldAcrossPresets(t *testing.T) {
	for _, size := range []MapSize{Small, Medium, Large} {
		for _, level := range []Level{Low, Med, High} {
			cfg := Config{MapSize: size, HiddenRooms: level, Niches: level, Deception: level}
			for seed := uint16(1); seed <= 12; seed++ {
				f := generate(t, seed*977, cfg)
				if err := f.Validate(); err != nil {
					t.Errorf("size %v level %v seed %d:\n%v", size, level, seed*977, err)
				}
			}
		}
	}
}

func TestGenerateDungeon_SmallPresetScenario(t *testing.T) {
	f := generate(t, 1, Config{MapSize: Small})
	if f.Width() != 40 || f.Height() != 40 {
		t.Fatalf("map = %dx%d, want 40x40", f.Width(), f.Height())
	}
	n := f.RoomCount()
	if n < 2 || n > 9 {
		t.Errorf("RoomCount() = %d, want 2..9", n)
	}
	for i, r := range f.Rooms() {
		if r.W < 4 || r.W > 6 || r.H < 4 || r.H > 6 {
			t.Errorf("room %d is %dx%d, want sides in 4..6", i, r.W, r.H)
		}
	}
	if got := f.CorridorCount(CorridorMST) + f.CorridorCount(CorridorEmergency); got < n-1 {
		t.Errorf("connecting corridors = %d, want at least %d", got, n-1)
	}
	if err := f.Validate(); err != nil {
		t.Error(err)
	}
}

func TestGenerateDungeon_SpanningTreeHasOneCorridorPerNewRoom(t *testing.T) {
	for seed := uint16(10); seed < 20; seed++ {
		f := generate(t, seed, DefaultConfig())
		if got, want := f.CorridorCount(CorridorMST), f.RoomCount()-1; got != want {
			t.Errorf("seed %d: MST corridors = %d, want %d", seed, got, want)
		}
		if got := f.CorridorCount(CorridorEmergency); got != 0 {
			t.Errorf("seed %d: emergency corridors = %d on a medium map, want 0", seed, got)
		}
		if got, want := f.CorridorCount(CorridorDeception), f.Parameters().DeceptionCount(f.RoomCount()); got > want {
			t.Errorf("seed %d: deception corridors = %d, want at most %d", seed, got, want)
		}
	}
}

func TestGenerateDungeon_EveryRoomConnected(t *testing.T) {
	f := generate(t, 7, Config{MapSize: Large, HiddenRooms: High})
	for i, r := range f.Rooms() {
		if !r.Connected {
			t.Errorf("room %d not connected", i)
		}
	}
	if !f.skeletonIntact() {
		t.Error("spanning tree not reachable from the start room")
	}
}

func TestGenerateDungeon_TinyMapFails(t *testing.T) {
	g := New()
	p := DefaultConfig().Parameters()
	p.Width, p.Height = 8, 8
	if err := g.SetMapParameters(p); err != nil {
		t.Fatalf("SetMapParameters(8x8) = %v", err)
	}
	g.Init(1)
	err := g.GenerateDungeon()
	if !errors.Is(err, ErrPlacementShortfall) {
		t.Fatalf("GenerateDungeon() on 8x8 = %v, want ErrPlacementShortfall", err)
	}
	if f := g.Floor(); f == nil || f.RoomCount() != 0 {
		t.Error("Floor() after a failed generation should be empty")
	}
}

func TestGenerateDungeon_FailureClearsPreviousFloor(t *testing.T) {
	g := New()
	g.Init(5)
	if err := g.GenerateDungeon(); err != nil {
		t.Fatal(err)
	}
	prev := g.Floor()

	p := g.Parameters()
	p.Width, p.Height = 8, 8
	if err := g.SetMapParameters(p); err != nil {
		t.Fatal(err)
	}
	if err := g.GenerateDungeon(); err == nil {
		t.Fatal("GenerateDungeon() on 8x8 succeeded")
	}
	f := g.Floor()
	if f == prev {
		t.Fatal("failed generation kept the previous floor")
	}
	if f.RoomCount() != 0 || len(f.Corridors()) != 0 || len(f.SecretDoors()) != 0 {
		t.Errorf("floor after failure has %d rooms, %d corridors, %d secret doors, want none",
			f.RoomCount(), len(f.Corridors()), len(f.SecretDoors()))
	}
	if f.Width() != 8 || f.Height() != 8 {
		t.Errorf("floor after failure is %dx%d, want 8x8", f.Width(), f.Height())
	}
	if n := f.Count(world.Empty); n != 64 {
		t.Errorf("Count(Empty) = %d, want 64", n)
	}
}

func TestGenerateDungeon_EmergencyFallback(t *testing.T) {
	g := New()
	p := DefaultConfig().Parameters()
	p.MaxPathLength = 2
	if err := g.SetMapParameters(p); err != nil {
		t.Fatal(err)
	}
	g.Init(42)
	if err := g.GenerateDungeon(); err != nil {
		t.Fatalf("GenerateDungeon() with MaxPathLength 2 = %v", err)
	}
	f := g.Floor()
	if got := f.CorridorCount(CorridorMST); got != 0 {
		t.Errorf("MST corridors = %d, want 0 when every route is too long", got)
	}
	if got := f.CorridorCount(CorridorEmergency); got == 0 {
		t.Error("no emergency corridors carved")
	}
	if err := f.Validate(); err != nil {
		t.Error(err)
	}
}

func TestGenerateDungeon_StairsFollowPriority(t *testing.T) {
	f := generate(t, 99, DefaultConfig())
	n := f.RoomCount()
	up, down := f.Stairs()
	if f.Tile(up.X, up.Y) != world.UpStairs {
		t.Errorf("Tile(up %v) = %v, want UpStairs", up, f.Tile(up.X, up.Y))
	}
	if f.Tile(down.X, down.Y) != world.DownStairs {
		t.Errorf("Tile(down %v) = %v, want DownStairs", down, f.Tile(down.X, down.Y))
	}
	if !f.PointInRoom(up.X, up.Y, 0) {
		t.Errorf("up stairs %v not in start room", up)
	}
	if !f.PointInRoom(down.X, down.Y, n-1) {
		t.Errorf("down stairs %v not in end room %d", down, n-1)
	}
	if got := f.Room(0).Priority; got != PriorityStart {
		t.Errorf("start room priority = %d, want %d", got, PriorityStart)
	}
	if got := f.Room(n - 1).Priority; got != PriorityEnd {
		t.Errorf("end room priority = %d, want %d", got, PriorityEnd)
	}
	for i := 1; i < n-1; i++ {
		if p := f.Room(i).Priority; p < 5 || p > 7 {
			t.Errorf("room %d priority = %d, want 5..7", i, p)
		}
	}
}

func TestGenerateDungeon_HiddenRoomsAcrossSeeds(t *testing.T) {
	cfg := Config{MapSize: Medium, HiddenRooms: High}
	for seed := uint16(1); seed <= 30; seed++ {
		f := generate(t, seed, cfg)
		if len(f.HiddenRooms()) == 0 {
			t.Errorf("seed %d: no hidden rooms at high level", seed)
		}
		if len(f.SecretDoors()) < len(f.HiddenRooms()) {
			t.Errorf("seed %d: %d secret doors for %d hidden rooms", seed, len(f.SecretDoors()), len(f.HiddenRooms()))
		}
		if err := f.Validate(); err != nil {
			t.Errorf("seed %d:\n%v", seed, err)
		}
	}
}

func TestGenerateDungeon_HiddenRoomsAreSealed(t *testing.T) {
	f := generate(t, 1234, Config{MapSize: Large, HiddenRooms: High})
	hidden := f.HiddenRooms()
	if len(hidden) == 0 {
		t.Fatal("no hidden rooms at high level on a large map")
	}
	if want := f.Parameters().HiddenRoomCount(f.RoomCount()); len(hidden) > want {
		t.Errorf("hidden rooms = %d, want at most %d", len(hidden), want)
	}
	last := f.RoomCount() - 1
	for _, id := range hidden {
		if id == 0 || id == last {
			t.Errorf("room %d is hidden but is the start or end room", id)
		}
		r := f.Room(id)
		for _, p := range r.RingCells() {
			if f.Tile(p.X, p.Y) == world.Door {
				t.Errorf("hidden room %d still has a door at %v", id, p)
			}
		}
	}
	for _, p := range f.SecretDoors() {
		if f.Tile(p.X, p.Y) != world.Wall {
			t.Errorf("secret door %v is %v, want Wall", p, f.Tile(p.X, p.Y))
		}
		if !f.IsSecretDoor(p.X, p.Y) {
			t.Errorf("IsSecretDoor(%v) = false", p)
		}
	}
}

func TestGenerateDungeon_DeceptionCorridorsAreDeadEnds(t *testing.T) {
	f := generate(t, 321, Config{MapSize: Large, Deception: High})
	found := 0
	for _, c := range f.Corridors() {
		if c.Kind != CorridorDeception {
			continue
		}
		found++
		if f.Tile(c.Path[0].X, c.Path[0].Y) != world.Door {
			t.Errorf("deception corridor starts at %v, want a door", c.Path[0])
		}
		end := c.Path[len(c.Path)-1]
		open := 0
		for _, n := range end.Neighbors4() {
			if f.Walkable(n.X, n.Y) {
				open++
			}
		}
		if open != 1 {
			t.Errorf("deception corridor end %v has %d open neighbours, want 1", end, open)
		}
	}
	if found == 0 {
		t.Error("no deception corridors at high level on a large map")
	}
}

func TestGenerateDungeon_NichesBorderCorridors(t *testing.T) {
	f := generate(t, 77, Config{MapSize: Large, Niches: High})
	found := 0
	for _, c := range f.Corridors() {
		if c.Kind != CorridorNiche {
			continue
		}
		found++
		if len(c.Path) < 1 || len(c.Path) > 4 {
			t.Errorf("niche has %d cells, want 1..4", len(c.Path))
		}
		for _, p := range c.Path {
			if f.Tile(p.X, p.Y) != world.Floor {
				t.Errorf("niche cell %v is %v, want Floor", p, f.Tile(p.X, p.Y))
			}
		}
	}
	if found == 0 {
		t.Error("no niches at high level on a large map")
	}
}

func TestGenerateDungeon_ReportsEveryPhase(t *testing.T) {
	g := New()
	g.Init(3)
	var phases []Phase
	g.Progress = func(p Progress) { phases = append(phases, p.Phase) }
	if err := g.GenerateDungeon(); err != nil {
		t.Fatal(err)
	}
	want := []Phase{PhaseReset, PhaseRooms, PhaseCorridors, PhaseObfuscation, PhaseStairs, PhaseDone}
	if len(phases) != len(want) {
		t.Fatalf("reported %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d = %v, want %v", i, phases[i], want[i])
		}
	}
}

func TestGenerateWithParams(t *testing.T) {
	g := New()
	g.Init(11)
	if err := g.GenerateWithParams(0, 1, 2, 0); err != nil {
		t.Fatalf("GenerateWithParams(0,1,2,0) = %v", err)
	}
	if w, h := g.MapSize(); w != 40 || h != 40 {
		t.Errorf("MapSize() = %dx%d, want 40x40", w, h)
	}
	if got := g.Config(); got.HiddenRooms != Med || got.Niches != High {
		t.Errorf("Config() = %+v", got)
	}

	for _, bad := range [][4]int{{3, 0, 0, 0}, {0, -1, 0, 0}, {0, 0, 3, 0}, {0, 0, 0, 7}} {
		err := g.GenerateWithParams(bad[0], bad[1], bad[2], bad[3])
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("GenerateWithParams(%v) = %v, want ErrInvalidParameter", bad, err)
		}
	}
}

func TestSeedFlag(t *testing.T) {
	g := New()
	g.Init(500)
	if err := g.GenerateDungeon(); err != nil {
		t.Fatal(err)
	}
	if g.Seed() != 500 || g.Floor().Seed() != 500 {
		t.Errorf("Seed() = %d, Floor().Seed() = %d, want 500", g.Seed(), g.Floor().Seed())
	}

	g.ResetSeedFlag()
	if err := g.GenerateDungeon(); err != nil {
		t.Fatal(err)
	}
	if g.Floor().Seed() != g.Seed() {
		t.Errorf("Floor().Seed() = %d does not match the generator seed %d", g.Floor().Seed(), g.Seed())
	}
}
