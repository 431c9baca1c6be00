package systems

import (
	"testing"

	"github.com/vovakirdan/malformed/internal/components"
	"github.com/vovakirdan/malformed/internal/config"
	"github.com/vovakirdan/malformed/internal/core"
	"github.com/vovakirdan/malformed/internal/ecs"
)

func TestGroundedDetectorIdempotent(t *testing.T) {
	env := newTestEnv(t)
	p := SetupPlayer(env)
	plat := SpawnPlatform(env.World, 1000, core.V2(0, -700), components.Platform{Width: 640})
	roof, _ := RoofY(env.World, plat.ID)
	p.Local.Y = roof + p.Collider.HalfH

	det := NewGroundedDetector(env, ecs.TagGroundChecker, ecs.TagGround)
	sensor, _ := env.groundSensor(p.ID)

	for i := 0; i < 3; i++ {
		det.Run(runningCtx())
		if !sensor.Grounded.Value {
			t.Fatalf("run %d: player resting on a roof should be grounded", i)
		}
	}

	p.Local.Y = roof + 100
	for i := 0; i < 3; i++ {
		det.Run(runningCtx())
		if sensor.Grounded.Value {
			t.Fatalf("run %d: airborne player should not be grounded", i)
		}
	}
}

func TestGroundedDetectorTagSet(t *testing.T) {
	env := newTestEnv(t)
	p := SetupPlayer(env)
	// A platform that is not ground does not count.
	plat := env.World.Spawn(ecs.TagPlatform, core.V2(0, -700))
	plat.Collider = &components.Collider{HalfW: 320, HalfH: 500}
	p.Local.Y = -200 + p.Collider.HalfH

	NewGroundedDetector(env, ecs.TagGroundChecker, ecs.TagGround).Run(runningCtx())
	sensor, _ := env.groundSensor(p.ID)
	if sensor.Grounded.Value {
		t.Error("only entities in the ground set should ground the player")
	}
}

func TestBytesSpawnOncePerPlatform(t *testing.T) {
	env := newTestEnv(t)
	env.Config.Bytes.SpawnRate = 1
	p := SetupPlayer(env)
	p.Locomotion.VelocityX = 0

	wide := SpawnPlatform(env.World, 1000, core.V2(1000, -700), components.Platform{Width: 640})
	narrow := SpawnPlatform(env.World, 1000, core.V2(2000, -700), components.Platform{Width: 128})
	blocked := SetupTerrain(env)

	sys := NewByteSpawner(env)
	for i := 0; i < 5; i++ {
		sys.Run(runningCtx())
	}

	if n := env.World.Count(ecs.TagByte); n != 1 {
		t.Fatalf("expected exactly one byte, got %d", n)
	}
	b, ok := env.World.ChildWith(wide.ID, ecs.TagByte)
	if !ok {
		t.Fatal("byte should belong to the wide platform")
	}
	mid := (640 - env.Config.Bytes.EdgeMargin) / 2
	if b.Local.X <= -mid || b.Local.X >= mid {
		t.Errorf("byte x = %g outside (-%g, %g)", b.Local.X, mid, mid)
	}
	if !wide.Tags.Has(ecs.TagPreventByte) || !narrow.Tags.Has(ecs.TagPreventByte) {
		t.Error("rolled platforms should be marked PreventByte")
	}
	if _, ok := env.World.ChildWith(blocked.ID, ecs.TagByte); ok {
		t.Error("initial platform must never get a byte")
	}
}

func TestBytesNeverSpawnAtMaxSpeed(t *testing.T) {
	env := newTestEnv(t)
	env.Config.Bytes.SpawnRate = 1
	p := SetupPlayer(env)
	p.Locomotion.VelocityX = env.Config.Player.MaxVelocityX
	SpawnPlatform(env.World, 1000, core.V2(1000, -700), components.Platform{Width: 640})

	for i := 0; i < 100; i++ {
		NewByteSpawner(env).Run(runningCtx())
	}
	if n := env.World.Count(ecs.TagByte); n != 0 {
		t.Errorf("spawn chance is zero at the cap, got %d bytes", n)
	}
}

func TestByteFloatBand(t *testing.T) {
	env := newTestEnv(t)
	env.Config.Bytes.SpawnRate = 1
	p := SetupPlayer(env)
	p.Locomotion.VelocityX = 0
	plat := SpawnPlatform(env.World, 1000, core.V2(1000, -700), components.Platform{Width: 640})
	NewByteSpawner(env).Run(runningCtx())

	b, ok := env.World.ChildWith(plat.ID, ecs.TagByte)
	if !ok {
		t.Fatal("no byte spawned")
	}
	bc := env.Config.Bytes
	roof := plat.Collider.HalfH
	step := 2 / bc.FloatSpeed
	hover := NewByteFloat(env)

	sawUp, sawDown := false, false
	for i := 0; i < 2000; i++ {
		before := b.Local.Y
		hover.Run(runningCtx())
		if b.Local.Y > before {
			sawUp = true
		} else {
			sawDown = true
		}
		if b.Local.Y < roof+bc.FloatMin-step || b.Local.Y > roof+bc.FloatMax+step {
			t.Fatalf("tick %d: byte at %g left the band", i, b.Local.Y-roof)
		}
	}
	if !sawUp || !sawDown {
		t.Error("byte should bob in both directions")
	}
}

func TestByteCollect(t *testing.T) {
	env := newTestEnv(t)
	env.Config.Bytes.SpawnRate = 1
	p := SetupPlayer(env)
	p.Locomotion.VelocityX = 0
	p.Resource.Value = 50
	plat := SpawnPlatform(env.World, 1000, core.V2(1000, -700), components.Platform{Width: 640})
	NewByteSpawner(env).Run(runningCtx())

	b, _ := env.World.ChildWith(plat.ID, ecs.TagByte)
	det := NewGroundedDetector(env, ecs.TagByte, ecs.TagPlayer)
	collect := NewByteCollector(env)

	det.Run(runningCtx())
	collect.Run(runningCtx())
	if !env.World.Alive(b.ID) {
		t.Fatal("distant byte should not be collected")
	}

	p.Local = env.World.WorldPosition(b.ID)
	det.Run(runningCtx())
	collect.Run(runningCtx())

	if env.World.Alive(b.ID) {
		t.Error("touched byte should be removed")
	}
	if want := 50 + env.Config.Bytes.Gain; p.Resource.Value != want {
		t.Errorf("resource = %g, expected %g", p.Resource.Value, want)
	}
	if p.Score.Bytes != 1 {
		t.Errorf("byte count = %d, expected 1", p.Score.Bytes)
	}
	if !env.World.Alive(plat.ID) {
		t.Error("collecting a byte must not remove its platform")
	}
}

func TestCabinetDoor(t *testing.T) {
	env := newTestEnv(t)
	SetupEnvironment(env)
	p := SetupPlayer(env)
	door := NewCabinetDoor(env)

	cabinet, ok := env.World.Single(ecs.TagCabinet)
	if !ok {
		t.Fatal("environment setup should spawn one cabinet")
	}
	if env.World.Count(ecs.TagBoard) != 1 || env.World.Count(ecs.TagWall) != 1 {
		t.Error("environment setup should spawn the board and the wall")
	}

	door.Run(runningCtx())
	if cabinet.Sprite.Frame != CabinetOpen {
		t.Error("player at the spawn point stands in the doorway")
	}

	p.Local.X += 500
	door.Run(runningCtx())
	if cabinet.Sprite.Frame != CabinetClosed {
		t.Error("door should close once the player leaves")
	}

	SetupEnvironment(env)
	if env.World.Count(ecs.TagWall) != 1 {
		t.Error("the wall is spawned once")
	}
}

func TestLeftWall(t *testing.T) {
	env := newTestEnv(t)
	SetupEnvironment(env)
	wall, _ := env.World.Single(ecs.TagWall)
	b, _ := env.World.Bounds(wall.ID)

	want := float64(env.Screen.ScreenW) * env.Config.World.ColumnWidth / -2
	if b.Right() != want {
		t.Errorf("wall face at %g, expected %g", b.Right(), want)
	}
	if wall.Tags.Has(ecs.TagScrollable) {
		t.Error("the wall must not scroll")
	}
}

func TestSurvival(t *testing.T) {
	tests := []struct {
		name      string
		kind      config.ResourceKind
		y         float64
		resource  float64
		wantDead  bool
		wantCause string
	}{
		{"alive", config.ResourceStamina, 0, 50, false, ""},
		{"at death line", config.ResourceStamina, -800, 50, true, CauseFell},
		{"just above", config.ResourceStamina, -799.9, 50, false, ""},
		{"stamina empty", config.ResourceStamina, 0, 0, false, ""},
		{"memory empty", config.ResourceMemory, 0, 0, true, CauseMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			config.ApplyVariant(&env.Config, tt.kind)
			p := SetupPlayer(env)
			p.Local.Y = tt.y
			p.Resource.Value = tt.resource

			ctx := NewSurvivalMonitor(env).Run(runningCtx())

			if (ctx.Life == Dead) != tt.wantDead || ctx.Cause != tt.wantCause {
				t.Fatalf("life = %v cause = %q, expected dead=%v cause=%q", ctx.Life, ctx.Cause, tt.wantDead, tt.wantCause)
			}
			if tt.wantDead {
				if env.World.Count(ecs.TagPlayer) != 0 || env.World.Count(ecs.TagGroundChecker) != 0 {
					t.Error("death should despawn the player and its sensor")
				}
			}
		})
	}
}

func TestScoreAccrual(t *testing.T) {
	env := newTestEnv(t)
	p := SetupPlayer(env)
	p.Locomotion.VelocityX = 100
	sys := NewScoreAccrual(env)

	ctx := runningCtx()
	ctx.Dt = 1
	sys.Run(ctx)
	if p.Score.Value != 1 {
		t.Errorf("score = %g, expected 1", p.Score.Value)
	}

	ctx.Movement = Walking
	sys.Run(ctx)
	if p.Score.Value != 1 {
		t.Error("walking should not score")
	}
}
