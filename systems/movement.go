package systems

import (
	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/shared/gamemath"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateMovement turns intent into velocity and moves fighter bodies through
// the arena space, sliding along walls on contact.
func UpdateMovement(ecs *ecs.ECS) {
	dt := cfg.Sim.StepSeconds()

	tags.Fighter.Each(ecs.World, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)

		if !components.Alive(e) {
			physics.SpeedX = 0
			physics.SpeedY = 0
			return
		}

		intent := components.Intent.Get(e)
		dirX, dirY := gamemath.Normalize(intent.MoveX, intent.MoveY)
		physics.SpeedX = dirX * physics.MoveSpeed
		physics.SpeedY = dirY * physics.MoveSpeed

		obj := components.Object.Get(e)
		moveObject(obj.Object, physics.SpeedX*dt, physics.SpeedY*dt)
		obj.Update()
	})
}

// moveObject advances the body by (dx, dy), clipping each axis against walls.
func moveObject(object *resolv.Object, dx, dy float64) {
	if dx != 0 {
		if check := object.Check(dx, 0, tags.ResolvWall); check != nil {
			if walls := check.ObjectsByTags(tags.ResolvWall); len(walls) > 0 {
				dx = check.ContactWithObject(walls[0]).X()
			}
		}
		object.X += dx
	}

	if dy != 0 {
		if check := object.Check(0, dy, tags.ResolvWall); check != nil {
			if walls := check.ObjectsByTags(tags.ResolvWall); len(walls) > 0 {
				dy = check.ContactWithObject(walls[0]).Y()
			}
		}
		object.Y += dy
	}
}
