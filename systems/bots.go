package systems

import (
	"math/rand"

	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/shared/gamemath"
	"github.com/automoto/skirmish/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Random number generator for bot decision making.
// Uses fixed seed for deterministic replay support.
var rng = rand.New(rand.NewSource(42))

// UpdateBots writes intent for bot-controlled fighters: seek the nearest
// living opponent, close to attack range, and swing when inside it.
// Must run BEFORE UpdateMovement and UpdateAttacks so the intent is fresh.
func UpdateBots(ecs *ecs.ECS) {
	components.Bot.Each(ecs.World, func(e *donburi.Entry) {
		if !components.Alive(e) {
			return
		}

		bot := components.Bot.Get(e)
		intent := components.Intent.Get(e)

		if bot.DecisionTimer > 0 {
			bot.DecisionTimer--
		}
		if bot.DecisionTimer == 0 {
			acquireTarget(ecs, e, bot)
			bot.DecisionTimer = cfg.Bot.DecisionTicks + rng.Intn(cfg.Bot.DecisionJitterTicks+1)
		}

		target, ok := validTarget(ecs, bot)
		if !ok {
			intent.MoveX = 0
			intent.MoveY = 0
			return
		}

		obj := components.Object.Get(e)
		targetObj := components.Object.Get(target)
		atk := components.Attack.Get(e)

		dx := targetObj.CenterX() - obj.CenterX()
		dy := targetObj.CenterY() - obj.CenterY()
		dist := gamemath.Distance(obj.CenterX(), obj.CenterY(), targetObj.CenterX(), targetObj.CenterY())

		// Stop a little inside attack range so small target movement does
		// not immediately pull us back out of it.
		if dist > atk.Range*cfg.Bot.ApproachFactor {
			intent.MoveX, intent.MoveY = gamemath.Normalize(dx, dy)
		} else {
			intent.MoveX = 0
			intent.MoveY = 0
		}

		if dist <= atk.Range && atk.Ready() {
			intent.Attack = true
		}
	})
}

// acquireTarget picks the nearest living non-self fighter.
func acquireTarget(ecs *ecs.ECS, botEntry *donburi.Entry, bot *components.BotData) {
	obj := components.Object.Get(botEntry)

	bot.HasTarget = false
	best := -1.0
	tags.Fighter.Each(ecs.World, func(candidate *donburi.Entry) {
		if candidate.Entity() == botEntry.Entity() || !components.Alive(candidate) {
			return
		}
		candidateObj := components.Object.Get(candidate)
		dist := gamemath.Distance(obj.CenterX(), obj.CenterY(), candidateObj.CenterX(), candidateObj.CenterY())
		if best < 0 || dist < best {
			best = dist
			bot.Target = candidate.Entity()
			bot.HasTarget = true
		}
	})
}

// validTarget returns the bot's target entry if it still exists and is alive.
func validTarget(ecs *ecs.ECS, bot *components.BotData) (*donburi.Entry, bool) {
	if !bot.HasTarget || !ecs.World.Valid(bot.Target) {
		return nil, false
	}
	entry := ecs.World.Entry(bot.Target)
	if !entry.HasComponent(components.Health) || !components.Alive(entry) {
		return nil, false
	}
	return entry, true
}
