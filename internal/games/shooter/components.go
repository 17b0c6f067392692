package shooter

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

// ObjectData links an ECS entry to its broad-phase collision object.
type ObjectData struct {
	*resolv.Object
}

var (
	Body   = donburi.NewComponentType[engine.Entity]()
	Object = donburi.NewComponentType[ObjectData]()

	Enemy  = donburi.NewTag().SetName("Enemy")
	Bullet = donburi.NewTag().SetName("Bullet")
)

// Resolv tags for the collision space
const (
	ResolvShip   = "ship"
	ResolvEnemy  = "enemy"
	ResolvBullet = "bullet"
)
