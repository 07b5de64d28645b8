package tournament

import (
	"fmt"
	"math/rand"
)

var labelAdjectives = []string{
	"amber", "brisk", "copper", "daring", "eager", "fierce",
	"golden", "humble", "iron", "jolly", "keen", "lunar",
	"mellow", "noble", "polar", "quiet", "rapid", "silver",
	"tidal", "vivid", "wild", "zesty",
}

var labelNouns = []string{
	"otter", "falcon", "badger", "heron", "lynx", "marmot",
	"osprey", "puffin", "raven", "stoat", "tern", "viper",
	"walrus", "bison", "crane", "dingo", "egret", "ferret",
}

// randomLabel synthesizes a tournament identifier like "brisk-otter-042"
// when the caller supplies none.
func randomLabel(rng *rand.Rand) string {
	return fmt.Sprintf("%s-%s-%03d",
		labelAdjectives[rng.Intn(len(labelAdjectives))],
		labelNouns[rng.Intn(len(labelNouns))],
		rng.Intn(1000))
}
