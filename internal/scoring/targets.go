package scoring

import "github.com/vovakirdan/shotfinder/internal/core"

func distance(final, flag core.Vec) float64 { return final.Dist(flag) }

func rightThenLow(final, flag core.Vec) float64 { return (flag.X-final.X)*3 - final.Y }

func leftThenLow(final, flag core.Vec) float64 { return -(flag.X-final.X)*3 + final.Y }

func highThenRight(final, _ core.Vec) float64 { return -final.X - final.Y }

func highThenLeft(final, _ core.Vec) float64 { return final.X - final.Y }

func lowThenRight(final, _ core.Vec) float64 { return -final.X + final.Y*4 }

func lowThenLeft(final, _ core.Vec) float64 { return final.X + final.Y*4 }

func zero(core.Vec, core.Vec) float64 { return 0 }

func init() {
	for _, t := range []Target{
		{Name: "distance", Summary: "closest to the flag", Proximity: distance, Timed: true},
		{Name: "right", Summary: "as far right as possible, then low", Proximity: rightThenLow, Timed: true},
		{Name: "left", Summary: "as far left as possible, then low", Proximity: leftThenLow, Timed: true},
		{Name: "high", Summary: "as high as possible, then right", Proximity: highThenRight, Timed: true},
		{Name: "top", Summary: "alias of high", Proximity: highThenRight, Timed: true},
		{Name: "topright", Summary: "alias of high", Proximity: highThenRight, Timed: true},
		// upperleft has always scored like high; it is not the topleft formula.
		{Name: "upperleft", Summary: "alias of high", Proximity: highThenRight, Timed: true},
		{Name: "topleft", Summary: "as high as possible, then left", Proximity: highThenLeft, Timed: true},
		{Name: "low", Summary: "as low as possible, then right", Proximity: lowThenRight, Timed: true},
		{Name: "lowerright", Summary: "alias of low", Proximity: lowThenRight, Timed: true},
		{Name: "bottomright", Summary: "alias of low", Proximity: lowThenRight, Timed: true},
		{Name: "lowerleft", Summary: "as low as possible, then left", Proximity: lowThenLeft, Timed: true},
		{Name: "bottomleft", Summary: "alias of lowerleft", Proximity: lowThenLeft, Timed: true},
		{Name: "speed", Summary: "fewest ticks to come to rest", Proximity: zero, Timed: true},
		{Name: "swish", Summary: "any resting shot; swishes are reported", Proximity: zero},
	} {
		Register(t)
	}
}
