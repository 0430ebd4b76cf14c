package utils

import (
	"fmt"
	"math/rand"

	"github.com/Pallinder/go-randomdata"
)

// RandomNameGenerator hands out unique silly names for scene nodes
// created without one. The zero value is ready to use and is
// deterministic, so generated names are stable between runs.
type RandomNameGenerator map[string]struct{}

func (rng *RandomNameGenerator) RandomName() string {
	if *rng == nil {
		*rng = make(map[string]struct{})
		randomdata.CustomRand(rand.New(rand.NewSource(0)))
	}
	for try := 0; ; try++ {
		name := randomdata.SillyName()
		if try > 16 {
			// The silly-name pool is finite; disambiguate instead
			// of spinning on a nearly exhausted pool.
			name = fmt.Sprintf("%s_%d", name, len(*rng))
		}
		if _, exists := (*rng)[name]; !exists {
			(*rng)[name] = struct{}{}
			return name
		}
	}
}
