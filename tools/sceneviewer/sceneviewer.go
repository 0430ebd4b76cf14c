// Command sceneviewer serves the web inspector on a demo hierarchy:
// a sun with an orbiting planet and moon, animated with transform
// rotations so connected websocket clients see live updates.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/mogaika/scenemath/math3d"
	"github.com/mogaika/scenemath/scene"
	"github.com/mogaika/scenemath/web"
)

func buildDemoScene() *scene.Scene {
	s := scene.NewScene()

	sun := s.New("sun")

	planet := s.New("planet")
	if err := planet.SetParent(sun); err != nil {
		log.Fatal(err)
	}
	planet.SetLocalPosition(math3d.Vector3{X: 8})

	moon := s.New("moon")
	if err := moon.SetParent(planet); err != nil {
		log.Fatal(err)
	}
	moon.SetLocalPosition(math3d.Vector3{X: 2})

	// An anonymous probe looking at the sun from above, to show off
	// generated names in the inspector.
	probe := s.New("")
	probe.SetPosition(math3d.Vector3{Y: 20})
	probe.Rotate(90, 0, 0, scene.Self)

	return s
}

func animate(rate time.Duration) {
	for range time.Tick(rate) {
		web.WithScene(func(s *scene.Scene) {
			for _, t := range s.Transforms() {
				switch t.Name() {
				case "sun":
					// Children orbit by riding the sun's world
					// rotation cascade.
					t.Rotate(0, 1, 0, scene.World)
				case "planet":
					t.Rotate(0, 3, 0, scene.Self)
				}
			}
		})
	}
}

func main() {
	var addr string
	var rate time.Duration
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.DurationVar(&rate, "rate", time.Second/10, "Animation step interval (0 to disable)")
	flag.Parse()

	s := buildDemoScene()

	if rate > 0 {
		go animate(rate)
	}

	log.Printf("[viewer] Scene with %d transforms ready", len(s.Transforms()))
	if err := web.StartServer(addr, s); err != nil {
		log.Fatal(err)
	}
}
