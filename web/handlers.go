package web

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mogaika/scenemath/gltfexport"
	"github.com/mogaika/scenemath/live"
	"github.com/mogaika/scenemath/math3d"
	"github.com/mogaika/scenemath/scene"
	"github.com/mogaika/scenemath/webutils"
)

func HandlerSceneJson(w http.ResponseWriter, r *http.Request) {
	WithScene(func(s *scene.Scene) {
		webutils.WriteJson(w, takeSnapshot(s))
	})
}

func nodeFromRequest(s *scene.Scene, r *http.Request) (scene.Transform, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return scene.Transform{}, fmt.Errorf("node id '%s' is not integer", mux.Vars(r)["id"])
	}
	t, ok := s.ByID(id)
	if !ok {
		return scene.Transform{}, fmt.Errorf("no node with id %d", id)
	}
	return t, nil
}

func HandlerSceneNodeJson(w http.ResponseWriter, r *http.Request) {
	WithScene(func(s *scene.Scene) {
		t, err := nodeFromRequest(s, r)
		if err != nil {
			webutils.WriteError(w, err)
			return
		}
		webutils.WriteJson(w, takeNodeSnapshot(t))
	})
}

type deltaArgs struct {
	X, Y, Z float64
	Space   string
}

func (da *deltaArgs) space() (scene.Space, error) {
	switch da.Space {
	case "", "self":
		return scene.Self, nil
	case "world":
		return scene.World, nil
	}
	return scene.Self, fmt.Errorf("unknown space %q", da.Space)
}

func HandlerNodeAction(w http.ResponseWriter, r *http.Request) {
	WithScene(func(s *scene.Scene) {
		t, err := nodeFromRequest(s, r)
		if err != nil {
			webutils.WriteError(w, err)
			return
		}

		action := mux.Vars(r)["action"]
		switch action {
		case "translate", "rotate":
			var args deltaArgs
			if err := webutils.ReadJsonBody(r, &args); err != nil {
				webutils.WriteError(w, err)
				return
			}
			space, err := args.space()
			if err != nil {
				webutils.WriteError(w, err)
				return
			}
			if action == "translate" {
				t.Translate(math3d.Vector3{X: args.X, Y: args.Y, Z: args.Z}, space)
			} else {
				t.Rotate(args.X, args.Y, args.Z, space)
			}
		case "reparent":
			var args struct{ Parent int }
			if err := webutils.ReadJsonBody(r, &args); err != nil {
				webutils.WriteError(w, err)
				return
			}
			parent := scene.Transform{}
			if args.Parent != 0 {
				p, ok := s.ByID(args.Parent)
				if !ok {
					webutils.WriteError(w, fmt.Errorf("no node with id %d", args.Parent))
					return
				}
				parent = p
			}
			if err := t.SetParent(parent); err != nil {
				webutils.WriteError(w, err)
				return
			}
		case "rename":
			var args struct{ Name string }
			if err := webutils.ReadJsonBody(r, &args); err != nil {
				webutils.WriteError(w, err)
				return
			}
			t.SetName(args.Name)
		case "destroy":
			s.Destroy(t)
			webutils.WriteJson(w, takeSnapshot(s))
			return
		default:
			webutils.WriteError(w, fmt.Errorf("unknown action %q", action))
			return
		}
		webutils.WriteJson(w, takeNodeSnapshot(t))
	})
}

func HandlerDumpSceneGltf(w http.ResponseWriter, r *http.Request) {
	WithScene(func(s *scene.Scene) {
		webutils.WriteFileHeaders(w, "scene.glb")
		if err := gltfexport.ExportBinary(w, s); err != nil {
			log.Printf("[web] gltf export error: %v", err)
		}
	})
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func HandlerWs(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}
	live.NewClient(conn)
}
