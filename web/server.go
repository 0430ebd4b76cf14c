// Package web serves the scene inspector: JSON views of the
// hierarchy, mutation actions, glTF download and a websocket with
// live snapshots.
package web

import (
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/scenemath/live"
	"github.com/mogaika/scenemath/scene"
)

var serverScene *scene.Scene
var sceneLock sync.Mutex

// WithScene runs f with exclusive access to the served scene.
// Handlers run concurrently and the hierarchy is not thread safe, so
// every touch of it goes through here. Mutations are broadcast to
// live clients afterwards.
func WithScene(f func(s *scene.Scene)) {
	sceneLock.Lock()
	defer sceneLock.Unlock()
	if serverScene == nil {
		return
	}

	before := serverScene.Version()
	f(serverScene)
	if serverScene.Version() != before {
		live.Broadcast(takeSnapshot(serverScene))
	}
}

// Router builds the inspector route table.
func Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/scene", HandlerSceneJson)
	r.HandleFunc("/json/scene/node/{id}", HandlerSceneNodeJson)
	r.HandleFunc("/action/node/{id}/{action}", HandlerNodeAction)
	r.HandleFunc("/dump/scene/gltf", HandlerDumpSceneGltf)
	r.HandleFunc("/ws", HandlerWs)
	return r
}

// StartServer serves the inspector for s on addr.
func StartServer(addr string, s *scene.Scene) error {
	sceneLock.Lock()
	serverScene = s
	sceneLock.Unlock()

	h := handlers.LoggingHandler(os.Stdout, handlers.RecoveryHandler()(Router()))

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
