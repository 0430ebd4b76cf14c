package web

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mogaika/scenemath/math3d"
	"github.com/mogaika/scenemath/scene"
)

func serveTestScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.NewScene()
	root := s.New("root")
	child := s.New("child")
	if err := child.SetParent(root); err != nil {
		t.Fatal(err)
	}
	child.SetLocalPosition(math3d.Vector3{X: 1})

	sceneLock.Lock()
	serverScene = s
	sceneLock.Unlock()
	t.Cleanup(func() {
		sceneLock.Lock()
		serverScene = nil
		sceneLock.Unlock()
	})
	return s
}

func doRequest(t *testing.T, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	rec := httptest.NewRecorder()
	Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("bad response %q: %v", rec.Body.String(), err)
	}
}

func TestHandlerSceneJson(t *testing.T) {
	serveTestScene(t)

	var snap SceneSnapshot
	decodeBody(t, doRequest(t, "GET", "/json/scene", nil), &snap)

	if len(snap.Nodes) != 2 {
		t.Fatalf("nodes = %d", len(snap.Nodes))
	}
	byName := map[string]NodeSnapshot{}
	for _, n := range snap.Nodes {
		byName[n.Name] = n
	}
	child, ok := byName["child"]
	if !ok {
		t.Fatal("child missing from snapshot")
	}
	if child.Parent != byName["root"].Id {
		t.Errorf("child parent = %d", child.Parent)
	}
	if !child.LocalPosition.Equals(math3d.Vector3{X: 1}) {
		t.Errorf("child local position = %v", child.LocalPosition)
	}
	if cs := byName["root"].Children; len(cs) != 1 || cs[0] != child.Id {
		t.Errorf("root children = %v", cs)
	}
}

func TestHandlerSceneNodeJson(t *testing.T) {
	s := serveTestScene(t)
	id := s.Transforms()[0].ID()

	var snap NodeSnapshot
	decodeBody(t, doRequest(t, "GET", "/json/scene/node/1", nil), &snap)
	if snap.Id != id || snap.Name != "root" {
		t.Errorf("snapshot = %+v", snap)
	}

	var e struct {
		Error string `json:"error"`
	}
	decodeBody(t, doRequest(t, "GET", "/json/scene/node/99", nil), &e)
	if e.Error == "" {
		t.Error("missing node: expected error response")
	}
	decodeBody(t, doRequest(t, "GET", "/json/scene/node/x", nil), &e)
	if e.Error == "" {
		t.Error("non-integer id: expected error response")
	}
}

func TestHandlerNodeActionTranslate(t *testing.T) {
	serveTestScene(t)

	rec := doRequest(t, "POST", "/action/node/1/translate",
		map[string]interface{}{"X": 1.0, "Y": 2.0, "Z": 3.0, "Space": "world"})
	var snap NodeSnapshot
	decodeBody(t, rec, &snap)
	if !snap.Position.Equals(math3d.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("position after translate = %v", snap.Position)
	}

	// Deltas require a POST body.
	var e struct {
		Error string `json:"error"`
	}
	decodeBody(t, doRequest(t, "GET", "/action/node/1/translate", nil), &e)
	if e.Error == "" {
		t.Error("GET translate: expected error response")
	}
}

func TestHandlerNodeActionRotate(t *testing.T) {
	serveTestScene(t)

	rec := doRequest(t, "POST", "/action/node/1/rotate",
		map[string]interface{}{"Y": 90.0, "Space": "world"})
	var snap NodeSnapshot
	decodeBody(t, rec, &snap)
	if got := snap.Rotation.DistanceTo(math3d.Euler(0, 90, 0)); got > 1e-9 {
		t.Errorf("rotation after rotate = %v", snap.Rotation)
	}

	var e struct {
		Error string `json:"error"`
	}
	decodeBody(t, doRequest(t, "POST", "/action/node/1/rotate",
		map[string]interface{}{"Space": "sideways"}), &e)
	if e.Error == "" {
		t.Error("bad space: expected error response")
	}
}

func TestHandlerNodeActionReparentRename(t *testing.T) {
	s := serveTestScene(t)
	probe := 0
	WithScene(func(sc *scene.Scene) {
		probe = sc.New("probe").ID()
	})

	rec := doRequest(t, "POST", "/action/node/2/reparent",
		map[string]interface{}{"Parent": probe})
	var snap NodeSnapshot
	decodeBody(t, rec, &snap)
	if snap.Parent != probe {
		t.Errorf("parent = %d; expected %d", snap.Parent, probe)
	}

	// Detach with parent 0.
	decodeBody(t, doRequest(t, "POST", "/action/node/2/reparent",
		map[string]interface{}{"Parent": 0}), &snap)
	if snap.Parent != 0 {
		t.Errorf("parent after detach = %d", snap.Parent)
	}

	decodeBody(t, doRequest(t, "POST", "/action/node/2/rename",
		map[string]interface{}{"Name": "renamed"}), &snap)
	if snap.Name != "renamed" {
		t.Errorf("name = %q", snap.Name)
	}
	if tr, _ := s.ByID(2); tr.Name() != "renamed" {
		t.Error("rename not applied to scene")
	}
}

func TestHandlerNodeActionDestroy(t *testing.T) {
	s := serveTestScene(t)

	var snap SceneSnapshot
	decodeBody(t, doRequest(t, "POST", "/action/node/2/destroy", nil), &snap)
	if len(snap.Nodes) != 1 {
		t.Errorf("nodes after destroy = %d", len(snap.Nodes))
	}
	if _, ok := s.ByID(2); ok {
		t.Error("destroyed node still resolves")
	}

	var e struct {
		Error string `json:"error"`
	}
	decodeBody(t, doRequest(t, "POST", "/action/node/1/teleport", nil), &e)
	if e.Error == "" {
		t.Error("unknown action: expected error response")
	}
}

func TestHandlerDumpSceneGltf(t *testing.T) {
	serveTestScene(t)

	rec := doRequest(t, "GET", "/dump/scene/gltf", nil)
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "scene.glb") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if body := rec.Body.Bytes(); len(body) < 4 || string(body[:4]) != "glTF" {
		t.Errorf("body does not look like binary gltf: % x", body[:12])
	}
}

func TestTakeSnapshotVersion(t *testing.T) {
	s := serveTestScene(t)
	snap := takeSnapshot(s)
	if snap.Version != s.Version() {
		t.Errorf("version = %d; scene %d", snap.Version, s.Version())
	}
}
