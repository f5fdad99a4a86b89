package host

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/bbq-beach/agents/pkg/a2a"
	"github.com/bbq-beach/agents/pkg/ptr"
)

// fakeAgent serves an agent card and a scripted task response.
func fakeAgent(t *testing.T, name string, respond func(params *a2a.SendParams) *a2a.SendResponse) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == a2a.WellKnownCardPath:
			json.NewEncoder(w).Encode(&a2a.AgentCard{
				Name:        name,
				Description: ptr.Ptr(name + " description"),
				URL:         server.URL,
				Version:     "1.0.0",
				Skills: []a2a.AgentSkill{{
					ID:          "skill",
					Name:        name + " skill",
					Description: ptr.Ptr(name + " skill description"),
					Tags:        tagsFor(name),
				}},
				Examples: []string{"example query"},
			})
		case r.Method == http.MethodPost:
			var params a2a.SendParams
			if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
				t.Errorf("failed to decode task request: %v", err)
				return
			}
			json.NewEncoder(w).Encode(respond(&params))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func tagsFor(name string) []string {
	if name == "Weather Agent" {
		return []string{"weather", "forecast", "rain"}
	}
	return []string{"bbq", "beach", "outdoor"}
}

func completedResponse(text string) func(params *a2a.SendParams) *a2a.SendResponse {
	return func(params *a2a.SendParams) *a2a.SendResponse {
		return &a2a.SendResponse{
			Result: &a2a.Task{
				ID:     params.Message.TaskID,
				Status: a2a.TaskStatus{State: a2a.TaskStateCompleted},
				Artifacts: []a2a.Artifact{
					{Parts: []a2a.Part{a2a.TextPart(text)}},
				},
			},
		}
	}
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	beachSrv := fakeAgent(t, "BBQ Beach Agent", completedResponse("beaches"))
	weatherSrv := fakeAgent(t, "Weather Agent", completedResponse("sunny"))

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{beachSrv.URL, weatherSrv.URL})

	conn, ok := registry.Lookup("BBQ Beach Agent")
	if !ok {
		t.Fatal("expected BBQ Beach Agent to be registered")
	}
	if conn.URL != beachSrv.URL {
		t.Errorf("expected URL %s, got %s", beachSrv.URL, conn.URL)
	}

	if _, ok := registry.Lookup("Weather Agent"); !ok {
		t.Error("expected Weather Agent to be registered")
	}
}

func TestRegistryLookupExactMatchOnly(t *testing.T) {
	beachSrv := fakeAgent(t, "BBQ Beach Agent", completedResponse("beaches"))

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{beachSrv.URL})

	for _, name := range []string{"bbq beach agent", "BBQ Beach", "BBQ Beach Agent "} {
		if _, ok := registry.Lookup(name); ok {
			t.Errorf("lookup of %q should not match", name)
		}
	}
}

func TestRegisterSkipsUnreachableAgents(t *testing.T) {
	beachSrv := fakeAgent(t, "BBQ Beach Agent", completedResponse("beaches"))

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{deadURL, beachSrv.URL})

	// The unreachable address is skipped, the reachable one registered.
	if _, ok := registry.Lookup("BBQ Beach Agent"); !ok {
		t.Error("reachable agent should be registered despite earlier failure")
	}
	if got := registry.Names(); !reflect.DeepEqual(got, []string{"BBQ Beach Agent"}) {
		t.Errorf("unexpected names: %v", got)
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	weatherSrv := fakeAgent(t, "Weather Agent", completedResponse("sunny"))
	beachSrv := fakeAgent(t, "BBQ Beach Agent", completedResponse("beaches"))

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{weatherSrv.URL, beachSrv.URL})

	want := []string{"BBQ Beach Agent", "Weather Agent"}
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRegistryList(t *testing.T) {
	beachSrv := fakeAgent(t, "BBQ Beach Agent", completedResponse("beaches"))

	registry := NewRegistry(nil)
	registry.Register(context.Background(), []string{beachSrv.URL})

	infos := registry.List()
	if len(infos) != 1 {
		t.Fatalf("expected 1 agent info, got %d", len(infos))
	}
	info := infos[0]
	if info.Name != "BBQ Beach Agent" {
		t.Errorf("unexpected name %q", info.Name)
	}
	if info.Description != "BBQ Beach Agent description" {
		t.Errorf("unexpected description %q", info.Description)
	}
	if len(info.Skills) != 1 || info.Skills[0] != "BBQ Beach Agent skill description" {
		t.Errorf("unexpected skills %v", info.Skills)
	}
	if info.URL != beachSrv.URL {
		t.Errorf("unexpected URL %q", info.URL)
	}
}
