package loractl

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lorad/pkg/lora"
	"lorad/pkg/types"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := BuildRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLoadWirePrintsOrderedList(t *testing.T) {
	out, err := runCmd(t, "load", "--name", "sql-lora", "--id", "1", "--path", "/adapters/sql-lora", "--wire")
	if err != nil {
		t.Fatalf("load --wire: %v", err)
	}
	if got := strings.TrimSpace(out); got != `["sql-lora",1,"/adapters/sql-lora"]` {
		t.Fatalf("wire output = %s", got)
	}
}

func TestLoadWireInMemory(t *testing.T) {
	out, err := runCmd(t, "load", "--name", "t", "--id", "2",
		"--config-json", `{"r":8}`, "--tensors-json", `{}`, "--wire")
	if err != nil {
		t.Fatalf("load --wire: %v", err)
	}
	// Round-trip through the decoder to confirm both routes survive.
	req, err := lora.Decode([]byte(strings.TrimSpace(out)))
	if err != nil {
		t.Fatalf("decode wire output: %v", err)
	}
	if !req.HasInMemorySource() || req.ID() != 2 {
		t.Fatalf("unexpected decoded request: %v", req)
	}
}

func TestLoadRejectsInvalidSpecLocally(t *testing.T) {
	// No server configured on purpose: validation must fail first.
	_, err := runCmd(t, "load", "--name", "x", "--id", "0", "--path", "/a", "--server", "http://127.0.0.1:1")
	if !lora.IsInvalidIdentifier(err) {
		t.Fatalf("expected invalid identifier error, got %v", err)
	}

	_, err = runCmd(t, "load", "--name", "x", "--id", "3", "--config-json", `{"r":8}`, "--server", "http://127.0.0.1:1")
	if !lora.IsIncompleteInMemorySource(err) {
		t.Fatalf("expected incomplete in-memory source error, got %v", err)
	}
}

func TestLoadSendsObjectPayload(t *testing.T) {
	var got types.LoadAdapterRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.LoadAdapterResponse{ID: 5, Name: "mem", OpID: "op", Outcome: "loaded"})
	}))
	defer srv.Close()

	out, err := runCmd(t, "load", "--name", "mem", "--id", "5",
		"--config-json", `{"r":8}`, "--tensors-json", `{"w":[1]}`, "--server", srv.URL)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(out, "loaded id=5 name=mem") {
		t.Fatalf("unexpected output: %q", out)
	}
	if got.SourceConfig == nil || got.SourceTensors == nil {
		t.Fatalf("in-memory payload not forwarded: %+v", got)
	}
}

func TestUnloadCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/adapters/9" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	out, err := runCmd(t, "unload", "9", "--server", srv.URL)
	if err != nil {
		t.Fatalf("unload: %v", err)
	}
	if !strings.Contains(out, "unloaded id=9") {
		t.Fatalf("unexpected output: %q", out)
	}

	if _, err := runCmd(t, "unload", "not-a-number", "--server", srv.URL); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestParseJSONObject(t *testing.T) {
	m, err := parseJSONObject("config-json", "")
	if err != nil || m != nil {
		t.Fatalf("empty flag: m=%v err=%v", m, err)
	}
	m, err = parseJSONObject("config-json", "{}")
	if err != nil || m == nil || len(m) != 0 {
		t.Fatalf("empty object: m=%v err=%v", m, err)
	}
	if _, err := parseJSONObject("config-json", "[1,2]"); err == nil {
		t.Fatal("expected error for non-object JSON")
	}
}
