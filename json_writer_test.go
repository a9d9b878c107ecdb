package carteira

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("ordered fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 1)
		w.Append("b", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":1,"b":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed object", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 1)
		w.Embed(json.RawMessage(`{"c":3,"d":4}`))
		w.Append("b", 2)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":1,"c":3,"d":4,"b":2}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed from value", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("command", "buy")
		w.EmbedFrom(struct {
			Code string `json:"code"`
		}{Code: "PETR4"})
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"command":"buy","code":"PETR4"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional skips zero values", func(t *testing.T) {
		var w jsonObjectWriter
		w.Optional("empty", "")
		w.Optional("zero", 0)
		w.Optional("set", "x")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"set":"x"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
