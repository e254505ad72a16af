package wheelbook

import "testing"

func TestJsonObjectWriter(t *testing.T) {
	var w jsonObjectWriter
	w.Append("a", 1)
	w.Optional("b", "")
	w.Optional("c", "kept")
	w.EmbedFrom(map[string]int{"d": 4})

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":1,"c":"kept","d":4}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestJsonObjectWriterEmpty(t *testing.T) {
	var w jsonObjectWriter
	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{}" {
		t.Errorf("MarshalJSON() = %s, want {}", got)
	}
}
