package gateway

import "testing"

func TestParseKind(t *testing.T) {
	tests := map[string]struct {
		name string
		want Kind
		ok   bool
	}{
		"message create":   {"MESSAGE_CREATE", MessageCreate, true},
		"ready":            {"READY", Ready, true},
		"resumed":          {"RESUMED", Resumed, true},
		"last known kind":  {"WEBHOOKS_UPDATE", WebhooksUpdate, true},
		"future event":     {"SOME_FUTURE_EVENT", KindUnknown, false},
		"lower case":       {"message_create", KindUnknown, false},
		"empty":            {"", KindUnknown, false},
		"unknown sentinel": {"UNKNOWN", KindUnknown, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := ParseKind(tt.name)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindsRoundTrip(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != int(kindCount)-1 {
		t.Fatalf("len(Kinds()) = %d, want %d", len(kinds), kindCount-1)
	}

	seen := make(map[string]bool)
	for _, k := range kinds {
		if !k.Valid() {
			t.Errorf("%d is not valid", k)
		}
		name := k.String()
		if name == "" || name == "UNKNOWN" {
			t.Errorf("kind %d has no name", k)
		}
		if seen[name] {
			t.Errorf("duplicate name %q", name)
		}
		seen[name] = true

		back, ok := ParseKind(name)
		if !ok || back != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, true", name, back, ok, k)
		}
	}
}

func TestKind_String(t *testing.T) {
	if got := KindUnknown.String(); got != "UNKNOWN" {
		t.Errorf("KindUnknown.String() = %q", got)
	}
	if got := Kind(60000).String(); got != "UNKNOWN" {
		t.Errorf("out of range String() = %q", got)
	}
	if KindUnknown.Valid() || Kind(60000).Valid() {
		t.Error("expected invalid kinds")
	}
}

func TestKind_HasPayload(t *testing.T) {
	if Resumed.HasPayload() {
		t.Error("RESUMED should have no payload")
	}
	if !MessageCreate.HasPayload() {
		t.Error("MESSAGE_CREATE should have a payload")
	}
}
