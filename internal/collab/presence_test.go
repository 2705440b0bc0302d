package collab

import (
	"strings"
	"testing"
)

func TestPresenceClearDragsFor(t *testing.T) {
	pm := NewPresenceManager()
	pm.Update("user_a", &PresencePayload{
		DisplayName: "A",
		ActiveDrag:  &VertexDrag{ShapeID: "sq", Vertex: 2},
	})
	pm.Update("user_b", &PresencePayload{
		DisplayName: "B",
		ActiveDrag:  &VertexDrag{ShapeID: "star", Vertex: 0},
	})
	pm.Update("user_c", &PresencePayload{DisplayName: "C"})

	cleared := pm.ClearDragsFor("sq")
	if len(cleared) != 1 {
		t.Fatalf("cleared = %v", cleared)
	}
	if p, ok := cleared["user_a"]; !ok || p.ActiveDrag != nil || p.DisplayName != "A" {
		t.Fatalf("cleared payload = %+v", cleared["user_a"])
	}

	all := pm.GetAll()
	if all["user_a"].ActiveDrag != nil {
		t.Fatal("stored presence still carries the drag")
	}
	if all["user_b"].ActiveDrag == nil || all["user_b"].ActiveDrag.ShapeID != "star" {
		t.Fatal("unrelated drag was cleared")
	}

	// No active drags on the shape: nothing to report.
	if got := pm.ClearDragsFor("sq"); got != nil {
		t.Fatalf("second clear = %v", got)
	}
}

func TestPresenceStateMessageCarriesActiveDrags(t *testing.T) {
	pm := NewPresenceManager()
	pm.Update("user_a", &PresencePayload{
		Cursor:     &CursorPos{X: 3, Y: 4},
		Selection:  []string{"sq"},
		ActiveDrag: &VertexDrag{ShapeID: "sq", Vertex: 1},
	})

	msg := pm.StateMessage()
	if msg == nil || msg.Type != TypePresenceState {
		t.Fatalf("msg = %+v", msg)
	}

	want := `"activeDrag":{"shapeId":"sq","vertex":1}`
	if got := string(msg.Payload); !strings.Contains(got, want) {
		t.Fatalf("payload %s missing %s", got, want)
	}
}
