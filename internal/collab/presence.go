package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
)

type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload // userID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]*PresencePayload),
	}
}

func (pm *PresenceManager) Update(userID string, p *PresencePayload) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.presences[userID] = p
}

func (pm *PresenceManager) Remove(userID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.presences, userID)
}

func (pm *PresenceManager) GetAll() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make(map[string]*PresencePayload, len(pm.presences))
	for k, v := range pm.presences {
		result[k] = v
	}
	return result
}

// ClearDragsFor drops any active vertex drag targeting the given shape
// and returns the updated payloads keyed by user ID so callers can fan
// the change out. Deleting a shape mid-drag must also retract the
// control highlights other editors see on it.
func (pm *PresenceManager) ClearDragsFor(shapeID string) map[string]*PresencePayload {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	var cleared map[string]*PresencePayload
	for userID, p := range pm.presences {
		if p.ActiveDrag == nil || p.ActiveDrag.ShapeID != shapeID {
			continue
		}
		updated := *p
		updated.ActiveDrag = nil
		pm.presences[userID] = &updated
		if cleared == nil {
			cleared = make(map[string]*PresencePayload)
		}
		cleared[userID] = &updated
	}
	return cleared
}

func (pm *PresenceManager) StateMessage() *Message {
	all := pm.GetAll()
	payload, err := json.Marshal(PresenceStatePayload{Presences: all})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypePresenceState,
		Payload: payload,
	}
}
