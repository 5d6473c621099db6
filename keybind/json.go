package keybind

import "encoding/json"

type jsonKeybind struct {
	Program         string   `json:"program"`
	Modifiers       []string `json:"modifiers"`
	Key             string   `json:"key"`
	KeyKind         string   `json:"key_kind"`
	Action          string   `json:"action"`
	Description     string   `json:"description,omitempty"`
	CooldownMS      int64    `json:"cooldown_ms,omitempty"`
	Repeat          bool     `json:"repeat"`
	AllowWhenLocked bool     `json:"allow_when_locked"`
	AllowInhibiting bool     `json:"allow_inhibiting"`
}

// MarshalJSON encodes k as a flat object with snake_case field names. The
// cooldown is expressed in whole milliseconds.
func (k Keybind) MarshalJSON() ([]byte, error) {
	mods := k.Modifiers
	if mods == nil {
		mods = []string{}
	}

	_, kind := ClassifyKey(k.Key)

	return json.Marshal(jsonKeybind{
		Program:         k.Program,
		Modifiers:       mods,
		Key:             k.Key,
		KeyKind:         kind.String(),
		Action:          k.Action,
		Description:     k.Description,
		CooldownMS:      k.Cooldown.Milliseconds(),
		Repeat:          k.Repeat,
		AllowWhenLocked: k.AllowWhenLocked,
		AllowInhibiting: k.AllowInhibiting,
	})
}
