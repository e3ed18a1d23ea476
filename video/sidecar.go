package video

import (
	"encoding/json"
	"os"
	"time"

	"econoshorts/types"
)

// Sidecar describes one rendered video's scene breakdown for inspection or
// reuse. It sits next to the output file.
type Sidecar struct {
	Topic     string        `json:"topic"`
	Script    string        `json:"script"`
	CreatedAt time.Time     `json:"created_at"`
	Scenes    []types.Scene `json:"scenes"`
}

// WriteSidecar marshals the scene breakdown to path.
func WriteSidecar(path, topic, script string, scenes []types.Scene) error {
	sc := Sidecar{
		Topic:     topic,
		Script:    script,
		CreatedAt: time.Now().UTC(),
		Scenes:    scenes,
	}
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSidecar loads a previously written sidecar.
func ReadSidecar(path string) (*Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
