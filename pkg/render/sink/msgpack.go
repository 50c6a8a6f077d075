package sink

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/kundli/pkg/placement"
)

// RenderMsgpack encodes the placed chart as MessagePack using the same
// field names as the JSON output.
func RenderMsgpack(m *placement.Model) ([]byte, error) {
	return msgpack.Marshal(m)
}

// ReadMsgpack decodes the output of [RenderMsgpack].
func ReadMsgpack(data []byte) (*placement.Model, error) {
	var m placement.Model
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
