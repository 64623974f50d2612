package schema

import "time"

// ModelData describes one servable model in the OpenAI /v1/models shape.
type ModelData struct {
	ID         string                   `json:"id"`
	Object     string                   `json:"object"`
	Created    int64                    `json:"created"`
	OwnedBy    string                   `json:"owned_by"`
	Permission []map[string]interface{} `json:"permission"`
	Root       string                   `json:"root"`
	Parent     *string                  `json:"parent"`
}

// ModelList is the body of GET /v1/models.
type ModelList struct {
	Object string      `json:"object"`
	Data   []ModelData `json:"data"`
}

// NewModelData builds the descriptor for a model identifier.
func NewModelData(id string) ModelData {
	return ModelData{
		ID:         id,
		Object:     "model",
		Created:    time.Now().Unix(),
		OwnedBy:    "organization",
		Permission: []map[string]interface{}{},
		Root:       id,
		Parent:     nil,
	}
}

// NewModelList wraps model descriptors in the list envelope.
func NewModelList(models ...ModelData) ModelList {
	if models == nil {
		models = []ModelData{}
	}
	return ModelList{
		Object: "list",
		Data:   models,
	}
}
