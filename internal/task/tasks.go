package task

import (
	"encoding/json"
	"fmt"

	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/fhuszti/imgbatch/internal/uuid"
	"github.com/hibiken/asynq"
)

const TypeGenerateImage = "imgbatch:generate"

type GenerateImagePayload struct {
	RunID  uuid.UUID        `json:"run_id"`
	Record model.TaskRecord `json:"record"`
}

// NewGenerateImageTask creates an Asynq task for one task record.
func NewGenerateImageTask(runID uuid.UUID, rec model.TaskRecord) (*asynq.Task, error) {
	p := GenerateImagePayload{RunID: runID, Record: rec}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal generate-image payload: %w", err)
	}
	return asynq.NewTask(TypeGenerateImage, data, asynq.MaxRetry(0)), nil
}

// ParseGenerateImagePayload parses the task payload to GenerateImagePayload.
func ParseGenerateImagePayload(t *asynq.Task) (GenerateImagePayload, error) {
	var p GenerateImagePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return GenerateImagePayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
