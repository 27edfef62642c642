package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// TaskType is the kind of work a CSV row asks for.
type TaskType string

const (
	TaskTypeT2I   TaskType = "t2i"
	TaskTypeTIE   TaskType = "tie"
	TaskTypeVTTIE TaskType = "vttie"
	TaskTypeOther TaskType = "other"
)

// ParseTaskType normalises a raw task_type cell. Unknown values map to TaskTypeOther.
func ParseTaskType(s string) TaskType {
	switch t := TaskType(strings.ToLower(strings.TrimSpace(s))); t {
	case TaskTypeT2I, TaskTypeTIE, TaskTypeVTTIE:
		return t
	default:
		return TaskTypeOther
	}
}

// Supported reports whether the dispatcher knows how to run this task type.
func (t TaskType) Supported() bool {
	return t == TaskTypeT2I || t == TaskTypeTIE || t == TaskTypeVTTIE
}

// NeedsSource reports whether the task edits an existing image.
func (t TaskType) NeedsSource() bool {
	return t == TaskTypeTIE || t == TaskTypeVTTIE
}

func (t TaskType) String() string { return string(t) }

// DefaultGeneratedExt is used for text-to-image outputs and for edit sources without extension.
const DefaultGeneratedExt = ".png"

// TaskRecord is one row of the task list.
type TaskRecord struct {
	Row      int      `json:"row"`
	Index    string   `json:"index" validate:"required,safename"`
	Type     TaskType `json:"task_type" validate:"required"`
	Prompt   string   `json:"prompt" validate:"required"`
	OriImage string   `json:"ori_image" validate:"omitempty,relpath"`
}

// OutputKey returns the file name the task result is stored under.
// It only depends on the index, the task type and the source image extension.
func (r TaskRecord) OutputKey() string {
	ext := DefaultGeneratedExt
	if r.Type.NeedsSource() {
		if e := strings.ToLower(filepath.Ext(r.OriImage)); e != "" {
			ext = e
		}
	}
	return r.Index + ext
}

// Claimant identifies the row that owns an output key.
func (r TaskRecord) Claimant() string {
	return fmt.Sprintf("row:%d", r.Row)
}
