package batch

import (
	"fmt"

	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/fhuszti/imgbatch/internal/validation"
)

// checkRecord rejects records that must not reach a provider.
func checkRecord(rec model.TaskRecord) error {
	if !rec.Type.Supported() {
		return fmt.Errorf("%w: %q", ErrUnsupportedTaskType, rec.Type)
	}
	if err := validation.ValidateStruct(rec); err != nil {
		details, jErr := validation.ErrorsToJson(err)
		if jErr != nil {
			details = jErr.Error()
		}
		return fmt.Errorf("%w: row %d: %s", ErrInvalidTask, rec.Row, details)
	}
	return nil
}
