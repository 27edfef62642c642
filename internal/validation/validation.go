package validation

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Grab the value of `json:"foo,omitempty"`
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			// fallback to the Go field name or skip
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation("safename", validateSafeName); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("relpath", validateRelPath); err != nil {
		panic(err)
	}
	validate.RegisterStructValidation(validateTaskRecord, model.TaskRecord{})
}

// validateSafeName accepts a single path element: no separators, no dot entries.
func validateSafeName(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}

// validateRelPath accepts a slash-separated path that stays inside its base dir.
func validateRelPath(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.Contains(s, `\`) {
		return false
	}
	return filepath.IsLocal(filepath.FromSlash(s))
}

// edit tasks need a source image, text-to-image tasks don't.
func validateTaskRecord(sl validator.StructLevel) {
	rec := sl.Current().Interface().(model.TaskRecord)
	if rec.Type.NeedsSource() && rec.OriImage == "" {
		sl.ReportError(rec.OriImage, "ori_image", "OriImage", "required_for_edit", string(rec.Type))
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ErrorsToJson(validationErrs error) (string, error) {
	errsMap := make(map[string]string)
	var vErrs validator.ValidationErrors
	if !errors.As(validationErrs, &vErrs) {
		return "", validationErrs
	}
	for _, fieldErr := range vErrs {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	errsJson, err := json.Marshal(errsMap)
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}
