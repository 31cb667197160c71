package api

import (
	"fmt"
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// RegisterValidators adds the custom binding tags used by the request DTOs:
//
//	codelist  every element of a []string is an upper-case code (WIFI, PARKING, ...)
//	isodate   a YYYY-MM-DD calendar date
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("codelist", validateCodeList); err != nil {
		return fmt.Errorf("register codelist validator failed: %w", err)
	}
	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		return fmt.Errorf("register isodate validator failed: %w", err)
	}
	return nil
}

func validateCodeList(fl validator.FieldLevel) bool {
	codes, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	for _, code := range codes {
		if !codePattern.MatchString(code) {
			return false
		}
	}
	return true
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(campsite.DateLayout, fl.Field().String())
	return err == nil
}
