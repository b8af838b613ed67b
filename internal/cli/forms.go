package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadForm decodes the YAML file at path over initial. Unknown keys are an
// error so typos do not silently drop a field.
func LoadForm[F any](path string, initial F) (F, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return initial, fmt.Errorf("read form: %w", err)
	}
	return DecodeForm(b, initial)
}

func DecodeForm[F any](b []byte, initial F) (F, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&initial); err != nil && !errors.Is(err, io.EOF) {
		return initial, fmt.Errorf("decode form: %w", err)
	}
	return initial, nil
}

// FillMissing prompts for every empty required string field of the form
// struct pointed to by form, using its label tag as the question. Fields
// whose name mentions a password are asked without echo.
func FillMissing(ctx context.Context, p Prompter, form any) error {
	v := reflect.ValueOf(form)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("fill form: want pointer to struct, got %T", form)
	}
	return fillStruct(ctx, p, v.Elem())
}

func fillStruct(ctx context.Context, p Prompter, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			if err := fillStruct(ctx, p, fv); err != nil {
				return err
			}
			continue
		}
		if !sf.IsExported() || fv.Kind() != reflect.String || fv.String() != "" {
			continue
		}
		label := sf.Tag.Get("label")
		if label == "" || !required(sf.Tag.Get("validate")) {
			continue
		}

		var (
			val string
			err error
		)
		if strings.Contains(strings.ToLower(sf.Name), "password") {
			val, err = p.Password(ctx, label)
		} else {
			val, err = p.Input(ctx, label, "")
		}
		if err != nil {
			return err
		}
		fv.SetString(strings.TrimSpace(val))
	}
	return nil
}

func required(rules string) bool {
	for _, r := range strings.Split(rules, ",") {
		if r == "required" {
			return true
		}
	}
	return false
}
