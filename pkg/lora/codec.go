package lora

import (
	"encoding/json"
	"fmt"
)

// Wire format: a fixed-order JSON array
//
//	[name, id, path, base_model_name, external_config, force_reload,
//	 source_config, source_tensors]
//
// with trailing defaulted fields omitted. Name and id are always present.
// This is the compact field-list contract other processes rely on; field
// order and optionality are stable.

const (
	wireMinFields = 2
	wireMaxFields = 8
)

// MarshalJSON encodes the request as the ordered field list, dropping the
// trailing run of fields that still hold their defaults.
func (r *Request) MarshalJSON() ([]byte, error) {
	fields := []any{
		r.name,
		r.id,
		r.path,
		r.baseModelName,
		r.externalConfig,
		r.forceReload,
		r.sourceConfig,
		r.sourceTensors,
	}
	defaulted := []bool{
		false,
		false,
		r.path == "",
		r.baseModelName == "",
		r.externalConfig == nil,
		!r.forceReload,
		r.sourceConfig == nil,
		r.sourceTensors == nil,
	}
	n := len(fields)
	for n > wireMinFields && defaulted[n-1] {
		n--
	}
	return json.Marshal(fields[:n])
}

// UnmarshalJSON decodes the ordered field list and runs full validation: a
// request that arrives over the wire goes through the same checks as one
// built locally, so no invalid record is observable via deserialization
// either.
func (r *Request) UnmarshalJSON(data []byte) error {
	req, err := Decode(data)
	if err != nil {
		return err
	}
	*r = *req
	return nil
}

// Decode parses the ordered field list form and validates it via New.
func Decode(data []byte) (*Request, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("adapter request: expected field list: %w", err)
	}
	if len(raw) < wireMinFields || len(raw) > wireMaxFields {
		return nil, fmt.Errorf("adapter request: field list length %d out of range [%d,%d]", len(raw), wireMinFields, wireMaxFields)
	}

	var spec Spec
	dests := []any{
		&spec.Name,
		&spec.ID,
		&spec.Path,
		&spec.BaseModelName,
		&spec.ExternalConfig,
		&spec.ForceReload,
		&spec.SourceConfig,
		&spec.SourceTensors,
	}
	names := []string{
		"name", "id", "path", "base_model_name",
		"external_config", "force_reload", "source_config", "source_tensors",
	}
	for i, msg := range raw {
		if err := json.Unmarshal(msg, dests[i]); err != nil {
			return nil, fmt.Errorf("adapter request: field %s: %w", names[i], err)
		}
	}
	return New(spec)
}
