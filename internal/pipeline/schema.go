package processor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/musmankhan/cnic-ocr/internal/common"
	"github.com/musmankhan/cnic-ocr/internal/parser"
)

// recordSchema pins the output contract: every field present, null when
// unreadable, and canonical formats for identity number, gender and dates.
const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "required": [
    "identity_number", "name", "father_name", "gender",
    "country_of_stay", "date_of_birth", "date_of_issue", "date_of_expiry"
  ],
  "properties": {
    "identity_number": {
      "anyOf": [{"type": "null"}, {"type": "string", "pattern": "^[0-9]{5}-[0-9]{7}-[0-9]$"}]
    },
    "name": {
      "anyOf": [{"type": "null"}, {"type": "string", "minLength": 2, "maxLength": 50}]
    },
    "father_name": {
      "anyOf": [{"type": "null"}, {"type": "string", "minLength": 2, "maxLength": 50}]
    },
    "gender": {
      "anyOf": [{"type": "null"}, {"enum": ["Male", "Female"]}]
    },
    "country_of_stay": {
      "anyOf": [{"type": "null"}, {"type": "string", "minLength": 2, "maxLength": 50}]
    },
    "date_of_birth": {
      "anyOf": [{"type": "null"}, {"type": "string", "pattern": "^[0-9]{1,2}[./-][0-9]{1,2}[./-][0-9]{4}$"}]
    },
    "date_of_issue": {
      "anyOf": [{"type": "null"}, {"type": "string", "pattern": "^[0-9]{1,2}[./-][0-9]{1,2}[./-][0-9]{4}$"}]
    },
    "date_of_expiry": {
      "anyOf": [{"type": "null"}, {"type": "string", "pattern": "^[0-9]{1,2}[./-][0-9]{1,2}[./-][0-9]{4}$"}]
    }
  }
}`

var compiledRecordSchema = mustCompileRecordSchema()

func mustCompileRecordSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", strings.NewReader(recordSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("record.json")
}

// ValidateRecord checks a parsed record against the output contract.
func ValidateRecord(rec parser.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return common.WrapError(err, "encode record")
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return common.WrapError(err, "decode record")
	}
	if err := compiledRecordSchema.Validate(doc); err != nil {
		return common.NewAppError("SCHEMA_VIOLATION", "record failed schema validation", err)
	}
	return nil
}
