package provider

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"

	"govtrader/internal/types"
)

// Models wrap the JSON object in prose more often than not; grab the first
// brace-delimited object and ignore the rest.
var jsonObjectPattern = regexp.MustCompile(`\{[^{}]*\}`)

const opinionSchemaJSON = `{
	"type": "object",
	"minProperties": 1,
	"maxProperties": 1,
	"patternProperties": {
		"^(positive|negative|neutral)$": {
			"type": "number",
			"minimum": 0,
			"maximum": 1
		}
	},
	"additionalProperties": false
}`

var opinionSchema = jsonschema.MustCompileString("opinion.json", opinionSchemaJSON)

// parseOpinion extracts the {"<label>": <score>} object from a raw model
// reply. Single-quoted pseudo-JSON, which the prompt itself suggests, is
// tolerated.
func parseOpinion(raw string) (*Opinion, error) {
	for _, match := range jsonObjectPattern.FindAllString(raw, -1) {
		candidate := strings.ReplaceAll(match, "'", `"`)
		if !gjson.Valid(candidate) {
			continue
		}
		var doc any
		if err := jsonUnmarshal(candidate, &doc); err != nil {
			continue
		}
		if err := opinionSchema.Validate(doc); err != nil {
			continue
		}
		var op *Opinion
		gjson.Parse(candidate).ForEach(func(key, value gjson.Result) bool {
			op = &Opinion{Label: types.SentimentLabel(key.String()), Score: value.Float()}
			return false
		})
		if op != nil {
			return op, nil
		}
	}
	return nil, fmt.Errorf("no valid sentiment object in reply")
}
